package domain

import (
	"path/filepath"
	"strings"
)

const (
	// RecipeExt is the extension every recipe file carries.
	RecipeExt = ".do"

	// DefaultRecipeName is the basename prefix of generic fallback recipes.
	DefaultRecipeName = "default"
)

// Candidate is one possible recipe for a target.
// Name is the effective basename the recipe would build the target as.
type Candidate struct {
	Name   string
	Recipe string
}

// Candidates lists the recipes that could build target, most specific first.
//
// For "dir/a.b.c" the list is dir/a.b.c.do, dir/default.c.do (building
// dir/a.b) and dir/default.do (building dir/a). A target without a dot only
// has its exact recipe. Recipe files never fall back to the bare default.do.
// Candidates does not touch the filesystem.
func Candidates(target string) []Candidate {
	dir, base := filepath.Split(target)
	tokens := strings.Split(base, ".")

	out := make([]Candidate, 0, 3)
	add := func(name, recipe string) {
		recipe = filepath.Join(dir, recipe)
		for _, c := range out {
			if c.Recipe == recipe {
				return
			}
		}
		out = append(out, Candidate{Name: filepath.Join(dir, name), Recipe: recipe})
	}

	add(base, base+RecipeExt)
	if len(tokens) == 1 {
		return out
	}

	last := len(tokens) - 1
	add(strings.Join(tokens[:last], "."), DefaultRecipeName+"."+tokens[last]+RecipeExt)
	if !strings.HasSuffix(base, RecipeExt) {
		add(tokens[0], DefaultRecipeName+RecipeExt)
	}

	return out
}

// Rank returns the position of recipe in target's candidate list, or -1.
func Rank(target, recipe string) int {
	recipe = filepath.Clean(recipe)
	for i, c := range Candidates(target) {
		if c.Recipe == recipe {
			return i
		}
	}
	return -1
}

// RecipeRun describes one execution of a recipe.
type RecipeRun struct {
	// Recipe is the path of the recipe file.
	Recipe string
	// Target is the full target path, passed twice to the recipe.
	Target string
	// Output is the temp file the recipe must write its result to.
	Output string
}

// Args returns the positional arguments of the recipe process.
func (r RecipeRun) Args() []string {
	return []string{r.Target, r.Target, r.Output}
}
