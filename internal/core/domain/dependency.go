package domain

import "github.com/opencontainers/go-digest"

// Dependency is a fact recorded during a build that a later staleness check
// re-evaluates. The set of kinds is closed: ExistingFile and NonExistingFile.
type Dependency interface {
	// DependencyPath returns the path the fact is about.
	DependencyPath() string

	dependency()
}

// ExistingFile asserts that Path existed with exactly Signature at record time.
type ExistingFile struct {
	Path      string
	Signature digest.Digest
}

// NonExistingFile asserts that Path did not exist at record time.
type NonExistingFile struct {
	Path string
}

// DependencyPath returns the recorded path.
func (d ExistingFile) DependencyPath() string { return d.Path }

// DependencyPath returns the recorded path.
func (d NonExistingFile) DependencyPath() string { return d.Path }

func (ExistingFile) dependency()    {}
func (NonExistingFile) dependency() {}

// MatchDependency dispatches d to the handler for its kind.
// Every caller names a handler per kind, so adding a kind breaks every call
// site at compile time.
func MatchDependency[T any](
	d Dependency,
	existing func(ExistingFile) T,
	missing func(NonExistingFile) T,
) T {
	switch dep := d.(type) {
	case ExistingFile:
		return existing(dep)
	case *ExistingFile:
		return existing(*dep)
	case NonExistingFile:
		return missing(dep)
	case *NonExistingFile:
		return missing(*dep)
	default:
		// The unexported marker method keeps other packages from adding kinds.
		panic("domain: unknown dependency kind")
	}
}

// Provenance returns the recipe that governed the build a record list
// describes. The first record of every committed list is the recipe itself.
func Provenance(deps []Dependency) (ExistingFile, bool) {
	if len(deps) == 0 {
		return ExistingFile{}, false
	}
	first, ok := deps[0].(ExistingFile)
	return first, ok
}
