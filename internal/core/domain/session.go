package domain

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// EnvDepsPath names the record sink nested builds must report into.
	EnvDepsPath = "REDO_DEPS_PATH"

	// EnvDepth carries the recursion depth of the running recipe.
	EnvDepth = "REDO_DEPTH"
)

// Session is the state of one top-level invocation, inherited by every nested
// invocation a recipe spawns. It is never mutated after construction.
type Session struct {
	// ID partitions scratch space between unrelated invocations.
	ID string
	// Depth is zero for a top-level invocation.
	Depth int
	// ParentSink is the record sink of the enclosing build, empty at top level.
	ParentSink string
	// StateDir is the absolute project-local state directory.
	StateDir string
}

// Nested reports whether the session runs inside a parent build's recipe.
func (s Session) Nested() bool {
	return s.ParentSink != ""
}

// ScratchDir returns the session's scratch directory.
func (s Session) ScratchDir() string {
	return filepath.Join(ScratchRoot(s.StateDir), s.ID)
}

// Indent returns the prefix used when printing builds at this depth.
func (s Session) Indent() string {
	return strings.Repeat("  ", s.Depth)
}

// ChildEnv returns the environment entries a recipe needs so that its own
// nested builds report into sink at the next depth.
func (s Session) ChildEnv(sink string) []string {
	return []string{
		EnvDepsPath + "=" + sink,
		EnvDepth + "=" + strconv.Itoa(s.Depth+1),
	}
}

// InheritSession reconstructs the session of a nested invocation from its
// parent's record sink path, which lives at <state>/tmp/<session>/<file>.
func InheritSession(sink string, depth int) Session {
	sessionDir := filepath.Dir(sink)
	return Session{
		ID:         filepath.Base(sessionDir),
		Depth:      depth,
		ParentSink: sink,
		StateDir:   filepath.Dir(filepath.Dir(sessionDir)),
	}
}
