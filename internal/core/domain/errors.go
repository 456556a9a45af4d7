package domain

import "go.trai.ch/zerr"

var (
	// ErrNoRecipe is returned when no recipe candidate exists on disk for a target.
	ErrNoRecipe = zerr.New("no recipe found for target")

	// ErrRecipeFailed is returned when a recipe process exits nonzero or is signaled.
	ErrRecipeFailed = zerr.New("recipe failed")

	// ErrConflicted is returned when a recipe governs a target that has no recorded build history.
	ErrConflicted = zerr.New("target is governed by a recipe but was never built by redo")

	// ErrStoreIO is returned when reading, writing or replacing dependency records fails.
	ErrStoreIO = zerr.New("dependency store failure")

	// ErrUnknownCommand is returned when the program is invoked under an unrecognized name.
	ErrUnknownCommand = zerr.New("unknown redo command")

	// ErrNoTargetsSpecified is returned when an invocation names no targets.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrTargetExists is returned by redo-ifcreate when the named file already exists.
	ErrTargetExists = zerr.New("target already exists")

	// ErrNotInRecipe is returned when a command that reports into a parent build runs outside one.
	ErrNotInRecipe = zerr.New("must be run from within a recipe")

	// ErrInvalidConfig is returned when redo.yaml holds an unsupported value.
	ErrInvalidConfig = zerr.New("invalid configuration")
)
