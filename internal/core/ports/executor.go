// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/redo/internal/core/domain"
)

// Executor runs recipes as external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the recipe and blocks until it exits.
	//
	// The env parameter contains extra variables in "KEY=VALUE" format that
	// are layered over the process environment.
	//
	// It returns an error if the recipe exits nonzero or cannot be started.
	Execute(ctx context.Context, run domain.RecipeRun, env []string, stdout, stderr io.Writer) error
}
