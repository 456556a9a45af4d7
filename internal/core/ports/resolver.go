package ports

import "go.trai.ch/redo/internal/core/domain"

// RecipeResolver finds the recipes that exist on disk for a target.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type RecipeResolver interface {
	// Resolve returns the existing candidates for target, most specific first.
	Resolve(target string) ([]domain.Candidate, error)
}
