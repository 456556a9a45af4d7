package fs

import (
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
)

var _ ports.RecipeResolver = (*Resolver)(nil)

// Resolver implements ports.RecipeResolver by filtering domain.Candidates
// down to the recipe files present on disk.
type Resolver struct {
	verifier *Verifier
}

// NewResolver creates a new Resolver.
func NewResolver(verifier *Verifier) *Resolver {
	return &Resolver{verifier: verifier}
}

// Resolve returns the existing candidates for target, most specific first.
func (r *Resolver) Resolve(target string) ([]domain.Candidate, error) {
	var found []domain.Candidate
	for _, c := range domain.Candidates(target) {
		ok, err := r.verifier.Exists(c.Recipe)
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, c)
		}
	}
	return found, nil
}
