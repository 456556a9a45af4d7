// Package checker decides whether a target must be rebuilt.
package checker

import (
	"fmt"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
)

// Checker compares the live filesystem against the records of each
// target's last successful build.
type Checker struct {
	store    ports.DependencyStore
	resolver ports.RecipeResolver
	verifier ports.Verifier
	hasher   ports.Hasher
	logger   ports.Logger
}

// New creates a new Checker.
func New(
	store ports.DependencyStore,
	resolver ports.RecipeResolver,
	verifier ports.Verifier,
	hasher ports.Hasher,
	logger ports.Logger,
) *Checker {
	return &Checker{
		store:    store,
		resolver: resolver,
		verifier: verifier,
		hasher:   hasher,
		logger:   logger,
	}
}

// Check returns UpToDate, Outdated or Conflicted for target.
//
// Recorded dependencies that are themselves targets are checked
// recursively. The dependency graph is assumed to be acyclic.
func (c *Checker) Check(target string) (domain.Status, error) {
	w := &walk{Checker: c, seen: make(map[string]domain.Status)}
	return w.check(target)
}

// walk memoizes verdicts for the duration of one Check so that shared
// dependencies are evaluated once.
type walk struct {
	*Checker
	seen map[string]domain.Status
}

// verdict is the outcome of evaluating a single recorded dependency.
type verdict struct {
	status domain.Status
	err    error
}

func (w *walk) check(target string) (domain.Status, error) {
	if status, ok := w.seen[target]; ok {
		return status, nil
	}
	status, reason, err := w.evaluate(target)
	if err != nil {
		return domain.Outdated, err
	}
	w.seen[target] = status
	w.logger.Debug(fmt.Sprintf("check %s: %s (%s)", target, status, reason))
	return status, nil
}

func (w *walk) evaluate(target string) (domain.Status, string, error) {
	exists, err := w.verifier.Exists(target)
	if err != nil {
		return domain.Outdated, "", err
	}
	if !exists {
		return domain.Outdated, "target does not exist", nil
	}

	recipes, err := w.resolver.Resolve(target)
	if err != nil {
		return domain.Outdated, "", err
	}

	stored, err := w.store.Get(target)
	if err != nil {
		return domain.Outdated, "", err
	}
	if stored == nil {
		if len(recipes) == 0 {
			return domain.UpToDate, "source file", nil
		}
		return domain.Conflicted, "recipe " + recipes[0].Recipe + " governs an unrecorded file", nil
	}

	provenance, ok := domain.Provenance(stored)
	if !ok {
		return domain.Outdated, "record list has no recipe provenance", nil
	}
	if recipe, ok := moreSpecific(target, provenance.Path, recipes); ok {
		return domain.Outdated, "recipe " + recipe + " is more specific than " + provenance.Path, nil
	}

	for _, dep := range stored {
		v := domain.MatchDependency(dep, w.checkExisting, w.checkNonExisting)
		if v.err != nil {
			return domain.Outdated, "", v.err
		}
		if v.status != domain.UpToDate {
			return v.status, "dependency " + dep.DependencyPath() + " is " + v.status.String(), nil
		}
	}
	return domain.UpToDate, "all dependencies hold", nil
}

// moreSpecific returns the first existing recipe that outranks the one the
// target was last built with. A recipe that is no longer a candidate at all
// is outranked by any existing recipe.
func moreSpecific(target, effective string, existing []domain.Candidate) (string, bool) {
	rank := domain.Rank(target, effective)
	for _, c := range existing {
		if c.Recipe == effective {
			return "", false
		}
		if r := domain.Rank(target, c.Recipe); rank < 0 || r < rank {
			return c.Recipe, true
		}
	}
	return "", false
}

func (w *walk) checkExisting(dep domain.ExistingFile) verdict {
	exists, err := w.verifier.Exists(dep.Path)
	if err != nil {
		return verdict{err: err}
	}
	if !exists {
		return verdict{status: domain.Outdated}
	}

	sig, err := w.hasher.Sign(dep.Path)
	if err != nil {
		return verdict{err: err}
	}
	if sig != dep.Signature {
		return verdict{status: domain.Outdated}
	}

	// Plain source files, with neither recipe nor record, check as UpToDate.
	status, err := w.check(dep.Path)
	return verdict{status: status, err: err}
}

func (w *walk) checkNonExisting(dep domain.NonExistingFile) verdict {
	exists, err := w.verifier.Exists(dep.Path)
	if err != nil {
		return verdict{err: err}
	}
	if exists {
		return verdict{status: domain.Outdated}
	}
	return verdict{status: domain.UpToDate}
}
