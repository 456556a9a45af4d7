// Package builder runs recipes and commits their results.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder executes the chosen recipe for a target with a temp output and a
// temp record sink, then commits both or discards both.
type Builder struct {
	resolver ports.RecipeResolver
	store    ports.DependencyStore
	sink     ports.RecordSink
	verifier ports.Verifier
	hasher   ports.Hasher
	executor ports.Executor
	logger   ports.Logger
}

// New creates a new Builder.
func New(
	resolver ports.RecipeResolver,
	store ports.DependencyStore,
	sink ports.RecordSink,
	verifier ports.Verifier,
	hasher ports.Hasher,
	executor ports.Executor,
	logger ports.Logger,
) *Builder {
	return &Builder{
		resolver: resolver,
		store:    store,
		sink:     sink,
		verifier: verifier,
		hasher:   hasher,
		executor: executor,
		logger:   logger,
	}
}

// Build rebuilds target with its most specific existing recipe.
//
// On success the temp output replaces the target first and the collected
// records replace the stored list second. A crash between the two leaves a
// good artifact whose stale records make the next check rebuild it. On
// failure nothing permanent is touched. When the session is nested, the
// target is reported into the parent build's sink afterwards.
func (b *Builder) Build(ctx context.Context, sess domain.Session, target string, stdout, stderr io.Writer) error {
	recipes, err := b.resolver.Resolve(target)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrNoRecipe, "cannot build "+target),
			"target", target), "recipe", candidatePaths(target))
	}
	recipe := recipes[0].Recipe

	b.logger.Info("redo " + sess.Indent() + target)

	sinkPath, err := b.sink.Create(sess.ScratchDir(), filepath.Base(target))
	if err != nil {
		return err
	}
	output := strings.TrimSuffix(sinkPath, domain.RecordsFileExt) + domain.OutputFileExt
	defer func() {
		_ = os.Remove(output)
		_ = os.Remove(sinkPath)
	}()

	sig, err := b.hasher.Sign(recipe)
	if err != nil {
		return err
	}
	if err := b.sink.Append(sinkPath, domain.ExistingFile{Path: recipe, Signature: sig}); err != nil {
		return err
	}

	run := domain.RecipeRun{Recipe: recipe, Target: target, Output: output}
	if err := b.executor.Execute(ctx, run, sess.ChildEnv(sinkPath), stdout, stderr); err != nil {
		return recipeFailure(err, recipe, target)
	}

	if err := b.commitOutput(output, target); err != nil {
		return zerr.With(err, "recipe", recipe)
	}

	deps, err := b.sink.Read(sinkPath)
	if err != nil {
		return err
	}
	if err := b.store.Put(target, deps); err != nil {
		return zerr.With(zerr.With(err, "target", target), "recipe", recipe)
	}

	return b.Report(sess, target)
}

// Report records target into the parent build's sink, if there is one.
// Existing targets are reported with their current signature, absent ones
// as a NonExistingFile fact.
func (b *Builder) Report(sess domain.Session, target string) error {
	if !sess.Nested() {
		return nil
	}

	exists, err := b.verifier.Exists(target)
	if err != nil {
		return err
	}
	if !exists {
		return b.sink.Append(sess.ParentSink, domain.NonExistingFile{Path: target})
	}

	sig, err := b.hasher.Sign(target)
	if err != nil {
		return err
	}
	return b.sink.Append(sess.ParentSink, domain.ExistingFile{Path: target, Signature: sig})
}

// commitOutput atomically replaces target with the recipe's temp output.
// A recipe that wrote no output leaves the target untouched.
func (b *Builder) commitOutput(output, target string) error {
	if _, err := os.Stat(output); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.logger.Debug("recipe produced no output for " + target)
			return nil
		}
		return commitError(err, "failed to stat temp output", output, target)
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return commitError(err, "failed to create target directory", dir, target)
		}
	}
	if err := os.Rename(output, target); err != nil {
		return commitError(err, "failed to replace target with temp output", output, target)
	}
	return nil
}

func candidatePaths(target string) []string {
	candidates := domain.Candidates(target)
	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.Recipe
	}
	return paths
}

func recipeFailure(err error, recipe, target string) error {
	msg := fmt.Sprintf("recipe %s failed to build %s", recipe, target)
	return zerr.With(zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrRecipeFailed, err), msg),
		"recipe", recipe), "target", target)
}

func commitError(err error, msg, path, target string) error {
	return zerr.With(zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrStoreIO, err), msg),
		"path", path), "target", target)
}
