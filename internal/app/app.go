// Package app implements the application layer for redo.
package app

import (
	"context"
	"io"
	"os"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

// StatusChecker decides whether a target must be rebuilt.
type StatusChecker interface {
	Check(target string) (domain.Status, error)
}

// TargetBuilder rebuilds targets and reports them to parent builds.
type TargetBuilder interface {
	Build(ctx context.Context, sess domain.Session, target string, stdout, stderr io.Writer) error
	Report(sess domain.Session, target string) error
}

// App represents the main application logic.
type App struct {
	checker   StatusChecker
	builder   TargetBuilder
	sessions  ports.SessionManager
	session   domain.Session
	sink      ports.RecordSink
	verifier  ports.Verifier
	logger    ports.Logger
	telemetry ports.Telemetry
	getwd     func() (string, error)
}

// New creates a new App instance bound to an open session.
func New(
	checker StatusChecker,
	builder TargetBuilder,
	sessions ports.SessionManager,
	session domain.Session,
	sink ports.RecordSink,
	verifier ports.Verifier,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		checker:   checker,
		builder:   builder,
		sessions:  sessions,
		session:   session,
		sink:      sink,
		verifier:  verifier,
		logger:    logger,
		telemetry: telemetry,
		getwd:     os.Getwd,
	}
}

// WithWorkingDir overrides the directory targets are normalized against.
// Used for testing.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// Session returns the session the App runs in.
func (a *App) Session() domain.Session {
	return a.session
}

// Run applies mode to every target in order. The first error aborts the
// invocation.
func (a *App) Run(ctx context.Context, mode domain.Mode, targets []string) error {
	if len(targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	cwd, err := a.getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	for _, raw := range targets {
		target, err := domain.NormalizeTarget(cwd, raw)
		if err != nil {
			return err
		}
		if err := a.runTarget(ctx, mode, target); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) runTarget(ctx context.Context, mode domain.Mode, target string) error {
	ctx, vertex := a.telemetry.Record(ctx, mode.String()+" "+target)

	var err error
	switch mode {
	case domain.ModeRedo:
		err = a.builder.Build(ctx, a.session, target, vertex.Stdout(), vertex.Stderr())
	case domain.ModeIfChange:
		err = a.ifChange(ctx, target, vertex)
	case domain.ModeIfCreate:
		err = a.ifCreate(target)
	default:
		err = zerr.With(zerr.Wrap(domain.ErrUnknownCommand, "unsupported mode"), "mode", int(mode))
	}

	vertex.Complete(err)
	return err
}

func (a *App) ifChange(ctx context.Context, target string, vertex ports.Vertex) error {
	status, err := a.checker.Check(target)
	if err != nil {
		return err
	}

	switch status {
	case domain.Conflicted:
		return zerr.With(zerr.Wrap(domain.ErrConflicted, "refusing to overwrite "+target), "target", target)
	case domain.Outdated:
		return a.builder.Build(ctx, a.session, target, vertex.Stdout(), vertex.Stderr())
	default:
		a.logger.Debug("up to date: " + a.session.Indent() + target)
		vertex.Cached()
		return a.builder.Report(a.session, target)
	}
}

func (a *App) ifCreate(target string) error {
	if !a.session.Nested() {
		return zerr.With(zerr.Wrap(domain.ErrNotInRecipe, domain.CommandIfCreate+" needs a parent build"),
			"target", target)
	}

	exists, err := a.verifier.Exists(target)
	if err != nil {
		return err
	}
	if exists {
		return zerr.With(zerr.Wrap(domain.ErrTargetExists, "cannot depend on the absence of "+target),
			"target", target)
	}
	return a.sink.Append(a.session.ParentSink, domain.NonExistingFile{Path: target})
}

// Close ends the session and flushes telemetry.
func (a *App) Close() error {
	sessErr := a.sessions.Close(a.session)
	telErr := a.telemetry.Close()
	if sessErr != nil {
		return sessErr
	}
	return telErr
}
