// Package session opens and tears down the per-invocation session.
package session

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pborman/uuid"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SessionManager = (*Manager)(nil)

// Manager implements ports.SessionManager.
//
// A top-level invocation gets a fresh uuid and its own scratch directory
// under the configured state directory. An invocation started from a recipe
// inherits the parent's session through domain.EnvDepsPath and
// domain.EnvDepth.
type Manager struct {
	stateDir string
	lookup   func(string) (string, bool)
	newID    func() string
}

// NewManager creates a Manager for the given state directory.
func NewManager(stateDir string) *Manager {
	return &Manager{
		stateDir: stateDir,
		lookup:   os.LookupEnv,
		newID:    uuid.New,
	}
}

// WithLookup replaces the environment lookup. Used for testing.
func (m *Manager) WithLookup(lookup func(string) (string, bool)) *Manager {
	m.lookup = lookup
	return m
}

// Open returns the inherited session, or starts a new top-level one.
func (m *Manager) Open() (domain.Session, error) {
	if sink, ok := m.lookup(domain.EnvDepsPath); ok && sink != "" {
		depth := 1
		if raw, ok := m.lookup(domain.EnvDepth); ok && raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return domain.Session{}, zerr.With(
					zerr.New("invalid recursion depth in environment"), domain.EnvDepth, raw)
			}
			depth = n
		}
		abs, err := filepath.Abs(sink)
		if err != nil {
			return domain.Session{}, zerr.With(zerr.Wrap(err, "failed to resolve record sink"), "path", sink)
		}
		return domain.InheritSession(abs, depth), nil
	}

	stateDir, err := filepath.Abs(m.stateDir)
	if err != nil {
		return domain.Session{}, zerr.With(zerr.Wrap(err, "failed to resolve state directory"), "path", m.stateDir)
	}

	s := domain.Session{ID: m.newID(), StateDir: stateDir}
	if err := os.MkdirAll(s.ScratchDir(), domain.DirPerm); err != nil {
		return domain.Session{}, zerr.With(zerr.Wrap(err, "failed to create session scratch directory"),
			"path", s.ScratchDir())
	}
	return s, nil
}

// Close removes the scratch directory of a top-level session.
// Nested sessions share their parent's scratch area and leave it alone.
func (m *Manager) Close(s domain.Session) error {
	if s.Nested() {
		return nil
	}
	if err := os.RemoveAll(s.ScratchDir()); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove session scratch directory"), "path", s.ScratchDir())
	}
	return nil
}
