package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/adapters/session"
	"go.trai.ch/redo/internal/core/domain"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestManager_OpenTopLevel(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), ".redo")
	m := session.NewManager(stateDir).WithLookup(env(nil))

	s, err := m.Open()
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 0, s.Depth)
	assert.False(t, s.Nested())
	assert.Equal(t, stateDir, s.StateDir)
	assert.DirExists(t, s.ScratchDir())

	require.NoError(t, m.Close(s))
	assert.NoDirExists(t, s.ScratchDir())
}

func TestManager_OpenIsolatesSessions(t *testing.T) {
	m := session.NewManager(t.TempDir()).WithLookup(env(nil))

	first, err := m.Open()
	require.NoError(t, err)
	second, err := m.Open()
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.ScratchDir(), second.ScratchDir())
}

func TestManager_OpenInherited(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), ".redo")
	sink := filepath.Join(stateDir, "tmp", "parent-session", "foo.txt.1.deps")
	require.NoError(t, os.MkdirAll(filepath.Dir(sink), 0o750))

	m := session.NewManager("ignored").WithLookup(env(map[string]string{
		domain.EnvDepsPath: sink,
		domain.EnvDepth:    "2",
	}))

	s, err := m.Open()
	require.NoError(t, err)

	assert.True(t, s.Nested())
	assert.Equal(t, "parent-session", s.ID)
	assert.Equal(t, 2, s.Depth)
	assert.Equal(t, sink, s.ParentSink)
	assert.Equal(t, stateDir, s.StateDir)

	// Nested sessions leave the shared scratch area to the top-level invocation.
	require.NoError(t, m.Close(s))
	assert.DirExists(t, filepath.Dir(sink))
}

func TestManager_OpenInheritedDefaultDepth(t *testing.T) {
	m := session.NewManager("ignored").WithLookup(env(map[string]string{
		domain.EnvDepsPath: "/p/.redo/tmp/s/x.deps",
	}))

	s, err := m.Open()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Depth)
}

func TestManager_OpenInvalidDepth(t *testing.T) {
	for _, depth := range []string{"deep", "-1"} {
		t.Run(depth, func(t *testing.T) {
			m := session.NewManager("ignored").WithLookup(env(map[string]string{
				domain.EnvDepsPath: "/p/.redo/tmp/s/x.deps",
				domain.EnvDepth:    depth,
			}))

			_, err := m.Open()
			assert.Error(t, err)
		})
	}
}

func TestManager_EmptySinkStartsTopLevel(t *testing.T) {
	m := session.NewManager(t.TempDir()).WithLookup(env(map[string]string{
		domain.EnvDepsPath: "",
	}))

	s, err := m.Open()
	require.NoError(t, err)
	assert.False(t, s.Nested())
}
