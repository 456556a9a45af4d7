package wiring_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/app"
	"go.trai.ch/redo/internal/core/domain"
	_ "go.trai.ch/redo/internal/wiring"
)

// TestGraftDependencies resolves the full component graph in an empty
// project and checks that the session it opens is usable.
func TestGraftDependencies(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(domain.EnvDepsPath, "")
	t.Setenv("REDO_CONFIG", "")
	graft.ResetDefaultCache()
	t.Cleanup(graft.ResetDefaultCache)

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)

	sess := components.App.Session()
	assert.False(t, sess.Nested())
	assert.DirExists(t, sess.ScratchDir())

	resolved, err := filepath.EvalSymlinks(sess.StateDir)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(filepath.Join(dir, domain.StateDirName))
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)

	require.NoError(t, components.App.Close())
	_, err = os.Stat(sess.ScratchDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
