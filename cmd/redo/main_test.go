package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/core/domain"
)

func setupProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(domain.EnvDepsPath, "")
	t.Setenv(domain.EnvDepth, "")
	t.Setenv("REDO_CONFIG", "")
	graft.ResetDefaultCache()
	t.Cleanup(graft.ResetDefaultCache)

	recipe := "echo built > \"$3\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.txt.do"), []byte(recipe), 0o600))
	return dir
}

func TestRun_UnknownProgram(t *testing.T) {
	assert.Equal(t, 2, run("/usr/bin/redo-whatever", []string{"foo"}))
}

func TestRun_NoTargets(t *testing.T) {
	setupProject(t)

	assert.Equal(t, 2, run("redo", nil))
}

func TestRun_BuildsTarget(t *testing.T) {
	dir := setupProject(t)

	require.Equal(t, 0, run("redo", []string{"foo.txt"}))

	content, err := os.ReadFile(filepath.Join(dir, "foo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "built\n", string(content))

	records, err := os.ReadDir(filepath.Join(dir, domain.StateDirName, domain.RecordsDirName))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	scratch, err := os.ReadDir(filepath.Join(dir, domain.StateDirName, domain.ScratchDirName))
	require.NoError(t, err)
	assert.Empty(t, scratch, "session scratch space must be removed")
}

func TestRun_IfChangeAfterBuild(t *testing.T) {
	setupProject(t)

	require.Equal(t, 0, run("redo", []string{"foo.txt"}))
	graft.ResetDefaultCache()
	assert.Equal(t, 0, run("redo-ifchange", []string{"foo.txt"}))
}

func TestRun_IfChangeRefusesConflicted(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.txt"), []byte("handmade\n"), 0o600))

	assert.Equal(t, 1, run("redo-ifchange", []string{"foo.txt"}))

	content, err := os.ReadFile(filepath.Join(dir, "foo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "handmade\n", string(content))
}

func TestRun_RecipeFailure(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt.do"), []byte("exit 3\n"), 0o600))

	assert.Equal(t, 1, run("redo", []string{"bad.txt"}))

	_, err := os.Stat(filepath.Join(dir, "bad.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_VerboseBuild(t *testing.T) {
	dir := setupProject(t)

	require.Equal(t, 0, run("redo", []string{"-v", "foo.txt"}))

	content, err := os.ReadFile(filepath.Join(dir, "foo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "built\n", string(content))
}

func TestRun_Version(t *testing.T) {
	setupProject(t)

	assert.Equal(t, 0, run("redo-ifchange", []string{"--version"}))
}

func TestRun_NoRecipe(t *testing.T) {
	dir := setupProject(t)

	assert.Equal(t, 2, run("redo", []string{"missing.c"}))

	_, err := os.Stat(filepath.Join(dir, "missing.c"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
