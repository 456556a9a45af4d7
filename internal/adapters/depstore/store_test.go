package depstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/adapters/depstore"
	"go.trai.ch/redo/internal/core/domain"
)

func sampleDeps() []domain.Dependency {
	return []domain.Dependency{
		domain.ExistingFile{Path: "default.o.do", Signature: digest.FromString("recipe")},
		domain.ExistingFile{Path: "main.c", Signature: digest.FromString("source")},
		domain.NonExistingFile{Path: "config.h"},
	}
}

func TestStore_PutAndGet(t *testing.T) {
	store := depstore.NewStore(filepath.Join(t.TempDir(), "deps"))

	require.NoError(t, store.Put("src/main.o", sampleDeps()))

	got, err := store.Get("src/main.o")
	require.NoError(t, err)
	if diff := cmp.Diff(sampleDeps(), got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := depstore.NewStore(t.TempDir())

	got, err := store.Get("never-built")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetEmptyRecord(t *testing.T) {
	store := depstore.NewStore(t.TempDir())
	require.NoError(t, store.Put("empty", nil))

	got, err := store.Get("empty")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_PutReplaces(t *testing.T) {
	dir := t.TempDir()
	store := depstore.NewStore(dir)

	require.NoError(t, store.Put("out", sampleDeps()))
	replacement := []domain.Dependency{
		domain.ExistingFile{Path: "out.do", Signature: digest.FromString("v2")},
	}
	require.NoError(t, store.Put("out", replacement))

	got, err := store.Get("out")
	require.NoError(t, err)
	if diff := cmp.Diff(replacement, got); diff != "" {
		t.Errorf("Get() after replace mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_DistinctTargets(t *testing.T) {
	store := depstore.NewStore(t.TempDir())

	require.NoError(t, store.Put("a/b", sampleDeps()[:1]))
	require.NoError(t, store.Put("a%2Fb", sampleDeps()[1:2]))

	first, err := store.Get("a/b")
	require.NoError(t, err)
	second, err := store.Get("a%2Fb")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestStore_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store := depstore.NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, depstore.Encode("bad")+domain.RecordsFileExt),
		[]byte("{not json\n"), 0o600))

	_, err := store.Get("bad")
	assert.ErrorIs(t, err, domain.ErrStoreIO)
}

func TestStore_UnknownKind(t *testing.T) {
	dir := t.TempDir()
	store := depstore.NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, depstore.Encode("odd")+domain.RecordsFileExt),
		[]byte(`{"kind":"symlink","path":"x"}`+"\n"), 0o600))

	_, err := store.Get("odd")
	assert.ErrorIs(t, err, domain.ErrStoreIO)
}

func TestStore_Dir(t *testing.T) {
	store := depstore.NewStore("state/deps/")
	assert.Equal(t, filepath.Join("state", "deps"), store.Dir())
}
