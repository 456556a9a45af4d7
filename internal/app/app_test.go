package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/adapters/depstore"
	"go.trai.ch/redo/internal/adapters/fs"
	"go.trai.ch/redo/internal/adapters/logger"
	"go.trai.ch/redo/internal/adapters/session"
	"go.trai.ch/redo/internal/adapters/shell"
	"go.trai.ch/redo/internal/adapters/telemetry"
	"go.trai.ch/redo/internal/app"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/engine/builder"
	"go.trai.ch/redo/internal/engine/checker"
)

type harness struct {
	dir     string
	app     *app.App
	checker *checker.Checker
	sink    *depstore.Sink
	hasher  *fs.Hasher
}

// newHarness wires the real adapters into an App rooted at a fresh project
// directory. env is consulted instead of the process environment when the
// session is opened.
func newHarness(t *testing.T, env map[string]string) *harness {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Chdir(dir)
	return attach(t, dir, env)
}

func attach(t *testing.T, dir string, env map[string]string) *harness {
	t.Helper()

	manager := session.NewManager(filepath.Join(dir, domain.StateDirName)).
		WithLookup(func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		})
	sess, err := manager.Open()
	require.NoError(t, err)

	log := logger.New()
	log.SetOutput(&strings.Builder{})

	store := depstore.NewStore(domain.RecordsRoot(sess.StateDir))
	sink := depstore.NewSink()
	verifier := fs.NewVerifier()
	resolver := fs.NewResolver(verifier)
	hasher := fs.NewHasher(domain.SignatureSHA256)
	executor := shell.NewExecutor(log, "/bin/sh")

	chk := checker.New(store, resolver, verifier, hasher, log)
	bld := builder.New(resolver, store, sink, verifier, hasher, executor, log)

	a := app.New(chk, bld, manager, sess, sink, verifier, log, telemetry.NewNoOp()).WithWorkingDir(dir)
	t.Cleanup(func() { _ = a.Close() })

	return &harness{dir: dir, app: a, checker: chk, sink: sink, hasher: hasher}
}

func (h *harness) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, name), []byte(content), 0o600))
}

func (h *harness) read(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(h.dir, name))
	require.NoError(t, err)
	return string(content)
}

func (h *harness) status(t *testing.T, target string) domain.Status {
	t.Helper()
	status, err := h.checker.Check(target)
	require.NoError(t, err)
	return status
}

func (h *harness) runs(t *testing.T) int {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(h.dir, "runs.log"))
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return strings.Count(string(content), "\n")
}

const countingRecipe = "echo run >> runs.log\necho \"built $1\" > \"$3\"\n"

func TestApp_BuildThenCheck(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)
	ctx := context.Background()

	assert.Equal(t, domain.Outdated, h.status(t, "foo.txt"))

	require.NoError(t, h.app.Run(ctx, domain.ModeRedo, []string{"foo.txt"}))
	assert.Equal(t, "built foo.txt\n", h.read(t, "foo.txt"))
	assert.Equal(t, domain.UpToDate, h.status(t, "foo.txt"))
	assert.Equal(t, 1, h.runs(t))
}

func TestApp_IfChangeIsIdempotent(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)
	ctx := context.Background()

	require.NoError(t, h.app.Run(ctx, domain.ModeIfChange, []string{"foo.txt"}))
	require.NoError(t, h.app.Run(ctx, domain.ModeIfChange, []string{"foo.txt"}))
	require.NoError(t, h.app.Run(ctx, domain.ModeIfChange, []string{"foo.txt"}))

	assert.Equal(t, 1, h.runs(t))
}

func TestApp_RedoAlwaysRebuilds(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)
	ctx := context.Background()

	require.NoError(t, h.app.Run(ctx, domain.ModeRedo, []string{"foo.txt"}))
	require.NoError(t, h.app.Run(ctx, domain.ModeRedo, []string{"foo.txt"}))

	assert.Equal(t, 2, h.runs(t))
}

func TestApp_RecipeEditAndRestore(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)
	require.NoError(t, h.app.Run(context.Background(), domain.ModeRedo, []string{"foo.txt"}))

	h.write(t, "default.txt.do", countingRecipe+"# edited\n")
	assert.Equal(t, domain.Outdated, h.status(t, "foo.txt"))

	h.write(t, "default.txt.do", countingRecipe)
	assert.Equal(t, domain.UpToDate, h.status(t, "foo.txt"))
}

func TestApp_MoreSpecificRecipeTakesOver(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)
	ctx := context.Background()
	require.NoError(t, h.app.Run(ctx, domain.ModeRedo, []string{"foo.txt"}))

	h.write(t, "foo.txt.do", "echo specific > \"$3\"\n")
	assert.Equal(t, domain.Outdated, h.status(t, "foo.txt"))

	require.NoError(t, h.app.Run(ctx, domain.ModeIfChange, []string{"foo.txt"}))
	assert.Equal(t, "specific\n", h.read(t, "foo.txt"))
	assert.Equal(t, domain.UpToDate, h.status(t, "foo.txt"))
}

func TestApp_ConflictedTargetIsProtected(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)
	h.write(t, "foo.txt", "handmade\n")
	ctx := context.Background()

	assert.Equal(t, domain.Conflicted, h.status(t, "foo.txt"))

	err := h.app.Run(ctx, domain.ModeIfChange, []string{"foo.txt"})
	require.ErrorIs(t, err, domain.ErrConflicted)
	assert.Equal(t, "handmade\n", h.read(t, "foo.txt"))

	// An explicit redo adopts the file.
	require.NoError(t, h.app.Run(ctx, domain.ModeRedo, []string{"foo.txt"}))
	assert.Equal(t, "built foo.txt\n", h.read(t, "foo.txt"))
	assert.Equal(t, domain.UpToDate, h.status(t, "foo.txt"))
}

func TestApp_FailedRecipeKeepsPreviousBuild(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)
	ctx := context.Background()
	require.NoError(t, h.app.Run(ctx, domain.ModeRedo, []string{"foo.txt"}))

	h.write(t, "default.txt.do", "echo partial > \"$3\"\nexit 1\n")

	err := h.app.Run(ctx, domain.ModeRedo, []string{"foo.txt"})
	require.ErrorIs(t, err, domain.ErrRecipeFailed)
	assert.Equal(t, "built foo.txt\n", h.read(t, "foo.txt"))
	// The recipe changed, so the old build is still stale.
	assert.Equal(t, domain.Outdated, h.status(t, "foo.txt"))
}

func TestApp_SourceFiles(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "main.c", "int main() {}\n")
	ctx := context.Background()

	require.NoError(t, h.app.Run(ctx, domain.ModeIfChange, []string{"main.c"}))

	err := h.app.Run(ctx, domain.ModeIfChange, []string{"missing.c"})
	require.ErrorIs(t, err, domain.ErrNoRecipe)

	err = h.app.Run(ctx, domain.ModeRedo, []string{"main.c"})
	require.ErrorIs(t, err, domain.ErrNoRecipe)
}

func TestApp_AbsoluteTargetsAreRebased(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)

	require.NoError(t, h.app.Run(context.Background(), domain.ModeRedo, []string{filepath.Join(h.dir, "foo.txt")}))
	assert.Equal(t, "built foo.txt\n", h.read(t, "foo.txt"))
}

func TestApp_FirstErrorAborts(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "default.txt.do", countingRecipe)

	err := h.app.Run(context.Background(), domain.ModeRedo, []string{"nope", "foo.txt"})
	require.ErrorIs(t, err, domain.ErrNoRecipe)
	assert.NoFileExists(t, filepath.Join(h.dir, "foo.txt"))
}

func TestApp_NoTargets(t *testing.T) {
	h := newHarness(t, nil)

	err := h.app.Run(context.Background(), domain.ModeRedo, nil)
	assert.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestApp_IfCreateOutsideRecipe(t *testing.T) {
	h := newHarness(t, nil)

	err := h.app.Run(context.Background(), domain.ModeIfCreate, []string{"config.h"})
	assert.ErrorIs(t, err, domain.ErrNotInRecipe)
}

// nested returns a harness that behaves like an invocation made from inside
// a recipe whose record sink is parentSink.
func nested(t *testing.T, parent *harness) (*harness, string) {
	t.Helper()
	parentSink, err := parent.sink.Create(parent.app.Session().ScratchDir(), "parent")
	require.NoError(t, err)
	child := attach(t, parent.dir, map[string]string{
		domain.EnvDepsPath: parentSink,
		domain.EnvDepth:    "1",
	})
	return child, parentSink
}

func TestApp_NestedIfCreate(t *testing.T) {
	h := newHarness(t, nil)
	child, parentSink := nested(t, h)
	h.write(t, "exists.h", "x")
	ctx := context.Background()

	require.NoError(t, child.app.Run(ctx, domain.ModeIfCreate, []string{"config.h"}))

	err := child.app.Run(ctx, domain.ModeIfCreate, []string{"exists.h"})
	require.ErrorIs(t, err, domain.ErrTargetExists)

	reported, err := h.sink.Read(parentSink)
	require.NoError(t, err)
	assert.Equal(t, []domain.Dependency{domain.NonExistingFile{Path: "config.h"}}, reported)
}

func TestApp_NestedIfChangeReportsDependencies(t *testing.T) {
	h := newHarness(t, nil)
	h.write(t, "main.c", "int main() {}\n")
	h.write(t, "default.o.do", "cat main.c > \"$3\"\n")
	child, parentSink := nested(t, h)

	require.NoError(t, child.app.Run(context.Background(), domain.ModeIfChange, []string{"main.c", "main.o"}))

	sourceSig, err := h.hasher.Sign("main.c")
	require.NoError(t, err)
	objectSig, err := h.hasher.Sign("main.o")
	require.NoError(t, err)

	reported, err := h.sink.Read(parentSink)
	require.NoError(t, err)
	assert.Equal(t, []domain.Dependency{
		domain.ExistingFile{Path: "main.c", Signature: sourceSig},
		domain.ExistingFile{Path: "main.o", Signature: objectSig},
	}, reported)

	// Closing a nested invocation leaves the shared scratch area in place.
	require.NoError(t, child.app.Close())
	assert.DirExists(t, h.app.Session().ScratchDir())
}

func TestApp_CloseRemovesScratch(t *testing.T) {
	h := newHarness(t, nil)
	scratch := h.app.Session().ScratchDir()
	require.DirExists(t, scratch)

	require.NoError(t, h.app.Close())
	assert.NoDirExists(t, scratch)
}
