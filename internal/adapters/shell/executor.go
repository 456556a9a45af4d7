// Package shell provides the recipe executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
	shell  string
	errOut io.Writer
}

// NewExecutor creates a new Executor. Recipes without an executable bit are
// interpreted by shell with "-e".
func NewExecutor(logger ports.Logger, shell string) *Executor {
	return &Executor{
		logger: logger,
		shell:  shell,
		errOut: os.Stderr,
	}
}

// SetStderr changes where recipe stderr is passed through to.
func (e *Executor) SetStderr(w io.Writer) {
	e.errOut = w
}

// Execute runs the recipe with its three positional arguments.
// The environment is os.Environ() with env layered on top.
// Recipe stdout is forwarded line by line to the logger. Recipe stderr is
// passed through unchanged. Both are copied to stdout and stderr when they are non-nil.
func (e *Executor) Execute(ctx context.Context, run domain.RecipeRun, env []string, stdout, stderr io.Writer) error {
	name, args := e.command(run)

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // recipes are user provided scripts
	cmd.Env = resolveEnvironment(os.Environ(), env)

	outLog := &logWriter{logger: e.logger}
	cmd.Stdout = tee(outLog, stdout)
	cmd.Stderr = tee(e.errOut, stderr)

	err := cmd.Run()
	outLog.Flush()

	if err != nil {
		exitCode := -1 // Unknown or signal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "recipe", run.Recipe)
	}

	return nil
}

// command picks how to start the recipe: directly when it is executable,
// otherwise through the configured shell.
func (e *Executor) command(run domain.RecipeRun) (string, []string) {
	recipe := run.Recipe
	if !filepath.IsAbs(recipe) && !strings.ContainsRune(recipe, filepath.Separator) {
		recipe = "." + string(filepath.Separator) + recipe
	}

	if findExecutable(recipe) == nil {
		return recipe, run.Args()
	}
	return e.shell, append([]string{"-e", recipe}, run.Args()...)
}

func tee(primary, secondary io.Writer) io.Writer {
	if secondary == nil {
		return primary
	}
	return io.MultiWriter(primary, secondary)
}

// logWriter buffers partial writes and forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line: keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush forwards any trailing text that was not newline terminated.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) emit(line string) {
	w.logger.Info(line)
}

// resolveEnvironment merges environment variables; entries in overrides win.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, list := range [][]string{sysEnv, overrides} {
		for _, entry := range list {
			k, v, ok := strings.Cut(entry, "=")
			if ok {
				envMap[k] = v
			}
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
