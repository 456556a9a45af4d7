package depstore

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
)

var _ ports.RecordSink = (*Sink)(nil)

// Sink implements ports.RecordSink with append-only JSON Lines files.
// Each record is written with a single O_APPEND write, so appends from
// nested builds in other processes never interleave within a line.
type Sink struct{}

// NewSink creates a new Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Create allocates a fresh, empty sink file in dir.
func (k *Sink) Create(dir, prefix string) (string, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", storeError(err, "failed to create scratch directory", dir)
	}
	f, err := os.CreateTemp(dir, prefix+".*"+domain.RecordsFileExt)
	if err != nil {
		return "", storeError(err, "failed to create record sink", dir)
	}
	if err := f.Close(); err != nil {
		return "", storeError(err, "failed to close record sink", f.Name())
	}
	return f.Name(), nil
}

// Append adds one record to the sink at path.
func (k *Sink) Append(path string, dep domain.Dependency) error {
	line, err := encodeLine(dep)
	if err != nil {
		return storeError(err, "failed to encode dependency record", path)
	}

	//nolint:gosec // Sink paths come from this process or the parent recipe's environment
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, domain.FilePerm)
	if err != nil {
		return storeError(err, "failed to open record sink", path)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return storeError(err, "failed to append to record sink", path)
	}
	if err := f.Close(); err != nil {
		return storeError(err, "failed to close record sink", path)
	}
	return nil
}

// Read returns every record in the sink at path, in append order.
// A sink that was never created reads as empty.
func (k *Sink) Read(path string) ([]domain.Dependency, error) {
	f, err := os.Open(path) //nolint:gosec // Sink paths are allocated by Create
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, storeError(err, "failed to open record sink", path)
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	deps, err := decodeAll(f)
	if err != nil {
		return nil, storeError(err, "failed to decode record sink", path)
	}
	return deps, nil
}
