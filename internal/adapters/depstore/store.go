// Package depstore persists dependency record lists and the temporary
// record sinks builds append to.
package depstore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyStore = (*Store)(nil)

// Store implements ports.DependencyStore with one JSON Lines file per target.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created lazily.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Dir returns the records directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(target string) string {
	return filepath.Join(s.dir, Encode(target)+domain.RecordsFileExt)
}

// Get retrieves the record list for a target.
// Returns nil, nil if the target has no record, and an empty non-nil list
// if the record exists but holds no entries.
func (s *Store) Get(target string) ([]domain.Dependency, error) {
	path := s.path(target)
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from an encoded key
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, storeError(err, "failed to read dependency records", path)
	}

	deps, err := decodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, storeError(err, "failed to decode dependency records", path)
	}
	if deps == nil {
		deps = []domain.Dependency{}
	}
	return deps, nil
}

// Put atomically replaces the record list for a target.
// The list is written to a temp file in the records directory and renamed
// over the permanent key, so readers see either the old or the new list.
func (s *Store) Put(target string, deps []domain.Dependency) error {
	data, err := encodeAll(deps)
	if err != nil {
		return storeError(err, "failed to encode dependency records", s.path(target))
	}
	return writeAtomic(s.dir, s.path(target), data)
}

func writeAtomic(dir, path string, data []byte) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return storeError(err, "failed to create records directory", dir)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return storeError(err, "failed to create temp record file", dir)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return storeError(err, "failed to write temp record file", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		return storeError(err, "failed to sync temp record file", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return storeError(err, "failed to close temp record file", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return storeError(err, "failed to replace record file", path)
	}

	success = true
	return nil
}

// storeError classifies err as a store failure while keeping its cause.
func storeError(err error, msg, path string) error {
	return zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrStoreIO, err), msg), "path", path)
}
