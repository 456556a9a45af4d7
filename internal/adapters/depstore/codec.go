package depstore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	kindExisting    = "exists"
	kindNonExisting = "missing"
)

// record is the on-disk form of one dependency, written as a single JSON line.
type record struct {
	Kind      string        `json:"kind"`
	Path      string        `json:"path"`
	Signature digest.Digest `json:"signature,omitzero"`
}

func toRecord(dep domain.Dependency) record {
	return domain.MatchDependency(dep,
		func(d domain.ExistingFile) record {
			return record{Kind: kindExisting, Path: d.Path, Signature: d.Signature}
		},
		func(d domain.NonExistingFile) record {
			return record{Kind: kindNonExisting, Path: d.Path}
		},
	)
}

func (r record) dependency() (domain.Dependency, error) {
	switch r.Kind {
	case kindExisting:
		if r.Signature == "" {
			return nil, zerr.With(zerr.New("existing file record without signature"), "path", r.Path)
		}
		return domain.ExistingFile{Path: r.Path, Signature: r.Signature}, nil
	case kindNonExisting:
		return domain.NonExistingFile{Path: r.Path}, nil
	default:
		return nil, zerr.With(zerr.New("unknown dependency record kind"), "kind", r.Kind)
	}
}

// encodeLine renders one dependency as a newline-terminated JSON object.
func encodeLine(dep domain.Dependency) ([]byte, error) {
	line, err := json.Marshal(toRecord(dep))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal dependency record")
	}
	return append(line, '\n'), nil
}

func encodeAll(deps []domain.Dependency) ([]byte, error) {
	var buf bytes.Buffer
	for _, dep := range deps {
		line, err := encodeLine(dep)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
	}
	return buf.Bytes(), nil
}

func decodeAll(r io.Reader) ([]domain.Dependency, error) {
	var deps []domain.Dependency
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, zerr.Wrap(err, "failed to unmarshal dependency record")
		}
		dep, err := rec.dependency()
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read dependency records")
	}
	return deps, nil
}
