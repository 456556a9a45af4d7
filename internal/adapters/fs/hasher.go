// Package fs provides file system adapters for signing files, resolving
// recipes and checking existence.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/opencontainers/go-digest"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// XXH64 is the digest algorithm label used for xxhash signatures.
const XXH64 digest.Algorithm = "xxh64"

// Hasher signs file contents with the configured algorithm.
type Hasher struct {
	algorithm domain.SignatureAlgorithm
}

// NewHasher creates a new Hasher. Unknown algorithms fall back to sha256.
func NewHasher(algorithm domain.SignatureAlgorithm) *Hasher {
	if algorithm != domain.SignatureXXH64 {
		algorithm = domain.SignatureSHA256
	}
	return &Hasher{algorithm: algorithm}
}

// Sign returns the digest of the file's bytes.
func (h *Hasher) Sign(path string) (digest.Digest, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if h.algorithm == domain.SignatureXXH64 {
		return h.signXXH64(f, path)
	}

	d, err := digest.Canonical.FromReader(f)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return d, nil
}

func (h *Hasher) signXXH64(r io.Reader, path string) (digest.Digest, error) {
	hasher := xxhash.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return digest.NewDigestFromEncoded(XXH64, fmt.Sprintf("%016x", hasher.Sum64())), nil
}
