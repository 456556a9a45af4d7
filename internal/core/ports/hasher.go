package ports

import "github.com/opencontainers/go-digest"

// Hasher computes content signatures of files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Sign returns the signature of the file's bytes.
	Sign(path string) (digest.Digest, error)
}
