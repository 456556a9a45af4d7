package ports

import "go.trai.ch/redo/internal/core/domain"

// DependencyStore persists the dependency records of each target's last
// successful build.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DependencyStore interface {
	// Get retrieves the record list for a target.
	// Returns nil, nil if the target has never been built.
	Get(target string) ([]domain.Dependency, error)

	// Put atomically replaces the record list for a target.
	Put(target string, deps []domain.Dependency) error
}

// RecordSink collects dependency records while a build is running.
// Sinks are plain files so that nested builds in child processes can append.
type RecordSink interface {
	// Create allocates a fresh, empty sink in dir and returns its path.
	Create(dir, prefix string) (string, error)

	// Append adds one record to the sink at path.
	Append(path string, dep domain.Dependency) error

	// Read returns every record in the sink at path, in append order.
	Read(path string) ([]domain.Dependency, error)
}
