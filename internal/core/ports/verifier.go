package ports

// Verifier checks file existence.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// Exists reports whether path exists.
	Exists(path string) (bool, error)
}
