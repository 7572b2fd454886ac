package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeFileHash returns a stable hex digest of the file's content.
	ComputeFileHash(path string) (string, error)
}
