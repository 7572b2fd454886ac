// Package fs provides filesystem adapters.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/critpath/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content digests of schedule files.
// The salt is mixed into every digest so that cached reports do not survive
// a change of the tool that computed them.
type Hasher struct {
	salt string
}

// NewHasher creates a new Hasher with the given salt.
func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// ComputeFileHash computes the XXHash of the salt and a file's content.
func (h *Hasher) ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	_, _ = hasher.WriteString(h.salt)
	_, _ = hasher.Write([]byte{0}) // Separator

	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
