// Package cas implements the content addressed report cache.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/critpath/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ReportStore = (*Store)(nil)

// Store implements ports.ReportStore using a file-per-schedule strategy.
// Entries are keyed by the absolute path of the schedule; the caller compares
// the stored input hash to decide whether an entry is still valid.
type Store struct{}

// NewStore creates a new ReportStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the cached report of the schedule at path.
func (s *Store) Get(root, path string) (*domain.CachedReport, error) {
	filename := s.getFilename(root, path)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}

	var entry domain.CachedReport
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", path)
	}

	if entry.Path != absPath(path) {
		return nil, nil
	}
	entry.Report.Status = domain.NormalizeAnalysisStatus(string(entry.Report.Status))
	return &entry, nil
}

// Put stores the cached report.
func (s *Store) Put(root string, entry domain.CachedReport) error {
	entry.Path = absPath(entry.Path)

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, entry.Path)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

func (s *Store) getFilename(root, path string) string {
	hash := sha256.Sum256([]byte(absPath(path)))
	return filepath.Join(root, hex.EncodeToString(hash[:])+".json")
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
