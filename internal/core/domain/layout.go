package domain

import "path/filepath"

const (
	// DirName is the name of the tool's working directory.
	DirName = ".critpath"

	// CacheDirName is the name of the report cache directory.
	CacheDirName = "cache"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default directory of the report cache.
// It joins .critpath and cache.
func DefaultCachePath() string {
	return filepath.Join(DirName, CacheDirName)
}
