package ports

import "go.trai.ch/critpath/internal/core/domain"

// ReportStore defines the interface for caching analysis reports.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportStore interface {
	// Get retrieves the cached report of the schedule at path from the cache under root.
	// Returns nil, nil if not found.
	Get(root, path string) (*domain.CachedReport, error)

	// Put stores the report under root.
	Put(root string, entry domain.CachedReport) error
}
