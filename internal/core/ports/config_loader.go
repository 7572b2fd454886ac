package ports

import "go.trai.ch/critpath/internal/core/domain"

// ConfigLoader defines the interface for loading schedule files.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the schedule file at path and returns the validated project.
	Load(path string) (*domain.Project, error)
}
