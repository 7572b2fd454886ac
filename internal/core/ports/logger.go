// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for logging.
// Attributes are alternating key and value pairs.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(err error)
}
