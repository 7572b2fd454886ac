package domain

import "strings"

// AnalysisStatus is the outcome of analysing one schedule file.
type AnalysisStatus string

const (
	// AnalysisStatusCompleted means the schedule was computed during this run.
	AnalysisStatusCompleted AnalysisStatus = "completed"
	// AnalysisStatusCached means the report was served from the cache.
	AnalysisStatusCached AnalysisStatus = "cached"
	// AnalysisStatusFailed means the schedule could not be analysed.
	AnalysisStatusFailed AnalysisStatus = "failed"
)

// NormalizeAnalysisStatus converts a string to an AnalysisStatus, defaulting to completed if unknown.
func NormalizeAnalysisStatus(s string) AnalysisStatus {
	switch strings.ToLower(s) {
	case string(AnalysisStatusCached):
		return AnalysisStatusCached
	case string(AnalysisStatusFailed):
		return AnalysisStatusFailed
	default:
		return AnalysisStatusCompleted
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
