package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/critpath/internal/core/domain"
)

func TestNormalizeAnalysisStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.AnalysisStatus
	}{
		{"completed", domain.AnalysisStatusCompleted},
		{"CACHED", domain.AnalysisStatusCached},
		{"failed", domain.AnalysisStatusFailed},
		{"unknown", domain.AnalysisStatusCompleted},
		{"", domain.AnalysisStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeAnalysisStatus(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    domain.LogLevel
		expected string
	}{
		{domain.LogLevelDebug, "DEBUG"},
		{domain.LogLevelInfo, "INFO"},
		{domain.LogLevelWarn, "WARN"},
		{domain.LogLevelError, "ERROR"},
		{domain.LogLevel(999), "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}
