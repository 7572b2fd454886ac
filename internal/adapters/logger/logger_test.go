package logger_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"go.trai.ch/critpath/internal/adapters/logger"
	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/zerr"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	originalStderr := os.Stderr
	defer func() { os.Stderr = originalStderr }()

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	if err := w.Close(); err != nil {
		return "", err
	}
	output := <-done
	return output, r.Close()
}

func newBufferLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	lg, ok := logger.New().(*logger.Logger)
	if !ok {
		t.Fatal("Expected New() to return *logger.Logger")
	}
	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	return lg, buf
}

func TestNew_WritesToStderr(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	output, err := captureStderr(func() {
		logger.New().Info("test initialization")
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "test initialization") {
		t.Errorf("Expected logger to log 'test initialization', got: %s", output)
	}
}

func TestLogger_InfoWithAttrs(t *testing.T) {
	lg, buf := newBufferLogger(t)

	lg.Info("report served from cache", "file", "plan.yaml")

	if got := buf.String(); got != "report served from cache file=plan.yaml\n" {
		t.Errorf("Unexpected output: %q", got)
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newBufferLogger(t)

	lg.Warn("constraint not satisfied", "task", "deploy")

	if got := buf.String(); got != "! constraint not satisfied task=deploy\n" {
		t.Errorf("Unexpected output: %q", got)
	}
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newBufferLogger(t)

	err := zerr.With(zerr.Wrap(domain.ErrCycleDetected, "task graph is not acyclic"), "cycle", "A -> B -> A")
	lg.Error(err)

	want := "✗ Error: task graph is not acyclic\n" +
		"       cycle: A -> B -> A\n" +
		"\n" +
		"  Caused by:\n" +
		"    → cycle detected\n"
	if got := buf.String(); got != want {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newBufferLogger(t)

	lg.Error(nil)

	if buf.Len() != 0 {
		t.Errorf("Expected no output for nil error, got: %q", buf.String())
	}
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newBufferLogger(t)
	lg.SetJSON(true)

	lg.Warn("constraint not satisfied", "task", "deploy")
	lg.Error(os.ErrPermission)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 JSON lines, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if record["level"] != "WARN" || record["task"] != "deploy" {
		t.Errorf("Unexpected record: %v", record)
	}

	if err := json.Unmarshal([]byte(lines[1]), &record); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if record["error"] != "permission denied" {
		t.Errorf("Unexpected error field: %v", record["error"])
	}
}
