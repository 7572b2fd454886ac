package progrock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	adapter "go.trai.ch/critpath/internal/adapters/telemetry/progrock"
	"go.trai.ch/critpath/internal/core/domain"
)

// captureWriter keeps every status update written to it.
type captureWriter struct {
	mu      sync.Mutex
	updates []*progrock.StatusUpdate
	closed  bool
}

func (w *captureWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates = append(w.updates, update)
	return nil
}

func (w *captureWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *captureWriter) vertices() map[string]*progrock.Vertex {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]*progrock.Vertex)
	for _, u := range w.updates {
		for _, v := range u.Vertexes {
			out[v.Name] = v
		}
	}
	return out
}

func TestNew(t *testing.T) {
	recorder := adapter.New()
	assert.NotNil(t, recorder)
	assert.NoError(t, recorder.Close())
}

func TestRecorder_Integration(t *testing.T) {
	recorder := adapter.New()

	_, vertex := recorder.Record(context.Background(), "plan.yaml")

	if _, err := vertex.Stdout().Write([]byte("Standard Output\n")); err != nil {
		t.Errorf("failed to write to stdout: %v", err)
	}
	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Log(domain.LogLevelWarn, "warn msg")
	vertex.Complete(nil)

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}

func TestRecorder_VertexStates(t *testing.T) {
	w := &captureWriter{}
	recorder := adapter.NewRecorder(w)

	_, ok := recorder.Record(context.Background(), "ok.yaml")
	ok.Complete(nil)

	_, cached := recorder.Record(context.Background(), "cached.yaml")
	cached.Cached()
	cached.Complete(nil)

	_, failed := recorder.Record(context.Background(), "failed.yaml")
	failed.Complete(errors.New("cycle detected"))

	require.NoError(t, recorder.Close())
	assert.True(t, w.closed)

	vertices := w.vertices()
	require.Contains(t, vertices, "ok.yaml")
	require.Contains(t, vertices, "cached.yaml")
	require.Contains(t, vertices, "failed.yaml")

	assert.NotNil(t, vertices["ok.yaml"].Completed)
	assert.Nil(t, vertices["ok.yaml"].Error)
	assert.True(t, vertices["cached.yaml"].Cached)
	require.NotNil(t, vertices["failed.yaml"].Error)
	assert.Equal(t, "cycle detected", *vertices["failed.yaml"].Error)
}
