package app_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/critpath/internal/adapters/telemetry"
	"go.trai.ch/critpath/internal/app"
	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/critpath/internal/core/ports"
	"go.trai.ch/critpath/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var (
	jan1  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func day(n int) time.Time {
	return jan1.AddDate(0, 0, n)
}

type harness struct {
	loader    *mocks.MockConfigLoader
	hasher    *mocks.MockHasher
	store     *mocks.MockReportStore
	logger    *mocks.MockLogger
	renderer  *mocks.MockRenderer
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	app       *app.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		loader:    mocks.NewMockConfigLoader(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		store:     mocks.NewMockReportStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		renderer:  mocks.NewMockRenderer(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
	}

	h.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, h.vertex
		}).AnyTimes()
	h.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	h.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	h.app = app.New(
		h.loader, h.hasher, h.store, h.logger,
		telemetry.NewNoOpTracer(), h.telemetry,
		ports.Renderers{"text": h.renderer},
	).WithClock(func() time.Time { return clock })
	return h
}

func (h *harness) expectRender() *[]domain.Report {
	var got []domain.Report
	h.renderer.EXPECT().Render(io.Discard, gomock.Any(), false).
		DoAndReturn(func(_ io.Writer, reports []domain.Report, _ bool) error {
			got = reports
			return nil
		})
	return &got
}

func options() app.AnalyzeOptions {
	return app.AnalyzeOptions{Format: "text", CacheDir: "cache", Out: io.Discard}
}

// planProject is design (3 days) followed by build (5 days), with docs (2 days) in parallel.
func planProject(t *testing.T) *domain.Project {
	t.Helper()
	p := domain.NewProject("demo")
	design := domain.NewInternedString("design")
	require.NoError(t, p.AddTask(&domain.Task{ID: design, Name: "Design", Start: day(0), End: day(3)}))
	require.NoError(t, p.AddTask(&domain.Task{ID: domain.NewInternedString("docs"), Start: day(0), End: day(2)}))
	require.NoError(t, p.AddTask(&domain.Task{
		ID:           domain.NewInternedString("build"),
		Start:        day(3),
		End:          day(8),
		Dependencies: []domain.Link{{From: design, To: domain.NewInternedString("build")}},
	}))
	require.NoError(t, p.Validate())
	return p
}

func TestApp_Analyze_ComputesAndStores(t *testing.T) {
	h := newHarness(t)
	reports := h.expectRender()

	h.hasher.EXPECT().ComputeFileHash("plan.yaml").Return("h1", nil)
	h.store.EXPECT().Get("cache", "plan.yaml").Return(nil, nil)
	h.loader.EXPECT().Load("plan.yaml").Return(planProject(t), nil)

	var stored domain.CachedReport
	h.store.EXPECT().Put("cache", gomock.Any()).DoAndReturn(func(_ string, e domain.CachedReport) error {
		stored = e
		return nil
	})

	require.NoError(t, h.app.Analyze(context.Background(), []string{"plan.yaml"}, options()))

	require.Len(t, *reports, 1)
	rep := (*reports)[0]
	assert.Equal(t, "plan.yaml", rep.Source)
	assert.Equal(t, "demo", rep.Project)
	assert.Equal(t, domain.AnalysisStatusCompleted, rep.Status)
	assert.Equal(t, 8, rep.Duration)
	assert.Equal(t, jan1, rep.Start)
	assert.Equal(t, day(8), rep.Finish)
	assert.Equal(t, []string{"design", "build"}, rep.CriticalPath)

	require.Len(t, rep.Tasks, 3)
	assert.Equal(t, []string{"docs", "design", "build"},
		[]string{rep.Tasks[0].ID, rep.Tasks[1].ID, rep.Tasks[2].ID})
	docs := rep.Tasks[0]
	assert.False(t, docs.Critical)
	assert.Equal(t, 6, docs.Slack)
	assert.Equal(t, "Design", rep.Tasks[1].Name)
	assert.Empty(t, rep.Tasks[2].Name)
	assert.Equal(t, day(3), rep.Tasks[2].Start)

	assert.Equal(t, "plan.yaml", stored.Path)
	assert.Equal(t, "h1", stored.InputHash)
	assert.Equal(t, clock, stored.Timestamp)
	assert.Equal(t, rep, stored.Report)
}

func TestApp_Analyze_CacheHit(t *testing.T) {
	h := newHarness(t)
	reports := h.expectRender()

	cached := domain.Report{Source: "old.yaml", Status: domain.AnalysisStatusCompleted, Duration: 8}
	h.hasher.EXPECT().ComputeFileHash("plan.yaml").Return("h1", nil)
	h.store.EXPECT().Get("cache", "plan.yaml").Return(&domain.CachedReport{InputHash: "h1", Report: cached}, nil)
	h.vertex.EXPECT().Cached()

	require.NoError(t, h.app.Analyze(context.Background(), []string{"plan.yaml"}, options()))

	require.Len(t, *reports, 1)
	assert.Equal(t, domain.AnalysisStatusCached, (*reports)[0].Status)
	assert.Equal(t, "plan.yaml", (*reports)[0].Source)
	assert.Equal(t, 8, (*reports)[0].Duration)
}

func TestApp_Analyze_StaleCacheRecomputes(t *testing.T) {
	h := newHarness(t)
	reports := h.expectRender()

	h.hasher.EXPECT().ComputeFileHash("plan.yaml").Return("h2", nil)
	h.store.EXPECT().Get("cache", "plan.yaml").Return(&domain.CachedReport{InputHash: "h1"}, nil)
	h.loader.EXPECT().Load("plan.yaml").Return(planProject(t), nil)
	h.store.EXPECT().Put("cache", gomock.Any()).Return(nil)

	require.NoError(t, h.app.Analyze(context.Background(), []string{"plan.yaml"}, options()))
	assert.Equal(t, domain.AnalysisStatusCompleted, (*reports)[0].Status)
}

func TestApp_Analyze_NoCacheSkipsLookup(t *testing.T) {
	h := newHarness(t)
	h.expectRender()

	opts := options()
	opts.NoCache = true

	h.hasher.EXPECT().ComputeFileHash("plan.yaml").Return("h1", nil)
	h.loader.EXPECT().Load("plan.yaml").Return(planProject(t), nil)
	h.store.EXPECT().Put("cache", gomock.Any()).Return(nil)

	require.NoError(t, h.app.Analyze(context.Background(), []string{"plan.yaml"}, opts))
}

func TestApp_Analyze_CacheErrorsAreWarnings(t *testing.T) {
	h := newHarness(t)
	h.expectRender()

	h.hasher.EXPECT().ComputeFileHash("plan.yaml").Return("h1", nil)
	h.store.EXPECT().Get("cache", "plan.yaml").Return(nil, errors.New("corrupt"))
	h.loader.EXPECT().Load("plan.yaml").Return(planProject(t), nil)
	h.store.EXPECT().Put("cache", gomock.Any()).Return(errors.New("read-only"))
	h.logger.EXPECT().Warn("ignoring unreadable cache entry", gomock.Any())
	h.logger.EXPECT().Warn("failed to cache report", gomock.Any())

	require.NoError(t, h.app.Analyze(context.Background(), []string{"plan.yaml"}, options()))
}

func TestApp_Analyze_FailureKeepsOtherReports(t *testing.T) {
	h := newHarness(t)
	reports := h.expectRender()

	opts := options()
	opts.NoCache = true

	h.hasher.EXPECT().ComputeFileHash(gomock.Any()).Return("h", nil).Times(2)
	h.loader.EXPECT().Load("broken.yaml").Return(nil, domain.ErrCycleDetected)
	h.loader.EXPECT().Load("plan.yaml").Return(planProject(t), nil)
	h.store.EXPECT().Put("cache", gomock.Any()).Return(nil)
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrCycleDetected)
	})

	err := h.app.Analyze(context.Background(), []string{"broken.yaml", "plan.yaml"}, opts)
	require.ErrorIs(t, err, domain.ErrAnalysisFailed)

	require.Len(t, *reports, 2)
	assert.Equal(t, "broken.yaml", (*reports)[0].Source)
	assert.Equal(t, domain.AnalysisStatusFailed, (*reports)[0].Status)
	assert.NotEmpty(t, (*reports)[0].Error)
	assert.Equal(t, "plan.yaml", (*reports)[1].Source)
	assert.Equal(t, domain.AnalysisStatusCompleted, (*reports)[1].Status)
}

func TestApp_Analyze_ViolationsAreLogged(t *testing.T) {
	h := newHarness(t)
	reports := h.expectRender()

	p := domain.NewProject("pinned")
	require.NoError(t, p.AddTask(&domain.Task{
		ID:    domain.NewInternedString("a"),
		Start: day(0),
		End:   day(2),
		StartConstraints: []domain.Constraint{
			domain.NotEarlierThan(day(9)),
			domain.EqualTo(day(4)),
		},
	}))
	require.NoError(t, p.Validate())

	opts := options()
	opts.NoCache = true

	h.hasher.EXPECT().ComputeFileHash("pinned.yaml").Return("h", nil)
	h.loader.EXPECT().Load("pinned.yaml").Return(p, nil)
	h.store.EXPECT().Put("cache", gomock.Any()).Return(nil)
	h.logger.EXPECT().Warn("constraint not satisfied", gomock.Any())

	require.NoError(t, h.app.Analyze(context.Background(), []string{"pinned.yaml"}, opts))

	require.Len(t, (*reports)[0].Violations, 1)
	v := (*reports)[0].Violations[0]
	assert.Equal(t, "a", v.Task)
	assert.Equal(t, "start", v.Side)
	assert.Equal(t, day(4), v.Applied)
}

func TestApp_Analyze_InvalidInvocation(t *testing.T) {
	h := newHarness(t)

	err := h.app.Analyze(context.Background(), nil, options())
	require.ErrorIs(t, err, domain.ErrNoInputFiles)

	opts := options()
	opts.Format = "xml"
	err = h.app.Analyze(context.Background(), []string{"plan.yaml"}, opts)
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestApp_Analyze_Cancelled(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.app.Analyze(ctx, []string{"plan.yaml"}, options())
	require.ErrorIs(t, err, context.Canceled)
}

func TestApp_Analyze_RenderError(t *testing.T) {
	h := newHarness(t)

	opts := options()
	opts.NoCache = true

	h.hasher.EXPECT().ComputeFileHash("plan.yaml").Return("h", nil)
	h.loader.EXPECT().Load("plan.yaml").Return(planProject(t), nil)
	h.store.EXPECT().Put("cache", gomock.Any()).Return(nil)
	h.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), false).Return(errors.New("closed pipe"))

	require.Error(t, h.app.Analyze(context.Background(), []string{"plan.yaml"}, opts))
}

func TestApp_Clean(t *testing.T) {
	h := newHarness(t)

	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entry.json"), []byte("{}"), 0o600))

	h.logger.EXPECT().Info("cache removed", "path", dir)

	require.NoError(t, h.app.Clean(context.Background(), app.CleanOptions{CacheDir: dir}))
	_, err := os.Stat(dir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
