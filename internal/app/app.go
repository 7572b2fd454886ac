// Package app implements the application layer for critpath.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/critpath/internal/core/ports"
	"go.trai.ch/critpath/internal/engine/criticalpath"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	hasher       ports.Hasher
	store        ports.ReportStore
	logger       ports.Logger
	tracer       ports.Tracer
	telemetry    ports.Telemetry
	renderers    ports.Renderers
	now          func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	hasher ports.Hasher,
	store ports.ReportStore,
	log ports.Logger,
	tracer ports.Tracer,
	telemetry ports.Telemetry,
	renderers ports.Renderers,
) *App {
	return &App{
		configLoader: loader,
		hasher:       hasher,
		store:        store,
		logger:       log,
		tracer:       tracer,
		telemetry:    telemetry,
		renderers:    renderers,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to timestamp cached reports.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// AnalyzeOptions configuration for the Analyze method.
type AnalyzeOptions struct {
	// Format selects the renderer.
	Format string
	// NoCache skips the cache lookup; fresh reports are still stored.
	NoCache bool
	// CacheDir is the root of the report cache. Empty means domain.DefaultCachePath.
	CacheDir string
	// All lists every task instead of the critical ones only.
	All bool
	// Out receives the rendered reports. Nil means stdout.
	Out io.Writer
}

// Analyze computes the critical path of every schedule file and renders the reports in input order.
// A file that cannot be analysed is reported as failed; the other files are still rendered and
// ErrAnalysisFailed is returned afterwards.
func (a *App) Analyze(ctx context.Context, files []string, opts AnalyzeOptions) error {
	if len(files) == 0 {
		return domain.ErrNoInputFiles
	}

	renderer, ok := a.renderers[opts.Format]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "failed to select renderer"), "format", opts.Format)
	}
	if opts.CacheDir == "" {
		opts.CacheDir = domain.DefaultCachePath()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	ctx, span := a.tracer.Start(ctx, "analyze", ports.WithAttribute("files", len(files)))
	defer span.End()
	a.tracer.EmitPlan(ctx, files)

	reports := make([]domain.Report, len(files))
	failures := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return zerr.Wrap(err, "analysis cancelled")
			}
			rep, err := a.analyzeFile(gctx, file, opts)
			if err != nil {
				a.logger.Error(err)
				rep = domain.Report{Source: file, Status: domain.AnalysisStatusFailed, Error: err.Error()}
				failures[i] = true
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return err
	}

	if err := renderer.Render(out, reports, opts.All); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to render reports")
	}

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	if failed > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrAnalysisFailed, "some schedules could not be analysed"), "failed", failed)
		span.RecordError(err)
		return err
	}
	return nil
}

func (a *App) analyzeFile(ctx context.Context, file string, opts AnalyzeOptions) (domain.Report, error) {
	ctx, span := a.tracer.Start(ctx, "analyze_file", ports.WithAttribute("file", file))
	defer span.End()

	_, vertex := a.telemetry.Record(ctx, file)

	rep, cached, err := a.resolveReport(ctx, file, opts, vertex)
	if err != nil {
		span.RecordError(err)
		vertex.Complete(err)
		return domain.Report{}, err
	}

	span.SetAttribute("cached", cached)
	span.SetAttribute("duration_days", rep.Duration)
	span.SetAttribute("critical_tasks", len(rep.CriticalPath))
	if cached {
		vertex.Cached()
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d critical tasks over %d days", len(rep.CriticalPath), rep.Duration))
	vertex.Complete(nil)

	for _, v := range rep.Violations {
		a.logger.Warn("constraint not satisfied",
			"file", file,
			"task", v.Task,
			"side", v.Side,
			"proposed", v.Proposed.Format(domain.DateLayout),
			"applied", v.Applied.Format(domain.DateLayout),
		)
	}
	return rep, nil
}

// resolveReport returns the cached report of file when its content is unchanged,
// otherwise it computes and stores a fresh one.
func (a *App) resolveReport(ctx context.Context, file string, opts AnalyzeOptions, vertex ports.Vertex) (domain.Report, bool, error) {
	hash, err := a.hasher.ComputeFileHash(file)
	if err != nil {
		return domain.Report{}, false, zerr.Wrap(err, "failed to hash schedule")
	}

	if !opts.NoCache {
		entry, err := a.store.Get(opts.CacheDir, file)
		if err != nil {
			a.logger.Warn("ignoring unreadable cache entry", "file", file, "error", err.Error())
		}
		if entry != nil && entry.InputHash == hash {
			rep := entry.Report
			rep.Source = file
			rep.Status = domain.AnalysisStatusCached
			return rep, true, nil
		}
	}

	rep, err := a.compute(ctx, file, vertex)
	if err != nil {
		return domain.Report{}, false, err
	}

	entry := domain.CachedReport{Path: file, InputHash: hash, Timestamp: a.now(), Report: rep}
	if err := a.store.Put(opts.CacheDir, entry); err != nil {
		a.logger.Warn("failed to cache report", "file", file, "error", err.Error())
	}
	return rep, false, nil
}

func (a *App) compute(ctx context.Context, file string, vertex ports.Vertex) (domain.Report, error) {
	_, span := a.tracer.Start(ctx, "load")
	project, err := a.configLoader.Load(file)
	span.RecordError(err)
	span.End()
	if err != nil {
		return domain.Report{}, zerr.Wrap(err, "failed to load schedule")
	}
	vertex.Log(domain.LogLevelDebug, fmt.Sprintf("loaded %d tasks", project.Len()))

	_, span = a.tracer.Start(ctx, "calculate", ports.WithAttribute("tasks", project.Len()))
	result, err := criticalpath.Calculate[domain.InternedString](project)
	span.RecordError(err)
	span.End()
	if err != nil {
		return domain.Report{}, zerr.Wrap(err, "failed to calculate critical path")
	}

	return BuildReport(file, project, result), nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// CacheDir is the root of the report cache. Empty means domain.DefaultCachePath.
	CacheDir string
}

// Clean removes every cached report.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	dir := opts.CacheDir
	if dir == "" {
		dir = domain.DefaultCachePath()
	}
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove cache"), "path", dir)
	}
	a.logger.Info("cache removed", "path", dir)
	return nil
}
