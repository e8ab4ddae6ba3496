package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/switchpuzzle/pkg/cache"
	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/observability"
	"github.com/matzehuels/switchpuzzle/pkg/puzzle"
	"github.com/matzehuels/switchpuzzle/pkg/render"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// cacheKeyType labels report cache events in hooks.
const cacheKeyType = "reports"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Workers is passed to route.Engine. Values <= 0 use GOMAXPROCS.
	Workers int
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Solve runs the complete load → evaluate → render pipeline with caching.
func (r *Runner) Solve(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	in, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Input = in
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Stages = len(in.Stages)
	result.Stats.Routes = route.Count(in.Stages)

	logger.Info("loaded puzzle",
		"arity", in.Arity(),
		"stages", result.Stats.Stages,
		"routes", result.Stats.Routes,
		"duration", result.Stats.LoadTime)

	// Stage 2: Evaluate
	evalStart := time.Now()
	reports, summary, hit, err := r.EvaluateWithCacheInfo(ctx, result.RunID, in, opts)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	result.Reports = reports
	result.Summary = summary
	result.CacheHit = hit
	result.Stats.EvaluateTime = time.Since(evalStart)

	logger.Info("evaluated routes",
		"emitted", summary.Emitted,
		"reached", summary.Reached,
		"cached", hit,
		"duration", result.Stats.EvaluateTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Engine().OnRenderStart(ctx, result.RunID, opts.Formats)
	artifacts, err := Render(ctx, in, reports, summary, opts)
	observability.Engine().OnRenderComplete(ctx, result.RunID, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load decodes and validates the puzzle named by opts.
func Load(opts Options) (route.Input, error) {
	p := opts.Puzzle
	if p == nil {
		var err error
		if opts.Path != "" {
			p, err = puzzle.Load(opts.Path)
		} else {
			p, err = puzzle.Decode(opts.Data, opts.Format)
		}
		if err != nil {
			return route.Input{}, err
		}
	}
	return p.Build()
}

// EvaluateWithCacheInfo streams every route of in, or reads the reports from
// the cache, and returns cache hit info.
func (r *Runner) EvaluateWithCacheInfo(ctx context.Context, runID string, in route.Input, opts Options) ([]route.Report, route.Summary, bool, error) {
	cacheKey := r.Keyer.ReportKey(cache.InputHash(in), cache.ReportKeyOpts{Limit: opts.Limit})

	// Try cache first (unless disabled)
	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := render.DecodeDocument(data); err == nil {
				if reports, err := doc.RouteReports(); err == nil {
					observability.Cache().OnCacheHit(ctx, cacheKeyType)
					return reports, doc.Summary, true, nil
				}
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	reports, summary, err := r.Evaluate(ctx, runID, in, opts.Limit)
	if err != nil {
		return nil, route.Summary{}, false, err
	}

	// Cache the result
	if !opts.NoCache {
		var buf bytes.Buffer
		if err := render.JSON(&buf, in, reports, summary); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.DefaultReportTTL); err != nil {
				r.Logger.Warn("cache store failed", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, cacheKeyType, buf.Len())
			}
		}
	}

	return reports, summary, false, nil
}

// Evaluate streams the routes of in through the engine. A positive limit
// stops emission after that many reports.
func (r *Runner) Evaluate(ctx context.Context, runID string, in route.Input, limit int) ([]route.Report, route.Summary, error) {
	total := route.Count(in.Stages)
	capacity := total
	if limit > 0 {
		capacity = min(capacity, limit)
	}
	reports := make([]route.Report, 0, min(capacity, 1<<16))

	start := time.Now()
	observability.Engine().OnEvaluateStart(ctx, runID, total)

	engine := route.Engine{Workers: r.Workers}
	err := engine.Stream(ctx, in, func(rep route.Report) error {
		reports = append(reports, rep)
		if limit > 0 && len(reports) >= limit {
			return route.ErrStop
		}
		return nil
	})

	summary := route.Summarize(reports, total)
	observability.Engine().OnEvaluateComplete(ctx, runID, total, summary.Reached, time.Since(start), err)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, route.Summary{}, err
		}
		if perrors.GetCode(err) == "" {
			err = perrors.Wrap(perrors.ErrCodeInternal, err, "evaluate routes")
		}
		return nil, route.Summary{}, err
	}
	return reports, summary, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
