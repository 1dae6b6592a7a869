package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/worldsvg/pkg/cache"
	"github.com/matzehuels/worldsvg/pkg/io"
	"github.com/matzehuels/worldsvg/pkg/observability"
)

// cacheKeyType labels cache events for hooks.
const cacheKeyType = "render"

// Runner executes the pipeline with caching.
//
// A Runner holds no per-run state; it can be shared by goroutines running
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the DefaultKeyer, and a nil logger selects log.Default().
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs decode → render → convert for opts.InputPath. Cache failures
// are logged and never fail the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	start := time.Now()

	data, err := io.ReadFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.RenderKey(cache.Hash(data), opts.RenderKeyOpts())

	if !opts.Refresh {
		if result, ok := r.lookup(ctx, key, logger); ok {
			result.Duration = time.Since(start)
			r.logSummary(logger, result)
			return result, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, opts.InputPath)
	decodeStart := time.Now()
	w, err := Decode(data, opts)
	cells := 0
	if w != nil {
		cells = len(w.Cells)
	}
	hooks.OnDecodeComplete(ctx, opts.InputPath, cells, time.Since(decodeStart), err)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", opts.InputPath, err)
	}
	logger.Debug("decoded world", "cells", len(w.Cells), "features", w.FeatureCount())

	result, err := Render(ctx, w, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Duration = time.Since(start)

	r.store(ctx, key, result, logger)
	r.logSummary(logger, result)
	return result, nil
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Debug("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		logger.Debug("cache entry unreadable", "err", err)
		return nil, false
	}
	result.CacheHit = true
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &result, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result, logger *log.Logger) {
	data, err := json.Marshal(result)
	if err != nil {
		logger.Debug("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, DefaultTTL); err != nil {
		logger.Debug("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (r *Runner) logSummary(logger *log.Logger, result *Result) {
	s := result.Stats
	logger.Info("processed world",
		"cells", s.Cells,
		"bounds", s.Bounds,
		"layers", len(result.Layers),
		"primitives", s.Primitives,
		"cached", result.CacheHit,
		"duration", result.Duration.Round(time.Millisecond))
	if s.Skipped > 0 {
		logger.Debug("skipped unsupported geometries", "count", s.Skipped)
	}
	if s.Unlabeled > 0 {
		logger.Debug("skipped unlabeled points", "count", s.Unlabeled)
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
