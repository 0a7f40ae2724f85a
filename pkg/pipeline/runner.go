package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/snaker/pkg/cache"
	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/observability"
	"github.com/matzehuels/snaker/pkg/render"
	"github.com/matzehuels/snaker/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, caching is disabled.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache("no cache configured")
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

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Generate
	genStart := time.Now()
	scene, spectrum, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Scene = scene
	result.Spectrum = spectrum
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.PathCount = scene.Paths
	result.Stats.StepCount = len(scene.Steps)
	result.CacheInfo.GenerateHit = genHit

	r.Logger.Info("filled grid",
		"size", [2]int{scene.Width, scene.Height},
		"paths", scene.Paths,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, sceneHash, renderHit, err := r.RenderWithCacheInfo(ctx, scene, spectrum, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.SceneHash = sceneHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo produces the scene for opts, from cache when
// possible, and reports whether the cache was hit.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (render.Scene, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return render.Scene{}, "", false, err
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Width, opts.Height)
	start := time.Now()

	cacheKey := r.Keyer.DrawingKey(opts.DrawingKeyOpts())
	reason, disabled := cache.Disabled(r.Cache)
	if disabled {
		opts.Logger.Debug("cache disabled", "reason", reason)
	}

	// Try cache first (unless refresh requested)
	if !opts.Refresh && !disabled {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			doc, err := sink.ReadJSON(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKey)
				hooks.OnGenerateComplete(ctx, opts.Width, opts.Height, doc.Scene.Paths, time.Since(start), nil)
				return doc.Scene, doc.Spectrum, true, nil
			}
			r.Logger.Debug("discarding unreadable cached scene", "key", cacheKey, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKey)
	}

	scene, spectrum, err := Generate(opts)
	hooks.OnGenerateComplete(ctx, opts.Width, opts.Height, scene.Paths, time.Since(start), err)
	if err != nil {
		return render.Scene{}, "", false, err
	}

	if disabled {
		return scene, spectrum, false, nil
	}
	if data, err := sink.RenderJSON(scene, sink.WithJSONSpectrum(spectrum)); err == nil {
		r.set(ctx, cacheKey, data, cache.DrawingTTL)
	}
	return scene, spectrum, false, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (render.Scene, string, error) {
	scene, spectrum, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return scene, spectrum, err
}

// RenderWithCacheInfo generates artifacts with caching. It returns the
// artifacts, the scene hash they are keyed under, and whether every
// artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene render.Scene, spectrum string, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Compute cache key from scene data
	sceneData, err := sink.RenderJSON(scene)
	if err != nil {
		err = errs.Wrap(errs.ErrCodeInternal, err, "serialize scene for cache key")
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, "", false, err
	}
	sceneHash := cache.Hash(sceneData)

	// Take what the cache has and render only the rest
	_, disabled := cache.Disabled(r.Cache)
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh && !disabled {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, key)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, key)
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, sceneHash, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, scene, spectrum, renderOpts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !disabled {
			r.set(ctx, r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format)), data, cache.ArtifactTTL)
		}
	}
	return artifacts, sceneHash, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the hash and cache hit info.
func (r *Runner) Render(ctx context.Context, scene render.Scene, spectrum string, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, scene, spectrum, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
