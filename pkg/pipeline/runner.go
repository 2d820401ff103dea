package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drawkit/pkg/cache"
	"github.com/matzehuels/drawkit/pkg/formula"
	"github.com/matzehuels/drawkit/pkg/layout"
	"github.com/matzehuels/drawkit/pkg/observability"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for its cache, logger and tool backends.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Rasterizer renders scene formulas. NewRunner sets a cached latex
	// rasterizer.
	Rasterizer formula.Rasterizer
	// Layouter places graph vertices. Nil means a cached Graphviz layouter
	// using each scene's engine.
	Layouter layout.Layouter
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
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		Rasterizer: formula.NewCachedRasterizer(formula.NewLatexRasterizer(), c, keyer),
	}
}

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	// Stage 1: Load
	loadStart := time.Now()
	s, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	hash, err := Hash(s)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Scene:     s,
		SceneHash: hash,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Frames = s.FrameCount()

	r.Logger.Info("loaded scene",
		"scene", s.Name,
		"frames", result.Stats.Frames,
		"duration", result.Stats.LoadTime)

	// Artifacts are keyed by scene content, so a hit skips the build too.
	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, hash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	observability.Render().OnRenderStart(ctx, s.Name, opts.Formats)
	start := time.Now()
	artifacts, err := r.build(ctx, s, opts, result)
	observability.Render().OnRenderComplete(ctx, s.Name, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// build runs stages 2 and 3 and records their timings in result.
func (r *Runner) build(ctx context.Context, s *scene.Scene, opts Options, result *Result) (map[string][]byte, error) {
	var d *scene.Drawing
	if opts.NeedsBuild() {
		buildStart := time.Now()
		var err error
		if d, err = r.Build(ctx, withSketch(s, opts.Sketch)); err != nil {
			return nil, fmt.Errorf("build: %w", err)
		}
		result.Stats.BuildTime = time.Since(buildStart)
		r.Logger.Debug("built scene", "duration", result.Stats.BuildTime)
	}

	renderStart := time.Now()
	artifacts, err := Render(ctx, s, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	return artifacts, nil
}

// cachedArtifacts returns every requested format from the cache, or false
// if any one of them is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// Build resolves s into a drawing using the runner's rasterizer and
// layouter.
func (r *Runner) Build(ctx context.Context, s *scene.Scene) (*scene.Drawing, error) {
	return scene.Build(ctx, s, scene.BuildOptions{
		Layouter:   r.layouter(s),
		Rasterizer: r.Rasterizer,
		Logger:     r.Logger,
	})
}

func (r *Runner) layouter(s *scene.Scene) layout.Layouter {
	if r.Layouter != nil {
		return r.Layouter
	}
	return layout.NewCached(layout.New(s.Layout), r.Cache, r.Keyer)
}

// RenderFrames builds the scene once and rasterizes every frame in order,
// handing each image to fn. It stops at the first error from fn. Frame,
// Formats and Refresh in opts are ignored.
func (r *Runner) RenderFrames(ctx context.Context, opts Options, fn func(frame int, img image.Image) error) error {
	opts.Formats = []string{FormatPNG}
	if err := opts.ValidateForRender(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	s, err := Load(opts)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	d, err := r.Build(ctx, withSketch(s, opts.Sketch))
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	n := s.FrameCount()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, s.Name, opts.Formats)
	for frame := range n {
		if err := ctx.Err(); err != nil {
			observability.Render().OnRenderComplete(ctx, s.Name, opts.Formats, time.Since(start), err)
			return err
		}
		img, err := Rasterize(ctx, d, frame, opts.Scale)
		if err == nil {
			err = fn(frame, img)
		}
		if err != nil {
			observability.Render().OnRenderComplete(ctx, s.Name, opts.Formats, time.Since(start), err)
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	observability.Render().OnRenderComplete(ctx, s.Name, opts.Formats, time.Since(start), nil)
	r.Logger.Info("rendered frames", "scene", s.Name, "frames", n, "duration", time.Since(start))
	return nil
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
