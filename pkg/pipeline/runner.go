package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/cache"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/render/graphdot"
	"github.com/matzehuels/stipple/pkg/render/sink"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use it.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options, as long as
// each scene, theme and compiler is used by one goroutine at a time.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the compile → render pipeline for s under th.
func (r *Runner) Execute(ctx context.Context, s *scene.Scene, th *theme.Theme, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Compile
	compileStart := time.Now()
	dl, reused, err := r.Compile(ctx, s, th, opts)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	result.DrawList = dl
	result.Stats.Items = len(dl.Items)
	result.Stats.CompileTime = time.Since(compileStart)
	result.CacheInfo.CompileReused = reused

	opts.Logger.Info("compiled draw list",
		"items", len(dl.Items),
		"reused", reused,
		"duration", result.Stats.CompileTime)

	// Stage 2: Render
	renderStart := time.Now()
	hash, artifacts, hit, err := r.RenderWithCacheInfo(ctx, dl, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Hash = hash
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Compile compiles s under th, through opts.Compiler when one is set.
func (r *Runner) Compile(ctx context.Context, s *scene.Scene, th *theme.Theme, opts Options) (render.DrawList, bool, error) {
	c := opts.Compiler
	if c == nil {
		c = render.NewCompiler(opts.RenderOptions())
	}
	return c.Compile(ctx, s, th)
}

// RenderWithCacheInfo renders dl into every requested format, serving from
// the cache when all formats are present. It returns the draw-list hash the
// artifacts are stored under and whether the cache served the whole request.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dl render.DrawList, opts Options) (string, map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return "", nil, false, err
	}
	r.applyLogger(&opts)

	hash, err := HashDrawList(dl)
	if err != nil {
		return "", nil, false, fmt.Errorf("hash draw list: %w", err)
	}

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "key", key, "error", err)
				break
			}
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return hash, artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(dl, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return "", nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return hash, rendered, false, nil
}

// RenderGraphWithCacheInfo renders the group graph of s in format, keyed by
// the hash of its DOT source.
func (r *Runner) RenderGraphWithCacheInfo(ctx context.Context, s *scene.Scene, th *theme.Theme, format string, scale float64, crumbs bool) ([]byte, bool, error) {
	if err := ValidateGraphFormat(format); err != nil {
		return nil, false, err
	}
	if scale <= 0 {
		scale = DefaultScale
	}

	dot := graphdot.ToDOT(s, graphdot.Options{Crumbs: crumbs, Theme: th})
	if format == FormatDOT {
		return []byte(dot), false, nil
	}

	key := r.Keyer.GraphKey(cache.Hash([]byte(dot)), cache.GraphKeyOpts{Format: format, Scale: scale})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	data, err := renderDOT(dot, format, scale)
	if err != nil {
		return nil, false, fmt.Errorf("render graph %s: %w", format, err)
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLGraph); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	return data, false, nil
}

// RenderGraph is a convenience wrapper that calls RenderGraphWithCacheInfo and discards the cache hit info.
func (r *Runner) RenderGraph(ctx context.Context, s *scene.Scene, th *theme.Theme, format string, scale float64, crumbs bool) ([]byte, error) {
	data, _, err := r.RenderGraphWithCacheInfo(ctx, s, th, format, scale, crumbs)
	return data, err
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

// HashDrawList returns the content hash of dl: its JSON export with styles,
// plus the markers, fonts and gradient definitions the export names only.
func HashDrawList(dl render.DrawList) (string, error) {
	data, err := sink.RenderJSON(dl, sink.WithJSONStyles())
	if err != nil {
		return "", err
	}
	buf := bytes.NewBuffer(data)

	seen := make(map[*theme.Style]bool)
	for _, it := range dl.Items {
		st := it.Style
		if st == nil || seen[st] {
			continue
		}
		seen[st] = true
		fmt.Fprintf(buf, "\nstyle %s %v %v %v", st.Name, deref(st.Markers.Start), deref(st.Markers.End), deref(st.Font))
	}
	if dl.Theme != nil {
		for _, name := range dl.Theme.GradientNames() {
			g, _ := dl.Theme.Gradient(name)
			fmt.Fprintf(buf, "\ngradient %s %v", name, g)
		}
	}
	return cache.Hash(buf.Bytes()), nil
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
