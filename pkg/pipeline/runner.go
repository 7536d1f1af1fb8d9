package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphwalk/pkg/cache"
	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	pkgio "github.com/matzehuels/graphwalk/pkg/io"
	"github.com/matzehuels/graphwalk/pkg/observability"
	"github.com/matzehuels/graphwalk/pkg/render/nodelink"
	"github.com/matzehuels/graphwalk/pkg/search"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Execute runs build → search → render. The search stage is skipped with
// opts.SkipSearch and the render stage when opts.Formats is empty.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	g, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.BuildHit = buildHit
	result.GraphHash = graphHash(g)

	r.Logger.Info("built graph",
		"graph", g.Params(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Search
	if !opts.SkipSearch {
		res, err := r.Search(ctx, g, opts)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		result.Search = &res
		result.Stats.SearchTime = res.Elapsed
	}

	// Stage 3: Render
	if len(opts.Formats) == 0 {
		return result, nil
	}
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithHash(ctx, g, result.GraphHash, result.Search, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds or imports the graph and reports whether it came
// from the cache. Imported graphs bypass the cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}

	if opts.Input != "" {
		g, err := pkgio.ImportJSON(opts.Input)
		if err != nil {
			return nil, false, err
		}
		opts.Logger.Debug("imported graph", "path", opts.Input, "nodes", g.NodeCount())
		return g, false, nil
	}

	p := opts.Params()
	cacheKey := r.Keyer.GraphKey(p)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, err := pkgio.ReadJSON(bytes.NewReader(data))
			if err == nil && g.Params() == p {
				return g, true, nil
			}
			opts.Logger.Warn("discarding unreadable cached graph", "key", cacheKey)
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, string(p.Kind), p.Nodes)
	began := time.Now()
	g, err := graph.Build(p)
	if err != nil {
		hooks.OnBuildComplete(ctx, string(p.Kind), p.Nodes, 0, time.Since(began), err)
		return nil, false, err
	}
	hooks.OnBuildComplete(ctx, string(p.Kind), g.NodeCount(), g.EdgeCount(), time.Since(began), nil)

	if g.EdgeCount() <= MaxCachedEdges {
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(g, &buf); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.GraphTTL); err != nil {
				opts.Logger.Warn("cache write failed", "error", err)
			}
		}
	}
	return g, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*graph.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, opts)
	return g, err
}

// Search runs the configured strategy between opts.Start and opts.Goal.
// A nil Goal means the highest node of g. Endpoints outside the graph fail
// with NODE_NOT_FOUND; a missing path is a successful result with Found false.
func (r *Runner) Search(ctx context.Context, g *graph.Graph, opts Options) (search.Result, error) {
	r.applyLogger(&opts)
	strategy, err := opts.ValidateForSearch()
	if err != nil {
		return search.Result{}, err
	}

	start, goal := *opts.Start, int(g.MaxNode())
	if opts.Goal != nil {
		goal = *opts.Goal
	}
	if err := gwerrors.ValidateNodeRange("start", start, int(g.MaxNode())); err != nil {
		return search.Result{}, err
	}
	if err := gwerrors.ValidateNodeRange("goal", goal, int(g.MaxNode())); err != nil {
		return search.Result{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnSearchStart(ctx, string(strategy.Kind))
	res, err := search.Run(g, graph.NodeID(start), graph.NodeID(goal), strategy)
	hooks.OnSearchComplete(ctx, string(strategy.Kind), res.Found, res.Hops(), res.Elapsed, err)
	if err != nil {
		return search.Result{}, err
	}

	opts.Logger.Info("searched",
		"strategy", strategy,
		"start", start,
		"goal", goal,
		"found", res.Found,
		"hops", res.Hops(),
		"duration", res.Elapsed)
	return res, nil
}

// RenderWithCacheInfo draws g with res highlighted (res may be nil) in every
// requested format, and reports whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, res *search.Result, opts Options) (map[string][]byte, bool, error) {
	return r.renderWithHash(ctx, g, graphHash(g), res, opts)
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, res *search.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, res, opts)
	return artifacts, err
}

func (r *Runner) renderWithHash(ctx context.Context, g *graph.Graph, hash string, res *search.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if err := nodelink.CheckSize(g); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := hash != ""
	for _, format := range opts.Formats {
		if !allCached {
			break
		}
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, res))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	dot := nodelink.ToDOT(g, resultPath(res), dotOptions(g, res, opts))
	hooks := observability.Pipeline()
	for _, format := range opts.Formats {
		hooks.OnRenderStart(ctx, format)
		began := time.Now()
		data, err := nodelink.Render(ctx, dot, format, opts.Scale)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(began), err)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if hash != "" {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, res))
			if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
				opts.Logger.Warn("cache write failed", "format", format, "error", err)
			}
		}
	}
	return artifacts, false, nil
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

// graphHash hashes the JSON form of g, or returns "" when g is too large
// to serialize cheaply.
func graphHash(g *graph.Graph) string {
	if g.EdgeCount() > MaxCachedEdges {
		return ""
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(g, &buf); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

func resultPath(res *search.Result) graph.Path {
	if res == nil || !res.Found {
		return nil
	}
	return res.Path
}

func dotOptions(g *graph.Graph, res *search.Result, opts Options) nodelink.Options {
	o := nodelink.Options{
		Title:    opts.Title,
		Detailed: opts.Detailed,
		Layout:   opts.Layout,
	}
	if o.Title == "" {
		o.Title = g.Params().String()
		if res != nil {
			o.Title += " | " + res.Strategy.String()
			if !res.Found {
				o.Title += " | no path"
			}
		}
	}
	if res != nil {
		o.Start, o.Goal = res.Start, res.Goal
	}
	return o
}
