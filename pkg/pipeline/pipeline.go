// Package pipeline provides the build → search → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: construct a graph from [graph.Params] or import one from JSON
//  2. Search: find a path between two nodes with BFS, DFS or DLS
//  3. Render: draw the graph with the path highlighted (SVG, PNG, PDF, DOT)
//
// Built graphs and rendered artifacts are cached; search results are not,
// because their elapsed time is part of the answer.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:     "connected",
//	    Nodes:    500,
//	    Fanout:   3,
//	    Start:    pipeline.Int(1),
//	    Goal:     pipeline.Int(250),
//	    Strategy: "dls",
//	    Limit:    pipeline.Int(10),
//	    Formats:  []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Stages can also be run on their own with [Runner.Build], [Runner.Search]
// and [Runner.Render].
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphwalk/pkg/cache"
	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/render"
	"github.com/matzehuels/graphwalk/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultNodes is the graph size used when none is given.
	DefaultNodes = 500

	// DefaultSeed seeds random graphs built without an explicit seed.
	DefaultSeed = uint64(42)

	// DefaultStrategy is the search strategy used when none is given.
	DefaultStrategy = "bfs"

	// DefaultLimit is the depth limit for DLS when none is given.
	DefaultLimit = 10

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxCachedEdges bounds the graphs written to the cache. Larger graphs
	// (K10000 has ~50M edges) are cheaper to rebuild than to serialize.
	MaxCachedEdges = 500_000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Kind    string `json:"kind,omitempty"`
	Nodes   int    `json:"nodes,omitempty"`
	Fanout  int    `json:"fanout,omitempty"`
	Seed    uint64 `json:"seed,omitempty"`
	Input   string `json:"-"` // JSON graph file; replaces building when set
	Refresh bool   `json:"refresh,omitempty"`

	// Search options. A nil Start means node 1, a nil Goal the highest node
	// and a nil Limit DefaultLimit. Explicit values, zero included, are
	// validated as given.
	Start      *int   `json:"start,omitempty"`
	Goal       *int   `json:"goal,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Limit      *int   `json:"limit,omitempty"`
	SkipSearch bool   `json:"skip_search,omitempty"`

	// Render options. No formats means no render stage.
	Formats  []string `json:"formats,omitempty"`
	Layout   string   `json:"layout,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Title    string   `json:"title,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built or imported graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph JSON. Empty for graphs
	// above MaxCachedEdges.
	GraphHash string

	// Search is the search outcome, nil when the stage was skipped.
	Search *search.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	SearchTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every stage's options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if !o.SkipSearch {
		if _, err := o.ValidateForSearch(); err != nil {
			return err
		}
	}
	if len(o.Formats) > 0 {
		if err := o.ValidateForRender(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the build options and applies their defaults.
// With Input set the build parameters are ignored.
func (o *Options) ValidateForBuild() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Input != "" {
		return gwerrors.ValidateOutputPath(o.Input)
	}
	kind, err := graph.ParseKind(o.Kind)
	if err != nil {
		return err
	}
	o.Kind = string(kind)
	if o.Nodes == 0 {
		o.Nodes = DefaultNodes
	}
	if err := gwerrors.ValidatePositive("nodes", o.Nodes); err != nil {
		return err
	}
	if o.Fanout < 0 {
		return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "fanout must be >= 0, got %d", o.Fanout)
	}
	if kind == graph.KindRandom && o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return nil
}

// Params returns the builder parameters. Fanout and seed are dropped for
// kinds that ignore them so equal graphs share a cache key.
func (o *Options) Params() graph.Params {
	p := graph.Params{Kind: graph.Kind(o.Kind), Nodes: o.Nodes}
	switch p.Kind {
	case graph.KindConnected:
		p.Fanout = o.Fanout
	case graph.KindRandom:
		p.Fanout = o.Fanout
		p.Seed = o.Seed
	}
	return p
}

// Int returns a pointer to v for the optional fields of [Options].
func Int(v int) *int { return &v }

// SetSearchDefaults fills in the search fields that were left nil.
func (o *Options) SetSearchDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Start == nil {
		o.Start = Int(1)
	}
	if o.Limit == nil {
		o.Limit = Int(DefaultLimit)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForSearch applies search defaults and parses the strategy.
// Endpoints are checked against the graph by [Runner.Search].
func (o *Options) ValidateForSearch() (search.Strategy, error) {
	o.SetSearchDefaults()
	return search.ParseStrategy(o.Strategy, *o.Limit)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := gwerrors.ValidateFormats(o.Formats, render.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for rendering format with the
// given search outcome highlighted.
func (o *Options) ArtifactKeyOpts(format string, res *search.Result) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Layout:   o.Layout,
		Detailed: o.Detailed,
		Title:    o.Title,
	}
	if format == render.FormatPNG {
		opts.Scale = o.Scale
	}
	if res != nil {
		opts.Strategy = res.Strategy.String()
		opts.Start = int(res.Start)
		opts.Goal = int(res.Goal)
	}
	return opts
}
