// Package bench compares search strategies on one graph.
//
// [Run] executes every requested strategy between the same two endpoints,
// concurrently, and collects a [Report] with one timed [search.Result] per
// strategy in the order they were requested:
//
//	g, _ := graph.BuildConnected(5000, 5)
//	start, goal, _ := bench.RandomEndpoints(g, 7)
//	report, err := bench.Run(ctx, g, bench.Options{Start: start, Goal: goal})
//	for _, r := range report.Results {
//	    fmt.Println(r.Strategy, r.Elapsed, r.Hops())
//	}
//
// Searches only read the graph, so sharing it between goroutines is safe.
// Concurrent runs compete for CPU; use Options.Sequential for timings that
// should not interfere with each other.
package bench

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/observability"
	"github.com/matzehuels/graphwalk/pkg/search"
)

// DefaultLimit is the DLS depth limit used by [DefaultStrategies].
const DefaultLimit = 10

// DefaultStrategies returns BFS, DFS and DLS with [DefaultLimit].
func DefaultStrategies() []search.Strategy {
	return []search.Strategy{search.BFS(), search.DFS(), search.DLS(DefaultLimit)}
}

// Options configures a benchmark run.
type Options struct {
	Start, Goal graph.NodeID
	// Strategies to compare. Empty means DefaultStrategies.
	Strategies []search.Strategy
	// Sequential runs one strategy at a time.
	Sequential bool
}

// Report is the outcome of a benchmark run.
type Report struct {
	ID        string          `json:"id"`
	Params    graph.Params    `json:"graph"`
	Nodes     int             `json:"nodes"`
	Edges     int             `json:"edges"`
	Start     graph.NodeID    `json:"start"`
	Goal      graph.NodeID    `json:"goal"`
	Results   []search.Result `json:"results"`
	CreatedAt time.Time       `json:"created_at"`
}

// Fastest returns the quickest strategy that found a path, or false if none did.
func (r Report) Fastest() (search.Result, bool) {
	var best search.Result
	found := false
	for _, res := range r.Results {
		if res.Found && (!found || res.Elapsed < best.Elapsed) {
			best, found = res, true
		}
	}
	return best, found
}

// Run executes each strategy between opts.Start and opts.Goal.
//
// Endpoint and strategy errors are reported before any search starts. A
// cancelled context stops strategies that have not started yet.
func Run(ctx context.Context, g *graph.Graph, opts Options) (Report, error) {
	if g == nil {
		return Report{}, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "graph is nil")
	}
	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	for _, s := range strategies {
		if err := s.Validate(); err != nil {
			return Report{}, err
		}
	}
	for _, n := range []graph.NodeID{opts.Start, opts.Goal} {
		if !g.HasNode(n) {
			return Report{}, gwerrors.New(gwerrors.ErrCodeNodeNotFound, "node %d is not in the graph", n)
		}
	}

	results := make([]search.Result, len(strategies))
	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Sequential {
		eg.SetLimit(1)
	}
	for i, s := range strategies {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			hooks := observability.Pipeline()
			hooks.OnSearchStart(egCtx, string(s.Kind))
			res, err := search.Run(g, opts.Start, opts.Goal, s)
			hooks.OnSearchComplete(egCtx, string(s.Kind), res.Found, res.Hops(), res.Elapsed, err)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Report{}, err
	}

	return Report{
		ID:        uuid.NewString(),
		Params:    g.Params(),
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
		Start:     opts.Start,
		Goal:      opts.Goal,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// RandomEndpoints picks two distinct nodes of g. Equal seeds pick the same
// pair on equal graphs. Graphs with fewer than two nodes yield an
// INVALID_PARAMETER error.
func RandomEndpoints(g *graph.Graph, seed uint64) (start, goal graph.NodeID, err error) {
	nodes := g.Nodes()
	if len(nodes) < 2 {
		return 0, 0, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "need at least 2 nodes, graph has %d", len(nodes))
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	i := rng.IntN(len(nodes))
	j := rng.IntN(len(nodes) - 1)
	if j >= i {
		j++
	}
	return nodes[i], nodes[j], nil
}
