package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/pipeline"
)

// graphFlags select the graph a command works on.
type graphFlags struct {
	preset string
	kind   string
	nodes  int
	fanout int
	seed   uint64
	input  string
}

func (f *graphFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "named graph from the config (see 'graphwalk presets')")
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "connected", "graph kind: connected, complete, random")
	cmd.Flags().IntVarP(&f.nodes, "nodes", "n", pipeline.DefaultNodes, "number of nodes")
	cmd.Flags().IntVar(&f.fanout, "fanout", 3, "extra edges per node (connected, random)")
	cmd.Flags().Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed (random graphs)")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "read the graph from a JSON file instead of building it")
	cmd.MarkFlagsMutuallyExclusive("preset", "input")
	cmd.MarkFlagsMutuallyExclusive("preset", "kind")
}

// searchFlags select the endpoints and strategy.
type searchFlags struct {
	start    int
	goal     int
	strategy string
	limit    int

	// changed reports whether a flag was given on the command line.
	changed func(name string) bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.start, "start", 1, "start node")
	cmd.Flags().IntVar(&f.goal, "goal", 0, "goal node (default: highest node)")
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "search strategy: bfs (b), dfs (d/p), dls (l) (default from config)")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "depth limit for dls (default from config)")
	f.changed = cmd.Flags().Changed
}

// given returns a pointer to v when the flag was set and nil otherwise, so
// an explicit zero reaches validation instead of becoming a default.
func (f *searchFlags) given(name string, v int) *int {
	if f.changed == nil || !f.changed(name) {
		return nil
	}
	return pipeline.Int(v)
}

// options resolves the flags into pipeline options. A preset replaces the
// kind, node, fanout and seed flags. Search flags that were not given fall
// back to the config defaults.
func (c *CLI) options(g graphFlags, s *searchFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		Kind:   g.kind,
		Nodes:  g.nodes,
		Fanout: g.fanout,
		Seed:   g.seed,
		Input:  g.input,
		Logger: c.Logger,
	}
	if g.preset != "" {
		p, err := c.Config.Preset(g.preset)
		if err != nil {
			return opts, err
		}
		opts.Kind, opts.Nodes, opts.Fanout, opts.Seed = string(p.Kind), p.Nodes, p.Fanout, p.Seed
	}
	if s != nil {
		opts.Start = s.given("start", s.start)
		opts.Goal = s.given("goal", s.goal)
		opts.Limit = s.given("limit", s.limit)
		opts.Strategy = s.strategy
		if opts.Strategy == "" {
			opts.Strategy = c.Config.Defaults.Strategy
		}
		if opts.Limit == nil && c.Config.Defaults.Limit > 0 {
			opts.Limit = pipeline.Int(c.Config.Defaults.Limit)
		}
	}
	if err := opts.ValidateForBuild(); err != nil {
		return opts, err
	}
	return opts, nil
}

// buildGraph builds or loads the graph behind a spinner and logs the
// elapsed time.
func buildGraph(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*graph.Graph, bool, error) {
	label := "Loading " + opts.Input
	if opts.Input == "" {
		label = "Building " + opts.Params().String()
	}
	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, label+"...")
	spinner.Start()
	g, cached, err := runner.BuildWithCacheInfo(ctx, opts)
	spinner.Stop()
	if err != nil {
		return nil, false, err
	}
	status := "Built"
	if cached {
		status = "Loaded cached"
	}
	prog.done(fmt.Sprintf("%s graph: %d nodes, %d edges", status, g.NodeCount(), g.EdgeCount()))
	return g, cached, nil
}
