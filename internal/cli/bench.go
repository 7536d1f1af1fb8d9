package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/bench"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/search"
)

// benchOpts holds the flags specific to the bench command.
type benchOpts struct {
	strategies   string
	endpointSeed uint64
	sequential   bool
	asJSON       bool
}

// benchCommand creates the bench command, which runs several strategies
// between the same endpoints and compares them.
func (c *CLI) benchCommand() *cobra.Command {
	var (
		gf graphFlags
		sf searchFlags
		bo benchOpts
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare search strategies on the same endpoints",
		Long: `Run every strategy between the same start and goal and compare path
length and time. Without --start and --goal two distinct random nodes are
picked with --endpoint-seed.`,
		Example: `  graphwalk bench --preset c10000-5
  graphwalk bench -n 5000 --start 1 --goal 4999 --strategies bfs,dls -l 6
  graphwalk bench --kind complete -n 300 --sequential --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := cmd.Flags().Changed("start") || cmd.Flags().Changed("goal")
			return c.runBench(cmd, gf, sf, bo, explicit)
		},
	}

	gf.register(cmd)
	sf.register(cmd)
	cmd.Flags().StringVar(&bo.strategies, "strategies", "bfs,dfs,dls", "strategies to compare (comma-separated)")
	cmd.Flags().Uint64Var(&bo.endpointSeed, "endpoint-seed", 1, "seed for picking random endpoints")
	cmd.Flags().BoolVar(&bo.sequential, "sequential", false, "run one strategy at a time")
	cmd.Flags().BoolVar(&bo.asJSON, "json", false, "print the report as JSON")
	_ = cmd.Flags().MarkHidden("strategy")

	return cmd
}

func (c *CLI) runBench(cmd *cobra.Command, gf graphFlags, sf searchFlags, bo benchOpts, explicit bool) error {
	ctx := cmd.Context()
	opts, err := c.options(gf, &sf)
	if err != nil {
		return err
	}
	opts.SetSearchDefaults()
	strategies, err := parseStrategies(parseList(bo.strategies), *opts.Limit)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, cached, err := buildGraph(ctx, runner, opts)
	if err != nil {
		return err
	}

	start, goal := graph.NodeID(*opts.Start), g.MaxNode()
	if opts.Goal != nil {
		goal = graph.NodeID(*opts.Goal)
	}
	if !explicit {
		if start, goal, err = bench.RandomEndpoints(g, bo.endpointSeed); err != nil {
			return err
		}
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Running %d strategies...", len(strategies)))
	spinner.Start()
	report, err := bench.Run(ctx, g, bench.Options{
		Start:      start,
		Goal:       goal,
		Strategies: strategies,
		Sequential: bo.sequential,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	if bo.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printInfo("%s from %d to %d", g.Params(), report.Start, report.Goal)
	printStats(g.NodeCount(), g.EdgeCount(), cached)
	fmt.Fprintln(stdout, benchTable(report).Render())
	if best, ok := report.Fastest(); ok {
		printSuccess("%s was fastest (%d hops, %s)", best.Strategy, best.Hops(), formatDuration(best.Elapsed))
	} else {
		printWarning("no strategy found a path")
	}
	return nil
}

// parseStrategies parses strategy names, giving DLS the depth limit.
func parseStrategies(names []string, limit int) ([]search.Strategy, error) {
	out := make([]search.Strategy, 0, len(names))
	for _, name := range names {
		s, err := search.ParseStrategy(name, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
