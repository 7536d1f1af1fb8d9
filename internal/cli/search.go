package cli

import (
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/graphwalk/pkg/io"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		gf     graphFlags
		sf     searchFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find a path between two nodes",
		Long: `Build a graph (or load one with --input) and search for a path from
--start to --goal. The goal defaults to the highest node.

Strategies:
  bfs  breadth-first search, finds a path with the fewest hops
  dfs  depth-first search, follows the highest-numbered neighbor first
  dls  depth-first search that never goes deeper than --limit hops

A search that finds no path is not an error.`,
		Example: `  graphwalk search -n 5000 --fanout 5 --goal 4321
  graphwalk search --preset c500-3 -s dls -l 3 --goal 250
  graphwalk search -i graph.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.options(gf, &sf)
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
			res, err := runner.Search(ctx, g, opts)
			if err != nil {
				return err
			}

			if asJSON {
				return pkgio.WriteResultJSON(res, cmd.OutOrStdout())
			}
			printInfo("%s", g.Params())
			printStats(g.NodeCount(), g.EdgeCount(), cached)
			printResult(res)
			return nil
		},
	}

	gf.register(cmd)
	sf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
