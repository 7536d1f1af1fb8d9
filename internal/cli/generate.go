package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/graphwalk/pkg/io"
)

// generateCommand creates the generate command, which builds a graph and
// exports it as JSON.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		gf      graphFlags
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a graph and export it as JSON",
		Long: `Build a connected, complete or random graph and export it as JSON.

The exported file can be fed back to search, bench and render with --input.`,
		Example: `  graphwalk generate -n 5000 --fanout 5 -o c5000.json
  graphwalk generate --kind complete -n 10
  graphwalk generate --preset c500-3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if gf.input != "" {
				return fmt.Errorf("generate builds graphs; --input is not supported")
			}
			return c.runGenerate(cmd, gf, output, refresh)
		},
	}

	gf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild even if the graph is cached")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, gf graphFlags, output string, refresh bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := c.options(gf, nil)
	if err != nil {
		return err
	}
	opts.Refresh = refresh

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, cached, err := buildGraph(ctx, runner, opts)
	if err != nil {
		return err
	}
	connected := g.Connected()
	logger.Debug("exporting graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "connected", connected)

	if output == "" {
		return pkgio.WriteJSON(g, cmd.OutOrStdout())
	}
	if err := pkgio.ExportJSON(g, output); err != nil {
		return err
	}
	printSuccess("Generated %s", g.Params())
	printStats(g.NodeCount(), g.EdgeCount(), cached)
	if !connected {
		printWarning("Not connected: some searches will find no path")
	}
	printFile(output)
	printNewline()
	printNextStep("Search it", fmt.Sprintf("%s search -i %s", appName, output))
	return nil
}
