package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/internal/metrics"
	"github.com/matzehuels/graphwalk/internal/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		maxNodes int
		maxEdges int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Long: `Serve graph search, strategy comparison and rendering over HTTP.
Prometheus metrics are exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("max-nodes") {
				maxNodes = c.Config.Server.MaxNodes
			}
			if !cmd.Flags().Changed("max-edges") {
				maxEdges = c.Config.Server.MaxEdges
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			metrics.Install()
			srv := server.New(runner, server.Config{
				Addr:     addr,
				MaxNodes: maxNodes,
				MaxEdges: maxEdges,
				Presets:  c.Config.Presets,
				Logger:   c.Logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "largest graph a request may build (0: no cap)")
	cmd.Flags().IntVar(&maxEdges, "max-edges", 0, "most edges a requested graph may have (0: no cap)")

	return cmd
}
