package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/internal/config"
	"github.com/matzehuels/graphwalk/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Its PersistentPreRunE loads the config file (--config, or the XDG default)
// and attaches the logger to the command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "graphwalk builds graphs and searches them with BFS, DFS and DLS",
		Long: `graphwalk builds deterministic connected graphs and complete graphs,
searches them with breadth-first, depth-first and depth-limited search,
compares the strategies and renders the path found.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/graphwalk/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.interactiveCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
