package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/pipeline"
	"github.com/matzehuels/graphwalk/pkg/search"
)

// interactiveCommand lets the user pick a preset and a strategy from menus
// and type the endpoints, then runs the search. Endpoints given with --start
// and --goal skip the prompt.
func (c *CLI) interactiveCommand() *cobra.Command {
	var start, goal int

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Pick a graph and strategy from a menu",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			presetModel, err := runModel(ctx, NewPresetListModel(c.Config.Presets))
			if err != nil {
				return err
			}
			preset := presetModel.Selected
			if preset == nil {
				return nil
			}

			explicit := cmd.Flags().Changed("start") && cmd.Flags().Changed("goal")
			if !cmd.Flags().Changed("goal") {
				goal = preset.Nodes
			}
			if explicit {
				if err := checkEndpoints(preset.Nodes, start, goal); err != nil {
					return err
				}
			} else {
				endpoints, err := runModel(ctx, NewEndpointInputModel(preset.Nodes, start, goal))
				if err != nil {
					return err
				}
				if !endpoints.Done {
					return nil
				}
				start, goal = endpoints.Start, endpoints.Goal
			}

			strategyModel, err := runModel(ctx, NewStrategyListModel(c.Config.Defaults.Limit))
			if err != nil {
				return err
			}
			strategy := strategyModel.Selected
			if strategy == nil {
				return nil
			}

			opts := pipeline.Options{
				Kind:     string(preset.Kind),
				Nodes:    preset.Nodes,
				Fanout:   preset.Fanout,
				Seed:     preset.Seed,
				Start:    pipeline.Int(start),
				Goal:     pipeline.Int(goal),
				Strategy: string(strategy.Kind),
				Limit:    pipeline.Int(strategy.Limit),
				Logger:   c.Logger,
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

			printInfo("%s %s", preset.Name, StyleDim.Render(g.Params().String()))
			printStats(g.NodeCount(), g.EdgeCount(), cached)
			printResult(res)
			printNewline()
			printNextStep("Draw it", renderHint(preset.Name, res.Start, res.Goal, *strategy))
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 1, "start node (skips the prompt together with --goal)")
	cmd.Flags().IntVar(&goal, "goal", 0, "goal node (default: highest node)")

	return cmd
}

// runModel runs a bubbletea program to completion and returns its final model.
func runModel[M tea.Model](ctx context.Context, m M) (M, error) {
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return m, fmt.Errorf("interactive: %w", err)
	}
	out, ok := final.(M)
	if !ok {
		return m, fmt.Errorf("interactive: unexpected model %T", final)
	}
	return out, nil
}

// checkEndpoints rejects endpoints outside a graph of nodes vertices before
// anything is built.
func checkEndpoints(nodes, start, goal int) error {
	if err := gwerrors.ValidateNodeRange("start", start, nodes); err != nil {
		return err
	}
	return gwerrors.ValidateNodeRange("goal", goal, nodes)
}

// renderHint spells out the render command reproducing a search.
func renderHint(preset string, start, goal graph.NodeID, s search.Strategy) string {
	cmd := fmt.Sprintf("%s render --preset %s --start %d --goal %d -s %s", appName, preset, start, goal, s.Kind)
	if s.Kind == search.KindDLS {
		cmd += fmt.Sprintf(" -l %d", s.Limit)
	}
	return cmd
}
