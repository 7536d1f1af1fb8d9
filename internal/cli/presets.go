package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// presetsCommand lists the named graphs from the config.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the configured graph presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(c.Config.Presets) == 0 {
				printInfo("No presets configured")
				return nil
			}
			rows := make([][]string, 0, len(c.Config.Presets))
			for _, p := range c.Config.Presets {
				rows = append(rows, []string{p.Name, p.Params().String(), strconv.Itoa(p.Nodes)})
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(StyleDim).
				Headers("name", "graph", "nodes").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return styleTableHeader
					}
					if col == 0 {
						return styleTableCell.Foreground(colorCyan)
					}
					return styleTableCell
				})
			fmt.Fprintln(stdout, t.Render())
			printNextStep("Use one", appName+" search --preset "+c.Config.Presets[0].Name)
			return nil
		},
	}
}
