package graph

import (
	"fmt"

	"nathanbeddoewebdev/vitals/internal/app"
	"nathanbeddoewebdev/vitals/internal/shell"

	"github.com/spf13/cobra"
)

// NewCommand returns the "graph" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <names...>",
		Short: "Chart metrics or groups over time",
		Long: `Chart the named metrics or remembered groups on one time axis.
Numeric values and inequality bounds are plotted; booleans plot as 1 and 0.

Examples:
  vitals graph weight
  vitals graph bp --height 20 --width 120`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runGraph,
		SilenceUsage: true,
	}

	cmd.Flags().Int("height", shell.DefaultGraphHeight, "Chart height in rows")
	cmd.Flags().Int("width", 0, "Chart width in columns (default 80)")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}
	height, _ := cmd.Flags().GetInt("height")
	if height <= 0 {
		return fmt.Errorf("height must be greater than 0")
	}
	if width, _ := cmd.Flags().GetInt("width"); width > 0 {
		a.Width = width
	}
	return a.Graph(cmd.OutOrStdout(), args, height)
}
