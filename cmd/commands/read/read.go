package read

import (
	"nathanbeddoewebdev/vitals/internal/app"

	"github.com/spf13/cobra"
)

// NewCommand returns the "read" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <names...>",
		Short: "Print the history of metrics or groups",
		Long: `Print every measurement of the named metrics or remembered groups.
Names that match nothing exactly are resolved to the closest metric.

Examples:
  vitals read weight
  vitals read bp --chart`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runRead,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("chart", false, "Draw a sparkline with the guide bounds under each metric")
	cmd.Flags().Int("width", 0, "Render width (default 80)")

	return cmd
}

func runRead(cmd *cobra.Command, args []string) error {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}
	if width, _ := cmd.Flags().GetInt("width"); width > 0 {
		a.Width = width
	}
	chart, _ := cmd.Flags().GetBool("chart")
	return a.Read(cmd.OutOrStdout(), args, chart)
}
