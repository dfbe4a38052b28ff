package manage

import (
	"nathanbeddoewebdev/vitals/internal/app"

	"github.com/spf13/cobra"
)

func UnitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "units <name> <unit>",
		Aliases: []string{"update-units"},
		Short:   "Set the unit of every measurement of a metric",
		Long: `Set the unit of every recorded measurement of a metric, and the metric's
default unit unless --entries-only is given.

Examples:
  vitals manage units weight kg
  vitals manage units weight lb --entries-only`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			entriesOnly, _ := cmd.Flags().GetBool("entries-only")
			return a.UpdateUnits(cmd.OutOrStdout(), args[0], args[1], !entriesOnly)
		},
		SilenceUsage: true,
	}

	cmd.Flags().Bool("entries-only", false, "Leave the metric's default unit unchanged")

	return cmd
}
