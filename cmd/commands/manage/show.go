package manage

import (
	"nathanbeddoewebdev/vitals/internal/app"

	"github.com/spf13/cobra"
)

func ShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [names...]",
		Short: "Summarise metrics",
		Long: `Show the type, guide, unit, entry count and file version of the named
metrics, or of every metric when no name is given. Files written by an older
version are marked as outdated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.Show(cmd.OutOrStdout(), args)
		},
		SilenceUsage: true,
	}
}
