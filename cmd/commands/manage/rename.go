package manage

import (
	"nathanbeddoewebdev/vitals/internal/app"

	"github.com/spf13/cobra"
)

func RenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a metric",
		Long: `Rename a metric file and the name stored inside it. Remembered groups
holding the metric follow the new name.

Examples:
  vitals manage rename wieght weight`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.Rename(cmd.OutOrStdout(), args[0], args[1])
		},
		SilenceUsage: true,
	}
}
