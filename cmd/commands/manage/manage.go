package manage

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the "manage" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manage",
		Short: "Rename, inspect and create metrics",
		Long: "Manage stored metric files: rename them, summarise them, search by\n" +
			"name, create empty metrics and change measurement units.",
		SilenceUsage: true,
	}

	cmd.AddCommand(RenameCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(SearchCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(UnitsCommand())

	return cmd
}
