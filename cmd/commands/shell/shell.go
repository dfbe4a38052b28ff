package shell

import (
	"nathanbeddoewebdev/vitals/internal/app"
	"nathanbeddoewebdev/vitals/internal/shell"

	"github.com/spf13/cobra"
)

// NewCommand returns the "shell" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long: `Start the interactive shell. Top-level commands are write, read, graph,
manage, analyse and memorise; each opens its own terminal. Mistyped commands
run the closest match. Type "help" for commands and "exit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			return shell.New(a, cmd.OutOrStdout()).Run(cmd.Context())
		},
		SilenceUsage: true,
	}
}
