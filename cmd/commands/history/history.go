package history

import (
	"nathanbeddoewebdev/vitals/internal/app"

	"github.com/spf13/cobra"
)

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and prune the local action history",
		Long: "View the local record of metrics created, measurements added, renames,\n" +
			"unit changes, automatic corrections and group changes, and prune old entries.\n\n" +
			"History is stored locally in vitals.db next to the config file.",
		Annotations:  map[string]string{app.SkipAnnotation: "true"},
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
