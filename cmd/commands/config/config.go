package config

import (
	"nathanbeddoewebdev/vitals/internal/app"
	"nathanbeddoewebdev/vitals/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vitals configuration",
		Long: "View and modify persistent vitals settings.\n\n" +
			"Configuration is stored at ~/.config/vitals/config.json, or under\n" +
			"$" + config.HomeEnv + " when it is set.\n\n" +
			config.KeysHelp(),
		Annotations: map[string]string{app.SkipAnnotation: "true"},
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
