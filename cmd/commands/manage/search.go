package manage

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/vitals/internal/app"

	"github.com/spf13/cobra"
)

func SearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "List the metrics closest to a name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				return fmt.Errorf("limit must be greater than 0")
			}
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.Search(cmd.OutOrStdout(), strings.Join(args, " "), limit)
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 5, "Number of matches to display")

	return cmd
}
