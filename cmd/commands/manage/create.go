package manage

import (
	"strings"

	"nathanbeddoewebdev/vitals/internal/app"
	"nathanbeddoewebdev/vitals/internal/metric"

	"github.com/spf13/cobra"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create <name>",
		Aliases: []string{"instantiate"},
		Short:   "Create an empty metric",
		Long: `Create an empty metric file. Without --type the guide is asked for
interactively.

Guide types and their bounds:
  ranged        two numbers, values should fall strictly between them
  greater_than  one number, values should be at least it
  less_than     one number, values should be at most it
  boolean       true or false, the ideal value
  metric        no bounds, nothing is out of range

Examples:
  vitals manage create "heart rate" --type ranged --bounds "50 100" --unit bpm
  vitals manage create steps --type greater_than --bounds 8000`,
		Args:         cobra.ExactArgs(1),
		RunE:         runCreate,
		SilenceUsage: true,
	}

	cmd.Flags().String("type", "", "Guide type: ranged, greater_than, less_than, boolean or metric")
	cmd.Flags().String("bounds", "", "Guide bounds, space separated")
	cmd.Flags().String("unit", "", "Default unit for measurements")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	var guide metric.Guide
	if raw, _ := cmd.Flags().GetString("type"); strings.TrimSpace(raw) != "" {
		t, err := metric.ParseType(raw)
		if err != nil {
			return err
		}
		bounds, _ := cmd.Flags().GetString("bounds")
		if guide, err = metric.NewGuide(t, strings.Fields(bounds)...); err != nil {
			return err
		}
	}

	unit, _ := cmd.Flags().GetString("unit")
	return a.Instantiate(cmd.OutOrStdout(), args[0], guide, unit)
}
