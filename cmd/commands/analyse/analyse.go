package analyse

import (
	"encoding/json"
	"fmt"

	"nathanbeddoewebdev/vitals/internal/app"

	"github.com/spf13/cobra"
)

// NewCommand returns the "analyse" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyse",
		Aliases: []string{"analyze"},
		Short:   "List metrics with out of range measurements",
		Long: `Read every metric and list those with at least one measurement outside
the metric's guide, along with the offending values.

Examples:
  vitals analyse
  vitals analyse -o json`,
		Args:         cobra.NoArgs,
		RunE:         runAnalyse,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

type report struct {
	Metric string   `json:"metric"`
	Guide  string   `json:"guide"`
	Values []string `json:"values"`
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "", "table":
		return a.FindOutOfRange(cmd.Context(), cmd.OutOrStdout())
	case "json":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}

	metrics, err := a.OutOfRange(cmd.Context())
	if err != nil {
		return err
	}
	reports := make([]report, 0, len(metrics))
	for _, m := range metrics {
		r := report{Metric: m.Name, Guide: m.Descriptor()}
		for _, e := range m.OutOfRange() {
			r.Values = append(r.Values, e.String())
		}
		reports = append(reports, r)
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}
