package write

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/vitals/internal/app"
	"nathanbeddoewebdev/vitals/internal/entry"

	"github.com/spf13/cobra"
)

// NewCommand returns the "write" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write [lines...]",
		Short: "Record measurements",
		Long: `Record measurements, one "metric value DDMMYYYY [unit]" per line.

Each argument is one line. Without arguments, lines are read until "exit"
or end of input; "handler" switches mode while reading.

A "*" in any field repeats that field of the previous line. Values may be
numbers, true/false, inequalities such as "<120", or free text. A name in
double quotes or ending in "*" is used exactly as typed.

Modes decide what happens to names that are not recognised:
  manual    create a new metric
  assisted  offer the closest matches
  speedy    use the closest match

Examples:
  vitals write "weight 80.5 01032024 kg"
  vitals write "bp <120 01032024" "* <118 02032024"
  vitals write --mode speedy < readings.txt`,
		RunE:         runWrite,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("mode", "m", "", "Handler mode: manual, assisted or speedy (default from config)")
	cmd.Flags().Int("suggestions", 0, "Number of matches assisted mode offers")

	return cmd
}

func runWrite(cmd *cobra.Command, args []string) error {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	if raw, _ := cmd.Flags().GetString("mode"); strings.TrimSpace(raw) != "" {
		mode, err := entry.ParseMode(raw)
		if err != nil {
			return err
		}
		a.Mode = mode
	}
	if n, _ := cmd.Flags().GetInt("suggestions"); cmd.Flags().Changed("suggestions") {
		if n <= 0 {
			return fmt.Errorf("suggestions must be greater than 0")
		}
		a.Suggestions = n
	}

	if len(args) == 0 {
		return a.WriteLoop(cmd.OutOrStdout())
	}
	return a.Write(cmd.OutOrStdout(), a.Mode, args)
}
