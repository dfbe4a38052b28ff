package memorise

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/vitals/internal/app"

	"github.com/spf13/cobra"
)

// NewCommand returns the "memorise" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "memorise",
		Aliases: []string{"memorize"},
		Short:   "Remember groups of metrics under one name",
		Long: "Save sets of metrics as named groups. A group name can be used anywhere\n" +
			"a metric name is accepted, such as read and graph.\n\n" +
			"Groups are stored in aliases.json in the memory directory.",
		SilenceUsage: true,
	}

	cmd.AddCommand(RememberCommand())
	cmd.AddCommand(ForgetCommand())
	cmd.AddCommand(ListCommand())

	return cmd
}

func RememberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remember <names...> --as <group>",
		Short: "Save metrics or groups as a named group",
		Long: `Save metrics or other groups as a named group. The trailing form
"<names...> as <group>" is accepted in place of --as.

With --unit, only metrics recorded in that unit are kept.

Examples:
  vitals memorise remember systolic diastolic --as bp
  vitals memorise remember weight bmi as body`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}

			members, alias := args, ""
			if as, _ := cmd.Flags().GetString("as"); strings.TrimSpace(as) != "" {
				alias = as
			} else if members, alias, err = app.RememberArgs(args); err != nil {
				return fmt.Errorf("a group name is required: use --as <group>")
			}

			unit, _ := cmd.Flags().GetString("unit")
			return a.Remember(cmd.OutOrStdout(), members, alias, unit)
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("as", "", "Name of the group")
	cmd.Flags().String("unit", "", "Only keep metrics recorded in this unit")

	return cmd
}

func ForgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <groups...>",
		Short: "Remove remembered groups",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.Forget(cmd.OutOrStdout(), args)
		},
		SilenceUsage: true,
	}
}

func ListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List remembered groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.ListGroups(cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
}
