package config

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/vitals/internal/config"
	"nathanbeddoewebdev/vitals/internal/entry"
	"nathanbeddoewebdev/vitals/internal/logging"
	"nathanbeddoewebdev/vitals/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  vitals config set default-mode assisted\n" +
			"  vitals config set suggestions 5",
		Args: cobra.ExactArgs(2),
		Run:  runSet,
	}

	return cmd
}

// validators maps key names to optional pre-save checks that return the
// value to store. Keys not present in this map are stored as given.
var validators = map[string]func(value string) (string, error){
	"default-mode": validateMode,
	"suggestions":  validateSuggestions,
	"log-level":    validateLevel,
}

func runSet(cmd *cobra.Command, args []string) {
	key := util.NormalizeKey(args[0])
	value := strings.TrimSpace(args[1])

	spec := config.Lookup(key)
	if spec == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown configuration key %q\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Valid keys: %s\n", strings.Join(config.KeyNames(), ", "))
		return
	}

	if validate, ok := validators[spec.Name]; ok {
		normalized, err := validate(value)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		value = normalized
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
}

func validateMode(value string) (string, error) {
	m, err := entry.ParseMode(value)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

func validateSuggestions(value string) (string, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("suggestions must be a whole number greater than 0, got %q", value)
	}
	return strconv.Itoa(n), nil
}

func validateLevel(value string) (string, error) {
	lvl, err := logging.ParseLevel(value)
	if err != nil {
		return "", err
	}
	return lvl.String(), nil
}
