package config

import (
	"fmt"
	"strconv"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-mode").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for validating the value and calling Save).
	Set func(cfg *Config, value string)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "metric-dir",
		Description: "Directory holding one JSON file per metric",
		Get:         func(cfg *Config) string { return cfg.MetricDir },
		Set:         func(cfg *Config, v string) { cfg.MetricDir = v },
	},
	{
		Name:        "memory-dir",
		Description: "Directory holding the saved metric groups",
		Get:         func(cfg *Config) string { return cfg.MemoryDir },
		Set:         func(cfg *Config, v string) { cfg.MemoryDir = v },
	},
	{
		Name:        "default-mode",
		Description: "Data entry mode used when --mode is not specified (manual, assisted, speedy)",
		Get:         func(cfg *Config) string { return cfg.DefaultMode },
		Set:         func(cfg *Config, v string) { cfg.DefaultMode = v },
	},
	{
		Name:        "suggestions",
		Description: "Number of close matches offered in assisted mode",
		Get: func(cfg *Config) string {
			if cfg.Suggestions == 0 {
				return ""
			}
			return strconv.Itoa(cfg.Suggestions)
		},
		Set: func(cfg *Config, v string) {
			n, _ := strconv.Atoi(v)
			cfg.Suggestions = n
		},
	},
	{
		Name:        "log-level",
		Description: "Minimum level written to the log file (debug, info, warn, error)",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = v },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
