package util

import (
	"fmt"
	"strings"
	"unicode"
)

// maxNameLen keeps names well inside common filesystem limits once the
// .json extension is added.
const maxNameLen = 200

// ValidateMetricName checks that a metric name can be used as a file stem:
//   - Not empty or only whitespace
//   - At most 200 characters
//   - No path separators or control characters
//   - Must not start with a period
func ValidateMetricName(name string) error {
	return validateName("metric", name)
}

// ValidateGroupName applies the metric name rules to a group alias.
func ValidateGroupName(name string) error {
	return validateName("group", name)
}

func validateName(noun, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name must not be empty", noun)
	}

	if len(name) > maxNameLen {
		return fmt.Errorf("%s name must be at most %d characters, got %d", noun, maxNameLen, len(name))
	}

	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%s name %q must not contain path separators", noun, name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%s name %q contains control characters", noun, name)
		}
	}

	if name[0] == '.' {
		return fmt.Errorf("%s name must not start with a period, got %q", noun, name)
	}

	return nil
}
