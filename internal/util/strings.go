package util

import "strings"

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitAs splits "a b as alias" into its members and alias. ok is false when
// the phrase has no " as " separator or either side is empty.
func SplitAs(fields []string) (members []string, alias string, ok bool) {
	for i := len(fields) - 1; i >= 0; i-- {
		if NormalizeKey(fields[i]) != "as" {
			continue
		}
		members = fields[:i]
		rest := fields[i+1:]
		if len(members) == 0 || len(rest) == 0 {
			return nil, "", false
		}
		return members, strings.Join(rest, " "), true
	}
	return nil, "", false
}
