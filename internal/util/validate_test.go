package util

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateMetricName_Valid(t *testing.T) {
	valid := []string{
		"weight",
		"heart rate",
		"bp",
		"blood-pressure",
		"vitamin d3",
		"hba1c (%)",
		"sleep.hours",
		"b12_level",
	}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateMetricName(name); err != nil {
				t.Errorf("expected %q to be valid, got error: %v", name, err)
			}
		})
	}
}

func TestValidateMetricName_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		wantMsg string
	}{
		{"", "must not be empty"},
		{"   ", "must not be empty"},
		{"a/b", "path separators"},
		{`a\b`, "path separators"},
		{"../weight", "path separators"},
		{".hidden", "must not start with a period"},
		{"web\tserver", "control characters"},
		{"line\nbreak", "control characters"},
		{strings.Repeat("x", 201), "at most 200 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetricName(tt.name)
			if err == nil {
				t.Errorf("expected %q to be invalid, got nil", tt.name)
				return
			}
			if got := err.Error(); !strings.Contains(got, tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, got)
			}
		})
	}
}

func TestValidateGroupName_UsesGroupNoun(t *testing.T) {
	err := ValidateGroupName("")
	if err == nil || !strings.HasPrefix(err.Error(), "group name") {
		t.Errorf("expected group name error, got %v", err)
	}
}

func TestSplitAs(t *testing.T) {
	tests := []struct {
		in      string
		members []string
		alias   string
		ok      bool
	}{
		{"weight bmi as body", []string{"weight", "bmi"}, "body", true},
		{"weight AS body comp", []string{"weight"}, "body comp", true},
		{"as body", nil, "", false},
		{"weight bmi as", nil, "", false},
		{"weight bmi", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			members, alias, ok := SplitAs(strings.Fields(tt.in))
			if ok != tt.ok || alias != tt.alias {
				t.Fatalf("SplitAs(%q) = _, %q, %v; want _, %q, %v", tt.in, alias, ok, tt.alias, tt.ok)
			}
			if diff := cmp.Diff(tt.members, members); diff != "" {
				t.Errorf("members mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	if got := NormalizeKey("  Heart Rate "); got != "heart rate" {
		t.Errorf("NormalizeKey = %q, want %q", got, "heart rate")
	}
}
