package graph

import (
	"strings"
	"testing"
)

func TestGraph(t *testing.T) {
	a := newTestApp(t)
	seed(t, a, "systolic", nil, "mmhg", 120, 118, 125)
	seed(t, a, "diastolic", nil, "mmhg", 80, 78, 82)

	stdout, stderr := execute(t, a, "systolic", "diastolic", "--height", "8")
	if stderr != "" {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{"2 metric(s)", "systolic", "diastolic"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestGraph_BadHeight(t *testing.T) {
	a := newTestApp(t)
	seed(t, a, "weight", nil, "", 80)
	if _, stderr := execute(t, a, "weight", "--height", "0"); !strings.Contains(stderr, "height must be greater than 0") {
		t.Errorf("expected height error, got: %s", stderr)
	}
}

func TestGraph_Unknown(t *testing.T) {
	a := newTestApp(t)
	if _, stderr := execute(t, a, "weight"); !strings.Contains(stderr, "no metric or group") {
		t.Errorf("expected not found error, got: %s", stderr)
	}
}
