package components

import (
	"strings"
	"testing"
	"time"
)

func TestSparkline_Empty(t *testing.T) {
	got := Sparkline("weight", nil, nil, 60, "kg")
	if !strings.Contains(got, "weight: no numeric data") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestSparkline_SummaryAndLegend(t *testing.T) {
	got := Sparkline("heart rate", []float64{72, 65, 110}, []float64{50, 100}, 60, "bpm")
	for _, want := range []string{"heart rate", "latest: 110 bpm", "min: 65 bpm", "max: 110 bpm", "lower 50", "upper 100"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestBoundLegend(t *testing.T) {
	if got := boundLegend(0, 1, 120); got != "bound 120" {
		t.Errorf("single bound legend = %q", got)
	}
	if got := boundLegend(1, 2, 99.5); got != "upper 99.5" {
		t.Errorf("upper legend = %q", got)
	}
}

func TestTimeline_NoData(t *testing.T) {
	got := Timeline([]Series{{Name: "weight"}}, 60, 10)
	if !strings.Contains(got, "no numeric data") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestTimeline_LegendListsEverySeries(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []Series{
		{Name: "weight", Points: []Point{{day, 80}, {day.AddDate(0, 0, 2), 79}, {day.AddDate(0, 0, 1), 81}}},
		{Name: "bmi", Points: []Point{{day, 24.5}}},
		{Name: "empty"},
	}
	got := Timeline(series, 60, 12)
	for _, name := range []string{"weight", "bmi", "empty"} {
		if !strings.Contains(got, name) {
			t.Errorf("legend missing %q:\n%s", name, got)
		}
	}
}

func TestExtent(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	minT, maxT, lo, hi, ok := extent([]Series{
		{Points: []Point{{day.AddDate(0, 0, 3), 5}}},
		{Points: []Point{{day, -2}, {day.AddDate(0, 0, 1), 9}}},
	})
	if !ok || !minT.Equal(day) || !maxT.Equal(day.AddDate(0, 0, 3)) || lo != -2 || hi != 9 {
		t.Errorf("extent = %v %v %v %v %v", minT, maxT, lo, hi, ok)
	}
}

func TestHeader_ContainsBreadcrumb(t *testing.T) {
	got := Header(40, []string{"read", "weight"}, "kg")
	for _, want := range []string{"vitals", "read", "weight", "kg"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q: %q", want, got)
		}
	}
}
