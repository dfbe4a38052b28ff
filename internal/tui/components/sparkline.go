package components

import (
	"fmt"
	"strconv"

	"nathanbeddoewebdev/vitals/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// sparklineHeight is the fixed plot height for metric sparklines.
const sparklineHeight = 8

// Sparkline renders the values of one metric in entry order, with a flat
// line for each guide bound.
func Sparkline(label string, data []float64, bounds []float64, width int, unit string) string {
	if len(data) == 0 {
		return styles.MutedText.Render(label + ": no numeric data")
	}

	// Reserve space for Y-axis labels.
	plotWidth := max(width-10, 10)

	series := [][]float64{data}
	colors := []asciigraph.AnsiColor{asciigraph.DodgerBlue}
	legends := []string{label}
	for i, b := range bounds {
		series = append(series, flat(b, len(data)))
		colors = append(colors, asciigraph.Gray)
		legends = append(legends, boundLegend(i, len(bounds), b))
	}

	chart := asciigraph.PlotMany(series,
		asciigraph.Height(sparklineHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.LabelColor(asciigraph.Default),
	)

	lo, hi := minMax(data)
	summary := styles.MutedText.Render(fmt.Sprintf("  latest: %s  min: %s  max: %s  entries: %d",
		formatValue(data[len(data)-1], unit), formatValue(lo, unit), formatValue(hi, unit), len(data)))

	return lipgloss.JoinVertical(lipgloss.Left, styles.Label.Render(label), chart, summary)
}

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func boundLegend(i, n int, b float64) string {
	name := "bound"
	if n == 2 {
		name = [2]string{"lower", "upper"}[i]
	}
	return name + " " + strconv.FormatFloat(b, 'f', -1, 64)
}

func minMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func formatValue(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if unit != "" {
		s += " " + unit
	}
	return s
}
