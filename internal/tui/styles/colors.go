// Package styles provides the color palette and style definitions for vitals
// output. All visual constants live here so commands and components share
// one source of truth.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text
	White   = lipgloss.Color("#E2E2E2")
	Gray    = lipgloss.Color("#888888")
	Muted   = lipgloss.Color("#555555")
	DimGray = lipgloss.Color("#444444")

	// Accent
	Blue = lipgloss.Color("#5FAFFF")

	// Status
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")
)

// SeriesColors cycles through chart series in this order.
var SeriesColors = []lipgloss.Color{Blue, Green, Yellow, Red, lipgloss.Color("#D787FF"), lipgloss.Color("#87D7D7")}

// SeriesColor returns the color for the i-th chart series.
func SeriesColor(i int) lipgloss.Color {
	return SeriesColors[i%len(SeriesColors)]
}
