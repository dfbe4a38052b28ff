package styles

import "github.com/charmbracelet/lipgloss"

// --- Typography ---

var (
	// Title is the main header text style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Subtitle is used for secondary headings.
	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for field names in detail views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	// MutedText is for help text, hints, and less important info.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// AccentText is for metric names and other highlighted text.
	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	WarningText = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// RangeStyle colors a measurement by whether it satisfies its guide.
func RangeStyle(outOfRange bool) lipgloss.Style {
	if outOfRange {
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(Green)
}

// RangeIndicator returns a colored dot followed by text.
func RangeIndicator(outOfRange bool, text string) string {
	style := RangeStyle(outOfRange)
	return style.Render("●") + " " + style.Render(text)
}
