// Package components provides render-only building blocks for vitals
// output: headers and terminal charts.
package components

import (
	"strings"

	"nathanbeddoewebdev/vitals/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Header renders a one-line header bar.
//
//	vitals > read > weight                    kg
//	──────────────────────────────────────────────
func Header(width int, breadcrumb []string, right string) string {
	if width < 10 {
		width = 10
	}

	left := styles.Title.Foreground(styles.Blue).Render("vitals")
	for _, crumb := range breadcrumb {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(crumb)
	}
	if right != "" {
		right = styles.Subtitle.Render(right)
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	content := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Width(width).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(content)
}
