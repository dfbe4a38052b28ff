package components

import (
	"sort"
	"strings"
	"time"

	"nathanbeddoewebdev/vitals/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// Point is one dated value on a timeline.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is a named set of points drawn as one line.
type Series struct {
	Name   string
	Points []Point
}

// Timeline draws every series against a shared date axis, followed by a
// color legend. Series without points are listed in the legend only.
func Timeline(series []Series, width, height int) string {
	minT, maxT, lo, hi, ok := extent(series)
	if !ok {
		return styles.MutedText.Render("no numeric data to plot")
	}
	if !maxT.After(minT) {
		minT = minT.Add(-12 * time.Hour)
		maxT = maxT.Add(12 * time.Hour)
	}
	if hi <= lo {
		lo, hi = lo-1, hi+1
	}

	chart := timeserieslinechart.New(max(width, 20), max(height, 6),
		timeserieslinechart.WithTimeRange(minT, maxT),
		timeserieslinechart.WithYRange(lo, hi),
	)

	legend := make([]string, 0, len(series))
	for i, s := range series {
		style := lipgloss.NewStyle().Foreground(styles.SeriesColor(i))
		chart.SetDataSetStyle(s.Name, style)
		points := append([]Point(nil), s.Points...)
		sort.SliceStable(points, func(a, b int) bool { return points[a].Time.Before(points[b].Time) })
		for _, p := range points {
			chart.PushDataSet(s.Name, timeserieslinechart.TimePoint{Time: p.Time, Value: p.Value})
		}
		legend = append(legend, style.Render("●")+" "+s.Name)
	}
	chart.DrawBrailleAll()

	return lipgloss.JoinVertical(lipgloss.Left, chart.View(), strings.Join(legend, "  "))
}

func extent(series []Series) (minT, maxT time.Time, lo, hi float64, ok bool) {
	for _, s := range series {
		for _, p := range s.Points {
			if !ok {
				minT, maxT, lo, hi, ok = p.Time, p.Time, p.Value, p.Value, true
				continue
			}
			if p.Time.Before(minT) {
				minT = p.Time
			}
			if p.Time.After(maxT) {
				maxT = p.Time
			}
			lo = min(lo, p.Value)
			hi = max(hi, p.Value)
		}
	}
	return minT, maxT, lo, hi, ok
}
