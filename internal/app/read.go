package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"nathanbeddoewebdev/vitals/internal/group"
	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/tui/components"
	"nathanbeddoewebdev/vitals/internal/tui/styles"
)

// Metrics resolves names (metrics or groups) to the metrics they stand for,
// re-read from the store so group members reflect recent writes.
func (a *App) Metrics(names []string) ([]*metric.HealthMetric, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no names given", group.ErrNotFound)
	}
	g, err := a.Sourcer.SourceAll("", names)
	if err != nil {
		return nil, err
	}

	metrics := g.Metrics()
	for i, m := range metrics {
		fresh, err := a.Store.Read(m.Name)
		if err != nil {
			a.Log.Warnw("using remembered copy of metric", "metric", m.Name, "error", err)
			continue
		}
		metrics[i] = fresh
	}
	return metrics, nil
}

// Read prints every measurement of the named metrics or groups. With chart
// each metric also gets a sparkline with its guide bounds.
func (a *App) Read(w io.Writer, names []string, chart bool) error {
	metrics, err := a.Metrics(names)
	if err != nil {
		return err
	}

	for _, m := range metrics {
		fmt.Fprintln(w, components.Header(a.Width, []string{"read", m.Name}, m.Descriptor()))
		if m.Count() == 0 {
			fmt.Fprintln(w, styles.MutedText.Render("No entries."))
			fmt.Fprintln(w)
			continue
		}

		fmt.Fprintf(w, "(Found %d entries)\n", m.Count())
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, e := range m.Entries {
			value := e.Value.String()
			if e.Unit != "" {
				value += " " + e.Unit
			}
			oor := m.Guide.OutOfRange(e)
			fmt.Fprintf(tw, " - %s\t%s\t%s\n", e.Date.Format("2006-01-02"), value, styles.RangeIndicator(oor, rangeLabel(oor)))
		}
		tw.Flush()

		if chart {
			fmt.Fprintln(w, components.Sparkline(m.Name, numericValues(m), metric.Bounds(m.Guide), a.Width, m.Unit))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// Graph draws the named metrics or groups on one time axis.
func (a *App) Graph(w io.Writer, names []string, height int) error {
	metrics, err := a.Metrics(names)
	if err != nil {
		return err
	}

	series := make([]components.Series, 0, len(metrics))
	for _, m := range metrics {
		series = append(series, timeSeries(m))
	}

	fmt.Fprintln(w, components.Header(a.Width, []string{"graph"}, fmt.Sprintf("%d metric(s)", len(metrics))))
	fmt.Fprintln(w, components.Timeline(series, a.Width, height))
	return nil
}

func rangeLabel(oor bool) string {
	if oor {
		return "out of range"
	}
	return "ok"
}

// plotValue returns the y value a measurement is drawn at. Booleans plot as
// 1 and 0; text has no position.
func plotValue(m metric.Measurement) (float64, bool) {
	if f, ok := m.Value.Float(); ok {
		return f, true
	}
	if b, ok := m.Value.Bool(); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func numericValues(m *metric.HealthMetric) []float64 {
	var out []float64
	for _, e := range m.Entries {
		if v, ok := plotValue(e); ok {
			out = append(out, v)
		}
	}
	return out
}

func timeSeries(m *metric.HealthMetric) components.Series {
	s := components.Series{Name: m.Name}
	for _, e := range m.Entries {
		if e.Date.IsZero() {
			continue
		}
		if v, ok := plotValue(e); ok {
			s.Points = append(s.Points, components.Point{Time: e.Date, Value: v})
		}
	}
	return s
}
