package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/tui"
	"nathanbeddoewebdev/vitals/internal/tui/styles"
)

// OutOfRange returns every stored metric with at least one measurement its
// guide rejects.
func (a *App) OutOfRange(ctx context.Context) ([]*metric.HealthMetric, error) {
	var all []*metric.HealthMetric
	err := tui.RunWithSpinner(ctx, "Reading metric files...", func(context.Context) error {
		var err error
		all, err = a.Store.ReadAll()
		return err
	})
	if err != nil {
		return nil, err
	}

	var out []*metric.HealthMetric
	for _, m := range all {
		if len(m.OutOfRange()) > 0 {
			out = append(out, m)
		}
	}
	return out, nil
}

// FindOutOfRange prints the report of metrics with out-of-range values.
func (a *App) FindOutOfRange(ctx context.Context, w io.Writer) error {
	start := time.Now()
	metrics, err := a.OutOfRange(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nFound %d out of range health metrics:\n", len(metrics))
	for i, m := range metrics {
		oor := m.OutOfRange()
		values := make([]string, len(oor))
		for j, e := range oor {
			values[j] = e.String()
		}
		plural := "s"
		if len(oor) == 1 {
			plural = ""
		}
		fmt.Fprintf(w, " (%d): %s -> %d measurement%s: %s. Should be '%s'\n",
			i+1, styles.Label.Render(m.Name), len(oor), plural,
			styles.RangeStyle(true).Render("["+strings.Join(values, ", ")+"]"), m.Descriptor())
	}
	fmt.Fprintln(w, styles.MutedText.Render(fmt.Sprintf("(time taken: %.2fs)", time.Since(start).Seconds())))
	return nil
}
