package analyse

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"nathanbeddoewebdev/vitals/internal/app"
	"nathanbeddoewebdev/vitals/internal/group"
	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/metricstore"
)

// newTestApp returns an app over an in-memory store.
func newTestApp(t *testing.T) *app.App {
	t.Helper()
	store := metricstore.New(metricstore.NewMemoryBackend(), nil)
	groups := group.NewManager(filepath.Join(t.TempDir(), group.AliasFile), nil)
	return app.New(store, groups)
}

// seed stores a metric with one daily measurement per value from 1 March 2024.
func seed(t *testing.T, a *app.App, name string, guide metric.Guide, unit string, values ...float64) {
	t.Helper()
	if err := a.Store.Create(metric.New(name, guide, unit)); err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, v := range values {
		if err := a.Store.Append(name, metric.Measurement{Value: metric.Number(v), Date: day.AddDate(0, 0, i)}); err != nil {
			t.Fatalf("Append(%s): %v", name, err)
		}
	}
}

// execute runs the package command against a and returns stdout and stderr.
func execute(t *testing.T, a *app.App, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.ExecuteContext(app.WithApp(context.Background(), a))
	return outBuf.String(), errBuf.String()
}
