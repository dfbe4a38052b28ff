package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nathanbeddoewebdev/vitals/internal/app"
	"nathanbeddoewebdev/vitals/internal/entry"
	"nathanbeddoewebdev/vitals/internal/group"
	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/metricstore"
	"nathanbeddoewebdev/vitals/internal/tui"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func lines(input ...string) *tui.LinePrompter {
	return tui.NewLinePrompter(strings.NewReader(strings.Join(input, "\n")), &bytes.Buffer{})
}

func TestTerminal_ExactAndClosestVerb(t *testing.T) {
	log, logs := observed()
	var calls []string
	record := func(name string) Verb {
		return Verb{Name: name, Run: func(_ context.Context, args []string) error {
			calls = append(calls, name+":"+strings.Join(args, ","))
			return nil
		}}
	}

	var out bytes.Buffer
	term := NewTerminal("manage", lines("rename a b", "shwo", "", "serch x", "exit", "rename c d"), &out, log,
		record("rename"), record("show"), record("search"))
	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"rename:a,b", "show:", "search:x"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if logs.FilterMessage("verb not recognised, using closest match").Len() != 2 {
		t.Error("expected both corrections to be logged")
	}
	if !strings.Contains(out.String(), `"shwo" is not recognised, running "show".`) {
		t.Errorf("missing correction notice:\n%s", out.String())
	}
	if logs.FilterMessage("exited terminal").Len() != 1 {
		t.Error("expected exit to be logged")
	}
}

func TestTerminal_ErrorsDoNotEndLoop(t *testing.T) {
	var out bytes.Buffer
	runs := 0
	term := NewTerminal("read", lines("fail", "fail"), &out, nil, Verb{
		Name: "fail",
		Run: func(context.Context, []string) error {
			runs++
			return errors.New("boom")
		},
	})
	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runs != 2 {
		t.Errorf("verb ran %d times, want 2", runs)
	}
	if strings.Count(out.String(), "Error: boom") != 2 {
		t.Errorf("expected two printed errors:\n%s", out.String())
	}
}

func TestTerminal_HelpAndMisspelledExit(t *testing.T) {
	var out bytes.Buffer
	exited := false
	term := NewTerminal("memorise", lines("help", "exti", "list"), &out, nil,
		Verb{Name: "list", Help: "List saved groups", Run: func(context.Context, []string) error {
			t.Error("verb after exit should not run")
			return nil
		}})
	term.OnExit = func() error { exited = true; return nil }

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !exited {
		t.Error("OnExit was not called")
	}
	for _, want := range []string{"memorise commands:", "List saved groups", "Leave the memorise terminal"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q:\n%s", want, out.String())
		}
	}
}

func TestJoinQuoted(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"weight", "bmi"}, []string{"weight", "bmi"}},
		{[]string{`"heart`, `rate"`, "bmi"}, []string{"heart rate", "bmi"}},
		{[]string{`"bp"`}, []string{"bp"}},
		{[]string{`"resting`, "heart", "rate"}, []string{"resting heart rate"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, joinQuoted(tt.in)); diff != "" {
			t.Errorf("joinQuoted(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func newShellApp(t *testing.T, input ...string) *app.App {
	t.Helper()
	log, _ := observed()
	store := metricstore.New(metricstore.NewMemoryBackend(), log)
	groups := group.NewManager(filepath.Join(t.TempDir(), group.AliasFile), log)
	l := lines(input...)
	return app.New(store, groups, app.WithLogger(log), app.WithLines(l), app.WithPrompter(l))
}

func TestShell_EndToEnd(t *testing.T) {
	a := newShellApp(t,
		"write",
		"2",
		"weight 80 01012024 kg",
		"m",
		"weigth 79 02012024 *",
		"1",
		"exit",
		"memorise remember weight as body",
		"manage",
		"shwo",
		"exit",
		"read read_metric body",
		"exit",
	)

	var out bytes.Buffer
	if err := New(a, &out).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	m, err := a.Store.Read("weight")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("weight has %d entries, want 2", m.Count())
	}
	if !a.Groups.IsRegistered("body") {
		t.Error("group was not remembered")
	}
	if _, err := os.Stat(a.Groups.SourceFile()); err != nil {
		t.Errorf("alias file not flushed on exit: %v", err)
	}
	for _, want := range []string{"Registered group \"body\"", "NAME", "(Found 2 entries)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestShell_VerbsListed(t *testing.T) {
	a := newShellApp(t)
	top := New(a, &bytes.Buffer{})
	want := []string{"analyse", "graph", "manage", "memorise", "read", "write"}
	if diff := cmp.Diff(want, top.Verbs()); diff != "" {
		t.Errorf("verbs mismatch (-want +got):\n%s", diff)
	}
}

func TestShell_GraphAndAnalyse(t *testing.T) {
	a := newShellApp(t, "graph from_names bp", "analyse find_oor", "exit")
	if err := a.Store.Create(metric.New("bp", metric.LessThanGuide{Max: 120}, "mmhg")); err != nil {
		t.Fatal(err)
	}
	if err := a.Store.Append("bp", metric.Measurement{Value: metric.Number(140), Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := New(a, &out).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"1 metric(s)", "Found 1 out of range health metrics", "Should be 'm <= 120'"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if a.Mode != entry.Manual {
		t.Errorf("mode changed to %v", a.Mode)
	}
}
