package entry

import (
	"errors"
	"testing"
	"time"

	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/metricstore"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakePrompter struct {
	guide metric.Guide
	asked []string
}

func (p *fakePrompter) PromptGuide(name string) (metric.Guide, error) {
	p.asked = append(p.asked, name)
	return p.guide, nil
}

type fakeChooser struct {
	pick     int
	verbatim bool
	err      error
	offered  [][]string
}

func (c *fakeChooser) Choose(name string, candidates []string) (string, bool, error) {
	c.offered = append(c.offered, candidates)
	if c.err != nil {
		return "", false, c.err
	}
	if c.verbatim {
		return name, true, nil
	}
	return candidates[c.pick], false, nil
}

type fakeJournal struct{ events []Event }

func (j *fakeJournal) Record(e Event) { j.events = append(j.events, e) }

func newStore(t *testing.T, names ...string) *metricstore.Store {
	t.Helper()
	s := metricstore.New(metricstore.NewMemoryBackend(), nil)
	for _, n := range names {
		if err := s.Create(metric.New(n, nil, "")); err != nil {
			t.Fatalf("Create(%s): %v", n, err)
		}
	}
	return s
}

func mustHandler(t *testing.T, mode Mode, store Store, opts ...Option) *Handler {
	t.Helper()
	h, err := NewHandler(mode, store, opts...)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h
}

func TestManual_CreatesUnknownMetric(t *testing.T) {
	store := newStore(t, "weight")
	prompter := &fakePrompter{guide: metric.FreeGuide{}}
	journal := &fakeJournal{}
	h := mustHandler(t, Manual, store, WithPrompter(prompter), WithJournal(journal))

	res, err := h.Handle("bp 120 01012024")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.Created || res.Metric != "bp" {
		t.Errorf("result = %+v, want created bp", res)
	}
	if diff := cmp.Diff([]string{"bp"}, prompter.asked); diff != "" {
		t.Errorf("prompted names mismatch (-want +got):\n%s", diff)
	}

	got, err := store.Read("bp")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Type() != metric.TypeFree || got.Count() != 1 {
		t.Fatalf("bp = %v", got)
	}
	if f, _ := got.Entries[0].Value.Float(); f != 120.0 {
		t.Errorf("value = %v, want 120", f)
	}
	if !got.Entries[0].Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want 2024-01-01", got.Entries[0].Date)
	}
	if diff := cmp.Diff([]string{"bp", "weight"}, h.Recognised()); diff != "" {
		t.Errorf("recognised not refreshed (-want +got):\n%s", diff)
	}

	var actions []string
	for _, e := range journal.events {
		actions = append(actions, e.Action)
	}
	if diff := cmp.Diff([]string{"create", "append"}, actions); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}
}

func TestManual_TypoBecomesNewMetric(t *testing.T) {
	store := newStore(t, "weight")
	h := mustHandler(t, Manual, store)

	res, err := h.Handle("weigth 80 01012024")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Metric != "weigth" || !res.Created {
		t.Errorf("result = %+v, want new metric weigth", res)
	}
}

func TestManual_StripsVerbatimMarker(t *testing.T) {
	store := newStore(t)
	h := mustHandler(t, Manual, store)

	res, err := h.Handle("ldl* 2.1 01012024")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Metric != "ldl" {
		t.Errorf("Metric = %q, want ldl", res.Metric)
	}
	if ok, _ := store.Exists("ldl*"); ok {
		t.Error("verbatim marker was kept in the stored name")
	}
}

func TestKnownName_AppendsWithoutPrompting(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			store := newStore(t, "weight")
			prompter := &fakePrompter{}
			chooser := &fakeChooser{}
			h := mustHandler(t, mode, store, WithPrompter(prompter), WithChooser(chooser))

			res, err := h.Handle("WEIGHT 80 01012024")
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if res.Created || res.Corrected || res.Metric != "weight" {
				t.Errorf("result = %+v", res)
			}
			if len(prompter.asked) != 0 || len(chooser.offered) != 0 {
				t.Error("known name should not prompt")
			}
		})
	}
}

func TestAssisted_SelectSuggestion(t *testing.T) {
	store := newStore(t, "weight", "height", "heart rate")
	chooser := &fakeChooser{pick: 0}
	prompter := &fakePrompter{guide: metric.FreeGuide{}}
	h := mustHandler(t, Assisted, store, WithChooser(chooser), WithPrompter(prompter))

	res, err := h.Handle("weigth 80 01012024")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(chooser.offered) != 1 || chooser.offered[0][0] != "weight" {
		t.Fatalf("offered = %v, want weight first", chooser.offered)
	}
	if len(chooser.offered[0]) != DefaultSuggestions {
		t.Errorf("offered %d suggestions, want %d", len(chooser.offered[0]), DefaultSuggestions)
	}
	if res.Metric != "weight" || res.Created {
		t.Errorf("result = %+v, want append to weight", res)
	}
	if ok, _ := store.Exists("weigth"); ok {
		t.Error("typo was created as a new metric")
	}
	got, _ := store.Read("weight")
	if got.Count() != 1 {
		t.Errorf("weight has %d entries, want 1", got.Count())
	}
}

func TestAssisted_VerbatimChoiceCreatesTypedName(t *testing.T) {
	store := newStore(t, "weight")
	chooser := &fakeChooser{verbatim: true}
	h := mustHandler(t, Assisted, store, WithChooser(chooser))

	res, err := h.Handle("weigth 80 01012024")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Metric != "weigth" || !res.Created {
		t.Errorf("result = %+v, want new metric weigth", res)
	}
}

func TestAssisted_VerbatimMarkerSkipsPrompt(t *testing.T) {
	store := newStore(t, "weight")
	chooser := &fakeChooser{}
	h := mustHandler(t, Assisted, store, WithChooser(chooser))

	res, err := h.Handle(`"weigth" 80 01012024`)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(chooser.offered) != 0 {
		t.Error("verbatim input should not prompt")
	}
	if res.Metric != "weigth" || !res.Created {
		t.Errorf("result = %+v", res)
	}
}

func TestAssisted_ChooserErrorAborts(t *testing.T) {
	store := newStore(t, "weight")
	h := mustHandler(t, Assisted, store, WithChooser(&fakeChooser{err: errors.New("cancelled")}))

	if _, err := h.Handle("weigth 80 01012024"); err == nil {
		t.Fatal("expected error")
	}
	got, _ := store.Read("weight")
	if got.Count() != 0 {
		t.Error("cancelled choice still appended")
	}
}

func TestAssisted_RequiresChooser(t *testing.T) {
	if _, err := NewHandler(Assisted, newStore(t)); err == nil {
		t.Error("expected error without a chooser")
	}
}

func TestSetSuggestions(t *testing.T) {
	store := newStore(t, "a", "b", "c", "d")
	chooser := &fakeChooser{}
	h := mustHandler(t, Assisted, store, WithChooser(chooser))

	for _, n := range []int{0, -1} {
		if err := h.SetSuggestions(n); !errors.Is(err, ErrBadSuggestions) {
			t.Errorf("SetSuggestions(%d) = %v, want ErrBadSuggestions", n, err)
		}
	}
	if err := h.SetSuggestions(2); err != nil {
		t.Fatalf("SetSuggestions(2): %v", err)
	}
	if _, err := h.Handle("e 1 01012024"); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(chooser.offered[0]) != 2 {
		t.Errorf("offered %d, want 2", len(chooser.offered[0]))
	}
}

func TestSpeedy_AutoCorrects(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := newStore(t, "weight", "height")
	prompter := &fakePrompter{}
	journal := &fakeJournal{}
	h := mustHandler(t, Speedy, store,
		WithLogger(zap.New(core).Sugar()), WithPrompter(prompter), WithJournal(journal))

	res, err := h.Handle("weigth 80 01012024")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Metric != "weight" || !res.Corrected || res.Created {
		t.Errorf("result = %+v, want corrected to weight", res)
	}
	if len(prompter.asked) != 0 {
		t.Error("speedy mode should not prompt")
	}

	entries := logs.FilterMessage("automatically corrected metric name").All()
	if len(entries) != 1 {
		t.Fatalf("got %d correction logs, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["input"] != "weigth" || fields["metric"] != "weight" {
		t.Errorf("log fields = %v", fields)
	}
	if journal.events[0].Action != "correct" || journal.events[0].Detail != "matched weigth to weight" {
		t.Errorf("journal = %+v", journal.events)
	}
	if journal.events[0].Mode != Speedy {
		t.Errorf("journal mode = %v, want speedy", journal.events[0].Mode)
	}
}

func TestSpeedy_VerbatimCreates(t *testing.T) {
	store := newStore(t, "weight")
	h := mustHandler(t, Speedy, store)

	res, err := h.Handle("weigth* 80 01012024")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Metric != "weigth" || !res.Created {
		t.Errorf("result = %+v", res)
	}
}

func TestSpeedy_EmptyStoreCreates(t *testing.T) {
	h := mustHandler(t, Speedy, newStore(t))
	res, err := h.Handle("weight 80 01012024")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.Created {
		t.Errorf("result = %+v, want created", res)
	}
}

func TestHandle_MalformedLineChangesNothing(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := newStore(t, "weight")
	h := mustHandler(t, Manual, store, WithLogger(zap.New(core).Sugar()))

	_, err := h.Handle("weight 80 2024-01-01")
	if !errors.Is(err, ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
	got, _ := store.Read("weight")
	if got.Count() != 0 {
		t.Error("malformed line was stored")
	}
	if logs.FilterMessage("discarding malformed line").Len() != 1 {
		t.Error("expected a warning for the malformed line")
	}
}

func TestHandle_WildcardLines(t *testing.T) {
	store := newStore(t, "weight")
	h := mustHandler(t, Manual, store)

	for _, line := range []string{"weight 80 01012024 kg", "* 81 02012024 *", "* * 03012024"} {
		if _, err := h.Handle(line); err != nil {
			t.Fatalf("Handle(%q): %v", line, err)
		}
	}

	got, _ := store.Read("weight")
	var values, units []string
	for _, m := range got.Entries {
		values = append(values, m.String())
		units = append(units, m.Unit)
	}
	if diff := cmp.Diff([]string{"80", "81", "81"}, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"kg", "kg", ""}, units); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlers_HaveIndependentSessions(t *testing.T) {
	store := newStore(t, "weight")
	a := mustHandler(t, Manual, store)
	b := mustHandler(t, Manual, store)

	if _, err := a.Handle("weight 80 01012024"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Handle("* * *"); !errors.Is(err, ErrNoPrevious) {
		t.Errorf("expected ErrNoPrevious from a fresh session, got %v", err)
	}
}

func TestHandle_NonFiniteNumbersStoredAsText(t *testing.T) {
	store := newStore(t, "weight")
	h := mustHandler(t, Manual, store, WithPrompter(&fakePrompter{guide: metric.FreeGuide{}}))

	for _, line := range []string{"mood nan 01012024", "weight inf 01012024"} {
		if _, err := h.Handle(line); err != nil {
			t.Fatalf("Handle(%q): %v", line, err)
		}
	}

	for name, want := range map[string]string{"mood": "nan", "weight": "inf"} {
		m, err := store.Read(name)
		if err != nil {
			t.Fatalf("Read(%s): %v", name, err)
		}
		if m.Count() != 1 {
			t.Fatalf("%s has %d entries, want 1", name, m.Count())
		}
		if v := m.Entries[0].Value; v.Kind() != metric.KindText || v.String() != want {
			t.Errorf("%s value = %s %q, want text %q", name, v.Kind(), v.String(), want)
		}
	}
}

func TestHandle_InvalidNameRejectedBeforePrompt(t *testing.T) {
	store := newStore(t, "weight")
	prompter := &fakePrompter{guide: metric.FreeGuide{}}
	h := mustHandler(t, Manual, store, WithPrompter(prompter))

	if _, err := h.Handle("a/b 1 01012024"); err == nil {
		t.Fatal("expected an error for a name with a path separator")
	}
	if len(prompter.asked) != 0 {
		t.Errorf("guide prompted for %v before the name was validated", prompter.asked)
	}
	names, _ := store.Names()
	if diff := cmp.Diff([]string{"weight"}, names); diff != "" {
		t.Errorf("store changed (-want +got):\n%s", diff)
	}
}
