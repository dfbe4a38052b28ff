package entry

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/metricstore"
	"nathanbeddoewebdev/vitals/internal/util"

	"go.uber.org/zap"
)

// DefaultSuggestions is how many close matches assisted mode offers.
const DefaultSuggestions = 3

// ErrBadSuggestions is returned for a suggestion count below one.
var ErrBadSuggestions = errors.New("entry: suggestion count must be at least 1")

// Store is the part of the metric store a handler writes through.
type Store interface {
	Names() ([]string, error)
	Create(m *metric.HealthMetric) error
	Append(name string, m metric.Measurement) error
}

// GuidePrompter asks the user how a new metric should be judged.
type GuidePrompter interface {
	PromptGuide(name string) (metric.Guide, error)
}

// Chooser asks the user to pick one of the suggested names for an unknown
// name. verbatim is true when the user wants the typed name kept as is.
type Chooser interface {
	Choose(name string, candidates []string) (choice string, verbatim bool, err error)
}

// Event is one change a handler made, for the action history.
type Event struct {
	Action string
	Metric string
	Mode   Mode
	Detail string
}

// Journal records handler events. Implementations must not block entry.
type Journal interface {
	Record(e Event)
}

// Result describes what Handle did with a line.
type Result struct {
	Line       Line
	Resolution Resolution
	// Metric is the name the measurement was appended to.
	Metric    string
	Created   bool
	Corrected bool
}

// Handler turns lines into stored measurements under one Mode. A handler
// owns its Session, so wildcards only repeat lines it has seen.
type Handler struct {
	mode        Mode
	store       Store
	session     Session
	prompter    GuidePrompter
	chooser     Chooser
	journal     Journal
	log         *zap.SugaredLogger
	suggestions int
	recognised  []string
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(h *Handler) { h.log = log }
}

// WithPrompter sets how guides are asked for when a metric is created.
// Without one, new metrics get a FreeGuide.
func WithPrompter(p GuidePrompter) Option {
	return func(h *Handler) { h.prompter = p }
}

// WithChooser sets how assisted mode asks the user to pick a suggestion.
func WithChooser(c Chooser) Option {
	return func(h *Handler) { h.chooser = c }
}

// WithJournal sets where handler events are recorded.
func WithJournal(j Journal) Option {
	return func(h *Handler) { h.journal = j }
}

// NewHandler returns a handler for mode writing to store. It loads the
// recognised metric names straight away.
func NewHandler(mode Mode, store Store, opts ...Option) (*Handler, error) {
	h := &Handler{
		mode:        mode,
		store:       store,
		suggestions: DefaultSuggestions,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = zap.NewNop().Sugar()
	}
	if mode == Assisted && h.chooser == nil {
		return nil, errors.New("entry: assisted mode needs a chooser")
	}
	if err := h.Refresh(); err != nil {
		return nil, err
	}
	return h, nil
}

// Mode returns the handler's mode.
func (h *Handler) Mode() Mode { return h.mode }

// SetSuggestions sets how many matches assisted mode offers.
func (h *Handler) SetSuggestions(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w, got %d", ErrBadSuggestions, n)
	}
	h.suggestions = n
	return nil
}

// Recognised returns the metric names the handler currently knows.
func (h *Handler) Recognised() []string {
	return append([]string(nil), h.recognised...)
}

// Refresh reloads the recognised metric names from the store.
func (h *Handler) Refresh() error {
	names, err := h.store.Names()
	if err != nil {
		return fmt.Errorf("entry: failed to list metrics: %w", err)
	}
	h.recognised = names
	return nil
}

// Handle parses raw and stores the measurement it describes. A line that
// fails to parse changes nothing and returns an error matching
// ErrMalformedInput.
func (h *Handler) Handle(raw string) (*Result, error) {
	line, err := h.session.Parse(raw)
	if err != nil {
		h.log.Warnw("discarding malformed line", "input", raw, "mode", h.mode.String(), "error", err)
		return nil, err
	}

	k := h.suggestions
	if h.mode == Speedy {
		k = 1
	}
	res := Resolve(line.Name, h.recognised, k)
	result := &Result{Line: line, Resolution: res, Metric: res.Name}

	switch res.Outcome {
	case Known:
		// Append below.
	case Create:
		result.Created = true
	case Suggest:
		switch h.mode {
		case Manual:
			result.Created = true
		case Assisted:
			choice, verbatim, err := h.chooser.Choose(res.Name, res.Candidates)
			if err != nil {
				return nil, fmt.Errorf("entry: no choice made for %q: %w", res.Name, err)
			}
			if verbatim {
				result.Created = true
			} else {
				result.Metric = choice
			}
		case Speedy:
			result.Metric = res.Candidates[0]
			result.Corrected = true
			h.log.Infow("automatically corrected metric name",
				"action", "correct", "input", res.Name, "metric", result.Metric)
			h.record("correct", result.Metric, fmt.Sprintf("matched %s to %s", res.Name, result.Metric))
		}
	}

	if result.Created {
		if err := h.create(result.Metric, line.Unit); err != nil {
			return nil, err
		}
	}

	m := metric.Measurement{Value: line.Value, Date: line.Date, Unit: line.Unit}
	if err := h.store.Append(result.Metric, m); err != nil {
		h.log.Errorw("failed to add measurement", "metric", result.Metric, "error", err)
		return nil, fmt.Errorf("entry: failed to add measurement to %q: %w", result.Metric, err)
	}
	h.record("append", result.Metric, m.Value.String())
	return result, nil
}

func (h *Handler) create(name, unit string) error {
	if err := util.ValidateMetricName(name); err != nil {
		return fmt.Errorf("entry: cannot create %q: %w", name, err)
	}

	var guide metric.Guide = metric.FreeGuide{}
	if h.prompter != nil {
		g, err := h.prompter.PromptGuide(name)
		if err != nil {
			return fmt.Errorf("entry: no guide for new metric %q: %w", name, err)
		}
		guide = g
	}

	err := h.store.Create(metric.New(name, guide, unit))
	switch {
	case err == nil:
		h.record("create", name, string(guide.Type()))
	case errors.Is(err, metricstore.ErrExists):
		h.log.Warnw("metric already exists, appending to it", "metric", name)
	default:
		return fmt.Errorf("entry: failed to create %q: %w", name, err)
	}

	return h.Refresh()
}

func (h *Handler) record(action, name, detail string) {
	if h.journal == nil {
		return
	}
	h.journal.Record(Event{Action: action, Metric: name, Mode: h.mode, Detail: detail})
}
