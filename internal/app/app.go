// Package app holds the operations behind every vitals command. The cobra
// commands and the interactive shell are thin layers over an *App.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"nathanbeddoewebdev/vitals/internal/config"
	"nathanbeddoewebdev/vitals/internal/entry"
	"nathanbeddoewebdev/vitals/internal/group"
	"nathanbeddoewebdev/vitals/internal/history"
	"nathanbeddoewebdev/vitals/internal/logging"
	"nathanbeddoewebdev/vitals/internal/metricstore"
	"nathanbeddoewebdev/vitals/internal/tui"

	"go.uber.org/zap"
)

// ErrNoApp is returned by FromContext when no app was attached.
var ErrNoApp = errors.New("app: no vitals app in context")

// App wires the store, groups, history and prompts together.
type App struct {
	Store    *metricstore.Store
	Groups   *group.Manager
	Sourcer  *group.Sourcer
	Journal  *history.Journal
	Prompter tui.Prompter
	// Lines is where the shell and the write loop read input from.
	Lines       *tui.LinePrompter
	Log         *zap.SugaredLogger
	Mode        entry.Mode
	Suggestions int
	// Width is the render width for charts and headers.
	Width int
}

// Option configures an App built with New.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *App) { a.Log = log }
}

// WithJournal sets where actions are recorded.
func WithJournal(j *history.Journal) Option {
	return func(a *App) { a.Journal = j }
}

// WithPrompter sets the prompter used for guides, suggestions and
// confirmations.
func WithPrompter(p tui.Prompter) Option {
	return func(a *App) { a.Prompter = p }
}

// WithLines sets the line reader used by the shell and write loop.
func WithLines(l *tui.LinePrompter) Option {
	return func(a *App) { a.Lines = l }
}

// WithMode sets the default handler mode.
func WithMode(m entry.Mode) Option {
	return func(a *App) { a.Mode = m }
}

// WithSuggestions sets how many matches assisted mode offers.
func WithSuggestions(n int) Option {
	return func(a *App) { a.Suggestions = n }
}

// New returns an app over store and groups.
func New(store *metricstore.Store, groups *group.Manager, opts ...Option) *App {
	a := &App{
		Store:       store,
		Groups:      groups,
		Mode:        entry.Manual,
		Suggestions: entry.DefaultSuggestions,
		Width:       80,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Log == nil {
		a.Log = logging.Nop()
	}
	if a.Journal == nil {
		a.Journal = history.NewJournal(nil, a.Log)
	}
	if a.Groups == nil {
		a.Groups = group.NewManager("", a.Log)
	}
	if a.Lines == nil {
		a.Lines = tui.NewLinePrompter(eofReader{}, io.Discard)
	}
	if a.Prompter == nil {
		a.Prompter = a.Lines
	}
	a.Sourcer = group.NewSourcer(store, a.Groups, a.Log)
	return a
}

// Open builds an app from cfg: the log file, metric directory, alias file
// and history database all come from cfg's resolved paths. Prompts read from
// in and write to out.
func Open(cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	paths, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(paths.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := metricstore.Open(paths.MetricDir, log)
	if err != nil {
		return nil, err
	}

	aliasPath := filepath.Join(paths.MemoryDir, group.AliasFile)
	groups, err := group.Load(aliasPath, store, log)
	if err != nil {
		log.Warnw("unable to load groups, starting with none", "path", aliasPath, "error", err)
		fmt.Fprintf(out, "Warning: could not load groups from %s; it will be left untouched and groups will not be saved this session.\n", aliasPath)
	}

	repo, err := history.OpenAt(paths.Database)
	var journal *history.Journal
	if err != nil {
		log.Warnw("history unavailable", "path", paths.Database, "error", err)
		journal = history.NewJournal(nil, log)
	} else {
		journal = history.NewJournal(repo, log)
	}

	mode := entry.Manual
	if cfg.DefaultMode != "" {
		m, err := entry.ParseMode(cfg.DefaultMode)
		if err != nil {
			log.Warnw("ignoring configured default mode", "error", err)
		} else {
			mode = m
		}
	}
	suggestions := cfg.Suggestions
	if suggestions <= 0 {
		suggestions = entry.DefaultSuggestions
	}

	lines := tui.NewLinePrompter(in, out)
	return New(store, groups,
		WithLogger(log),
		WithJournal(journal),
		WithLines(lines),
		WithPrompter(tui.NewPrompter(in, lines)),
		WithMode(mode),
		WithSuggestions(suggestions),
	), nil
}

// Flush saves the groups and syncs the log.
func (a *App) Flush() error {
	defer a.Log.Sync()
	if a.Groups.SourceFile() == "" {
		return nil
	}
	if err := a.Groups.Save(); err != nil {
		return fmt.Errorf("app: failed to save groups: %w", err)
	}
	return nil
}

// Close flushes and then closes the history.
func (a *App) Close() error {
	var errs []error
	if err := a.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := a.Journal.Close(); err != nil {
		errs = append(errs, fmt.Errorf("app: failed to close history: %w", err))
	}
	return errors.Join(errs...)
}

type ctxKey struct{}

// WithApp returns a copy of ctx carrying a.
func WithApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the app attached by WithApp.
func FromContext(ctx context.Context) (*App, error) {
	if ctx == nil {
		return nil, ErrNoApp
	}
	a, ok := ctx.Value(ctxKey{}).(*App)
	if !ok || a == nil {
		return nil, ErrNoApp
	}
	return a, nil
}

// eofReader is an input that is always exhausted.
type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

// SkipAnnotation marks cobra commands that run without an App, such as
// config and history, which must work even when the metric directory
// cannot be opened.
const SkipAnnotation = "vitals/skip-app"
