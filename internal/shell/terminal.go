// Package shell is the interactive vitals prompt: a top-level terminal whose
// verbs open sub-terminals, each resolving mistyped verbs to the closest
// known one.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"nathanbeddoewebdev/vitals/internal/similarity"
	"nathanbeddoewebdev/vitals/internal/tui/styles"

	"go.uber.org/zap"
)

const (
	verbExit = "exit"
	verbHelp = "help"
)

// LineReader supplies one line of input per call and io.EOF at the end.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Verb is one command a terminal understands.
type Verb struct {
	Name  string
	Usage string
	Help  string
	Run   func(ctx context.Context, args []string) error
}

// Terminal reads verbs until "exit" or end of input.
type Terminal struct {
	name  string
	verbs map[string]Verb
	lines LineReader
	out   io.Writer
	log   *zap.SugaredLogger
	// OnExit runs when the terminal is left by "exit" or end of input.
	OnExit func() error
}

// NewTerminal returns a terminal called name.
func NewTerminal(name string, lines LineReader, out io.Writer, log *zap.SugaredLogger, verbs ...Verb) *Terminal {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	t := &Terminal{name: name, verbs: make(map[string]Verb, len(verbs)), lines: lines, out: out, log: log}
	for _, v := range verbs {
		t.verbs[v.Name] = v
	}
	return t
}

// Name returns the terminal's name.
func (t *Terminal) Name() string { return t.name }

// Verbs returns the sorted verb names, not counting help and exit.
func (t *Terminal) Verbs() []string {
	names := make([]string, 0, len(t.verbs))
	for name := range t.verbs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run loops until exit. Verb errors are printed and the loop continues.
func (t *Terminal) Run(ctx context.Context) error {
	t.log.Infow("entered terminal", "terminal", t.name)
	fmt.Fprintf(t.out, "Entering %s terminal. Type 'help' for commands or 'exit' to leave.\n", t.name)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := t.lines.ReadLine(fmt.Sprintf("(%s) -> ", t.name))
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			return t.exit()
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		if done := t.Dispatch(ctx, fields); done {
			return t.exit()
		}
	}
}

// Dispatch runs one command line. It reports true when the line was exit.
func (t *Terminal) Dispatch(ctx context.Context, fields []string) bool {
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case verbExit:
		return true
	case verbHelp:
		t.printHelp()
		return false
	}

	verb, ok := t.verbs[name]
	if !ok {
		resolved, err := t.resolve(name)
		if err != nil {
			fmt.Fprintf(t.out, "Error: %q is not a %s command\n", name, t.name)
			return false
		}
		if resolved == verbExit {
			return true
		}
		if resolved == verbHelp {
			t.printHelp()
			return false
		}
		verb = t.verbs[resolved]
	}

	if err := verb.Run(ctx, args); err != nil {
		fmt.Fprintln(t.out, styles.ErrorText.Render("Error: "+err.Error()))
	}
	return false
}

// resolve maps an unknown verb to the closest known one, with a warning.
func (t *Terminal) resolve(name string) (string, error) {
	candidates := append(t.Verbs(), verbExit, verbHelp)
	match, err := similarity.ClosestMatch(name, candidates)
	if err != nil {
		return "", err
	}
	t.log.Warnw("verb not recognised, using closest match", "terminal", t.name, "input", name, "verb", match)
	fmt.Fprintln(t.out, styles.WarningText.Render(fmt.Sprintf("%q is not recognised, running %q.", name, match)))
	return match, nil
}

func (t *Terminal) printHelp() {
	fmt.Fprintf(t.out, "%s commands:\n", t.name)
	for _, name := range t.Verbs() {
		v := t.verbs[name]
		usage := v.Name
		if v.Usage != "" {
			usage += " " + v.Usage
		}
		fmt.Fprintf(t.out, "  %-34s %s\n", usage, styles.MutedText.Render(v.Help))
	}
	fmt.Fprintf(t.out, "  %-34s %s\n", verbHelp, styles.MutedText.Render("Show this list"))
	fmt.Fprintf(t.out, "  %-34s %s\n", verbExit, styles.MutedText.Render("Leave the "+t.name+" terminal"))
}

func (t *Terminal) exit() error {
	t.log.Infow("exited terminal", "terminal", t.name)
	if t.OnExit != nil {
		return t.OnExit()
	}
	return nil
}
