package shell

import (
	"context"
	"fmt"
	"io"
	"strings"

	"nathanbeddoewebdev/vitals/internal/app"
)

// DefaultGraphHeight is the chart height used by graph from_names.
const DefaultGraphHeight = 16

// New returns the top-level terminal for a. Each top-level verb opens its
// sub-terminal, or runs a sub-verb straight away when one follows it, as in
// "manage rename old new". Leaving the top level flushes groups and logs.
func New(a *app.App, out io.Writer) *Terminal {
	subs := []*Terminal{
		readTerminal(a, out),
		graphTerminal(a, out),
		manageTerminal(a, out),
		analyseTerminal(a, out),
		memoriseTerminal(a, out),
	}

	verbs := []Verb{{
		Name: "write",
		Help: "Record measurements, one 'metric value DDMMYYYY [unit]' per line",
		Run: func(ctx context.Context, args []string) error {
			mode, err := a.Prompter.ChooseMode(a.Mode)
			if err != nil {
				return err
			}
			a.Mode = mode
			return a.WriteLoop(out)
		},
	}}
	for _, sub := range subs {
		verbs = append(verbs, enter(sub))
	}

	top := NewTerminal("main", a.Lines, out, a.Log, verbs...)
	top.OnExit = a.Flush
	return top
}

func enter(sub *Terminal) Verb {
	return Verb{
		Name:  sub.Name(),
		Usage: "[command]",
		Help:  "Open the " + sub.Name() + " terminal (" + strings.Join(sub.Verbs(), ", ") + ")",
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				sub.Dispatch(ctx, args)
				return nil
			}
			return sub.Run(ctx)
		},
	}
}

// namesOrAsk returns args, or asks for a space-separated list when empty.
func namesOrAsk(a *app.App, args []string, question string) ([]string, error) {
	if len(args) > 0 {
		return joinQuoted(args), nil
	}
	answer, err := a.Prompter.Ask(question)
	if err != nil {
		return nil, err
	}
	return joinQuoted(strings.Fields(answer)), nil
}

// joinQuoted rejoins double-quoted words so "heart rate" names one metric.
func joinQuoted(fields []string) []string {
	var out []string
	var quoted []string
	for _, f := range fields {
		switch {
		case quoted != nil:
			quoted = append(quoted, f)
			if strings.HasSuffix(f, `"`) {
				out = append(out, strings.Trim(strings.Join(quoted, " "), `"`))
				quoted = nil
			}
		case strings.HasPrefix(f, `"`) && !(len(f) > 1 && strings.HasSuffix(f, `"`)):
			quoted = []string{f}
		default:
			out = append(out, strings.Trim(f, `"`))
		}
	}
	if quoted != nil {
		out = append(out, strings.Trim(strings.Join(quoted, " "), `"`))
	}
	return out
}

func readTerminal(a *app.App, out io.Writer) *Terminal {
	read := func(chart bool) func(context.Context, []string) error {
		return func(_ context.Context, args []string) error {
			names, err := namesOrAsk(a, args, "Read which metrics or groups?")
			if err != nil {
				return err
			}
			return a.Read(out, names, chart)
		}
	}
	return NewTerminal("read", a.Lines, out, a.Log,
		Verb{Name: "read_metric", Usage: "<names...>", Help: "Print every measurement", Run: read(false)},
		Verb{Name: "chart", Usage: "<names...>", Help: "Print measurements with a sparkline", Run: read(true)},
	)
}

func graphTerminal(a *app.App, out io.Writer) *Terminal {
	return NewTerminal("graph", a.Lines, out, a.Log,
		Verb{
			Name:  "from_names",
			Usage: "<names...>",
			Help:  "Plot metrics and groups on one time axis",
			Run: func(_ context.Context, args []string) error {
				names, err := namesOrAsk(a, args, "Graph which metrics or groups?")
				if err != nil {
					return err
				}
				return a.Graph(out, names, DefaultGraphHeight)
			},
		},
	)
}

func manageTerminal(a *app.App, out io.Writer) *Terminal {
	return NewTerminal("manage", a.Lines, out, a.Log,
		Verb{
			Name:  "rename",
			Usage: "<old> <new>",
			Help:  "Rename a metric",
			Run: func(_ context.Context, args []string) error {
				names := joinQuoted(args)
				if len(names) != 2 {
					oldName, err := a.Prompter.Ask("Rename which metric?")
					if err != nil {
						return err
					}
					newName, err := a.Prompter.Ask(fmt.Sprintf("Rename %q to what?", oldName))
					if err != nil {
						return err
					}
					names = []string{oldName, newName}
				}
				return a.Rename(out, names[0], names[1])
			},
		},
		Verb{
			Name:  "show",
			Usage: "[names...]",
			Help:  "Summarise metrics",
			Run: func(_ context.Context, args []string) error {
				return a.Show(out, joinQuoted(args))
			},
		},
		Verb{
			Name:  "search",
			Usage: "<query>",
			Help:  "List the metrics closest to a name",
			Run: func(_ context.Context, args []string) error {
				query := strings.Join(args, " ")
				if query == "" {
					var err error
					if query, err = a.Prompter.Ask("Search for"); err != nil {
						return err
					}
				}
				return a.Search(out, query, 5)
			},
		},
		Verb{
			Name:  "instantiate",
			Usage: "<name> [unit]",
			Help:  "Create an empty metric",
			Run: func(_ context.Context, args []string) error {
				names := joinQuoted(args)
				if len(names) == 0 {
					name, err := a.Prompter.Ask("Name of the new metric")
					if err != nil {
						return err
					}
					names = []string{name}
				}
				unit := ""
				if len(names) > 1 {
					unit = names[1]
				}
				return a.Instantiate(out, names[0], nil, unit)
			},
		},
		Verb{
			Name:  "update_units",
			Usage: "<name> <unit>",
			Help:  "Set the unit of every entry and of the metric",
			Run: func(_ context.Context, args []string) error {
				names := joinQuoted(args)
				if len(names) != 2 {
					name, err := a.Prompter.Ask("Update units of which metric?")
					if err != nil {
						return err
					}
					unit, err := a.Prompter.Ask("New unit")
					if err != nil {
						return err
					}
					names = []string{name, unit}
				}
				return a.UpdateUnits(out, names[0], names[1], true)
			},
		},
	)
}

func analyseTerminal(a *app.App, out io.Writer) *Terminal {
	return NewTerminal("analyse", a.Lines, out, a.Log,
		Verb{
			Name: "find_oor",
			Help: "List metrics with out of range measurements",
			Run: func(ctx context.Context, _ []string) error {
				return a.FindOutOfRange(ctx, out)
			},
		},
	)
}

func memoriseTerminal(a *app.App, out io.Writer) *Terminal {
	return NewTerminal("memorise", a.Lines, out, a.Log,
		Verb{
			Name:  "remember",
			Usage: "<names...> as <group>",
			Help:  "Save metrics and groups under one name",
			Run: func(_ context.Context, args []string) error {
				members, alias, err := app.RememberArgs(joinQuoted(args))
				if err != nil {
					return err
				}
				return a.Remember(out, members, alias, "")
			},
		},
		Verb{
			Name:  "forget",
			Usage: "<groups...>",
			Help:  "Remove saved groups",
			Run: func(_ context.Context, args []string) error {
				names, err := namesOrAsk(a, args, "Forget which groups?")
				if err != nil {
					return err
				}
				return a.Forget(out, names)
			},
		},
		Verb{
			Name: "list",
			Help: "List saved groups",
			Run: func(_ context.Context, _ []string) error {
				return a.ListGroups(out)
			},
		},
	)
}
