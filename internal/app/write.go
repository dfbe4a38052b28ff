package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"nathanbeddoewebdev/vitals/internal/entry"
	"nathanbeddoewebdev/vitals/internal/tui/styles"
)

// NewHandler returns an entry handler for mode that prompts and records
// through the app.
func (a *App) NewHandler(mode entry.Mode) (*entry.Handler, error) {
	h, err := entry.NewHandler(mode, a.Store,
		entry.WithLogger(a.Log),
		entry.WithPrompter(a.Prompter),
		entry.WithChooser(a.Prompter),
		entry.WithJournal(a.Journal),
	)
	if err != nil {
		return nil, err
	}
	if err := h.SetSuggestions(a.Suggestions); err != nil {
		return nil, err
	}
	return h, nil
}

// Write handles each line in order with one handler, so wildcards refer
// back to earlier lines. It stops at the first line that fails.
func (a *App) Write(w io.Writer, mode entry.Mode, lines []string) error {
	h, err := a.NewHandler(mode)
	if err != nil {
		return err
	}
	for _, line := range lines {
		res, err := h.Handle(line)
		if err != nil {
			return err
		}
		printResult(w, res)
	}
	return nil
}

// WriteLoop reads lines until "exit" or end of input. "handler" switches
// mode and starts a fresh session. Failed lines are reported and the loop
// carries on.
func (a *App) WriteLoop(w io.Writer) error {
	h, err := a.NewHandler(a.Mode)
	if err != nil {
		return err
	}

	a.Log.Infow("entered write terminal", "mode", h.Mode().String())
	defer a.Log.Infow("exited write terminal")

	fmt.Fprintln(w, styles.MutedText.Render("Format is 'metric value DDMMYYYY [unit]'. '*' repeats the previous line's field."))
	fmt.Fprintln(w, styles.MutedText.Render("Type 'handler' to change mode or 'exit' to leave."))

	for {
		raw, err := a.Lines.ReadLine(fmt.Sprintf("(write:%s) -> ", h.Mode()))
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(w)
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "":
			continue
		case "exit":
			return nil
		case "handler":
			mode, err := a.Prompter.ChooseMode(h.Mode())
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				continue
			}
			next, err := a.NewHandler(mode)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				continue
			}
			h = next
			a.Log.Infow("switched handler mode", "mode", mode.String())
			fmt.Fprintf(w, "Handler mode is now %s.\n", styles.AccentText.Render(mode.String()))
			continue
		}

		res, err := h.Handle(raw)
		if err != nil {
			fmt.Fprintf(w, "%s\n", styles.ErrorText.Render("Error: "+err.Error()))
			continue
		}
		printResult(w, res)
	}
}

func printResult(w io.Writer, res *entry.Result) {
	if res.Created {
		fmt.Fprintf(w, "Created metric %s.\n", styles.AccentText.Render(res.Metric))
	}
	if res.Corrected {
		fmt.Fprintf(w, "Corrected %q to %s.\n", res.Resolution.Name, styles.AccentText.Render(res.Metric))
	}

	value := res.Line.Value.String()
	if res.Line.Unit != "" {
		value += " " + res.Line.Unit
	}
	fmt.Fprintf(w, "%s %s to %s (%s)\n",
		styles.SuccessText.Render("Added"), value, res.Metric, res.Line.Date.Format("02 Jan 2006"))
}
