package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nathanbeddoewebdev/vitals/internal/entry"
	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/tui/styles"
)

// guideLetters maps the single-letter answers of the guide prompt to types.
var guideLetters = map[string]metric.Type{
	"r": metric.TypeRanged,
	"g": metric.TypeGreaterThan,
	"l": metric.TypeLessThan,
	"b": metric.TypeBoolean,
	"m": metric.TypeFree,
}

// LinePrompter prompts on plain lines of text. It is used when input is not
// a terminal, and its ReadLine is what the shell reads commands with, so
// both share one buffer.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter reads answers from in and writes prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next line without its line ending.
// It returns io.EOF once input is exhausted.
func (p *LinePrompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask is ReadLine with EOF reported as ErrAborted.
func (p *LinePrompter) ask(prompt string) (string, error) {
	line, err := p.ReadLine(prompt)
	if errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: end of input", ErrAborted)
	}
	return strings.TrimSpace(line), err
}

// PromptGuide asks for a guide letter, then for bounds until they parse.
func (p *LinePrompter) PromptGuide(name string) (metric.Guide, error) {
	fmt.Fprintf(p.out, "How should %q be judged?\n", name)
	for _, t := range metric.Types {
		fmt.Fprintf(p.out, "  (%s) %-13s %s\n", letterFor(t), t, styles.MutedText.Render(t.Description()))
	}

	var t metric.Type
	for {
		answer, err := p.ask(" -> ")
		if err != nil {
			return nil, err
		}
		if mt, ok := guideLetters[strings.ToLower(answer)]; ok {
			t = mt
			break
		}
		if mt, err := metric.ParseType(answer); err == nil {
			t = mt
			break
		}
		fmt.Fprintln(p.out, styles.ErrorText.Render("Please enter one of r, g, l, b or m."))
	}

	hint := boundsHint(t)
	if hint == "" {
		return metric.FreeGuide{}, nil
	}
	for {
		answer, err := p.ask(hint + ": ")
		if err != nil {
			return nil, err
		}
		g, err := metric.NewGuide(t, strings.Fields(answer)...)
		if err == nil {
			return g, nil
		}
		fmt.Fprintln(p.out, styles.ErrorText.Render(err.Error()))
	}
}

// Choose lists the candidates by number, with v keeping the typed name.
func (p *LinePrompter) Choose(name string, candidates []string) (string, bool, error) {
	if len(candidates) == 0 {
		return name, true, nil
	}
	fmt.Fprintf(p.out, "%q is not a recognised metric. Did you mean:\n", name)
	for i, c := range candidates {
		fmt.Fprintf(p.out, "  (%d) %s\n", i+1, c)
	}
	fmt.Fprintf(p.out, "  (v) keep %q as a new metric\n", name)

	for {
		answer, err := p.ask(" -> ")
		if err != nil {
			return "", false, err
		}
		if strings.EqualFold(answer, "v") {
			return name, true, nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(candidates) {
			return candidates[n-1], false, nil
		}
		fmt.Fprintf(p.out, "%s\n", styles.ErrorText.Render(fmt.Sprintf("Please enter a number from 1 to %d, or v.", len(candidates))))
	}
}

// ChooseMode lists the modes; an empty answer keeps current.
func (p *LinePrompter) ChooseMode(current entry.Mode) (entry.Mode, error) {
	for i, m := range entry.Modes {
		fmt.Fprintf(p.out, "  (%d) %-9s %s\n", i+1, m, styles.MutedText.Render(m.Description()))
	}
	for {
		answer, err := p.ask(fmt.Sprintf("Handler mode [%s]: ", current))
		if err != nil {
			return current, err
		}
		if answer == "" {
			return current, nil
		}
		m, err := entry.ParseMode(answer)
		if err == nil {
			return m, nil
		}
		fmt.Fprintln(p.out, styles.ErrorText.Render(err.Error()))
	}
}

// Confirm accepts y/yes or n/no.
func (p *LinePrompter) Confirm(title string) (bool, error) {
	for {
		answer, err := p.ask(title + " [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// Ask reads one non-empty line.
func (p *LinePrompter) Ask(title string) (string, error) {
	for {
		answer, err := p.ask(title + ": ")
		if err != nil || answer != "" {
			return answer, err
		}
	}
}

func letterFor(t metric.Type) string {
	for l, mt := range guideLetters {
		if mt == t {
			return l
		}
	}
	return "?"
}
