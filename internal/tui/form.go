package tui

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/vitals/internal/entry"
	"nathanbeddoewebdev/vitals/internal/metric"

	"github.com/charmbracelet/huh"
)

// keepTyped is the select value for keeping the typed name. Metric names are
// never empty, so it cannot collide with a candidate.
const keepTyped = ""

// FormPrompter prompts with huh forms.
type FormPrompter struct {
	accessible bool
}

// NewFormPrompter returns a form prompter. Accessible mode swaps the
// interactive widgets for plain numbered prompts.
func NewFormPrompter(accessible bool) *FormPrompter {
	return &FormPrompter{accessible: accessible}
}

// PromptGuide asks for a guide type and then for its bounds.
func (p *FormPrompter) PromptGuide(name string) (metric.Guide, error) {
	t := metric.TypeFree
	options := make([]huh.Option[metric.Type], 0, len(metric.Types))
	for _, mt := range metric.Types {
		options = append(options, huh.NewOption(fmt.Sprintf("%-13s %s", mt, mt.Description()), mt))
	}

	typeField := huh.NewSelect[metric.Type]().
		Title(fmt.Sprintf("How should %q be judged?", name)).
		Options(options...).
		Value(&t).
		Height(selectHeight(len(options), 8))
	if err := runForm(p.accessible, huh.NewGroup(typeField)); err != nil {
		return nil, err
	}

	hint := boundsHint(t)
	if hint == "" {
		return metric.FreeGuide{}, nil
	}

	var raw string
	var guide metric.Guide
	boundsField := huh.NewInput().
		Title(fmt.Sprintf("%s guide for %q", t, name)).
		Description(hint).
		Value(&raw).
		Validate(func(value string) error {
			g, err := metric.NewGuide(t, strings.Fields(value)...)
			if err != nil {
				return err
			}
			guide = g
			return nil
		})
	if err := runForm(p.accessible, huh.NewGroup(boundsField)); err != nil {
		return nil, err
	}
	if guide == nil {
		return metric.NewGuide(t, strings.Fields(raw)...)
	}
	return guide, nil
}

// Choose offers the candidates plus an option to keep the typed name.
func (p *FormPrompter) Choose(name string, candidates []string) (string, bool, error) {
	if len(candidates) == 0 {
		return name, true, nil
	}

	choice := candidates[0]
	options := make([]huh.Option[string], 0, len(candidates)+1)
	for _, c := range candidates {
		options = append(options, huh.NewOption(c, c))
	}
	options = append(options, huh.NewOption(fmt.Sprintf("Keep %q as a new metric", name), keepTyped))

	field := huh.NewSelect[string]().
		Title(fmt.Sprintf("%q is not a recognised metric. Did you mean:", name)).
		Options(options...).
		Value(&choice).
		Height(selectHeight(len(options), 10))
	if err := runForm(p.accessible, huh.NewGroup(field)); err != nil {
		return "", false, err
	}

	if choice == keepTyped {
		return name, true, nil
	}
	return choice, false, nil
}

// ChooseMode asks which handler mode to use, preselecting current.
func (p *FormPrompter) ChooseMode(current entry.Mode) (entry.Mode, error) {
	mode := current
	options := make([]huh.Option[entry.Mode], 0, len(entry.Modes))
	for _, m := range entry.Modes {
		options = append(options, huh.NewOption(fmt.Sprintf("%-9s %s", m, m.Description()), m))
	}
	field := huh.NewSelect[entry.Mode]().
		Title("Handler mode").
		Options(options...).
		Value(&mode)
	if err := runForm(p.accessible, huh.NewGroup(field)); err != nil {
		return current, err
	}
	return mode, nil
}

// Confirm asks a yes/no question.
func (p *FormPrompter) Confirm(title string) (bool, error) {
	var ok bool
	if err := runForm(p.accessible, huh.NewGroup(huh.NewConfirm().Title(title).Value(&ok))); err != nil {
		return false, err
	}
	return ok, nil
}

// Ask reads one non-empty line of text.
func (p *FormPrompter) Ask(title string) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a value is required")
			}
			return nil
		})
	if err := runForm(p.accessible, huh.NewGroup(field)); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}
