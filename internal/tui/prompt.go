// Package tui holds the interactive parts of vitals: the prompters that ask
// for guides, suggestions and modes, plus a spinner for slow loads.
package tui

import (
	"errors"
	"io"
	"os"

	"nathanbeddoewebdev/vitals/internal/entry"
	"nathanbeddoewebdev/vitals/internal/metric"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("cancelled by user")

// Prompter asks the user everything data entry and management can need.
type Prompter interface {
	entry.GuidePrompter
	entry.Chooser
	ChooseMode(current entry.Mode) (entry.Mode, error)
	Confirm(title string) (bool, error)
	Ask(title string) (string, error)
}

// NewPrompter returns huh forms when in is a terminal and line prompts on
// lines otherwise.
func NewPrompter(in io.Reader, lines *LinePrompter) Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewFormPrompter(os.Getenv("ACCESSIBLE") != "")
	}
	return lines
}

// boundsHint describes the values a guide type needs, or "" for none.
func boundsHint(t metric.Type) string {
	switch t {
	case metric.TypeRanged:
		return "Lower and upper bound, e.g. 60 100"
	case metric.TypeGreaterThan:
		return "Minimum value, e.g. 8000"
	case metric.TypeLessThan:
		return "Maximum value, e.g. 120"
	case metric.TypeBoolean:
		return "Ideal value, true or false"
	default:
		return ""
	}
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
