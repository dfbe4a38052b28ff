package tui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// RunWithSpinner runs action behind a spinner on stderr. When stderr is not a
// terminal the action runs without one.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return action(ctx)
	}

	err := spinner.New().
		Title(title).
		Context(ctx).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(os.Stderr).
		ActionWithErr(action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	return err
}
