package entry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for unrecognised input.
var ErrUnknownMode = errors.New("entry: unknown handler mode")

// Mode selects how a handler treats metric names it does not recognise.
type Mode int

const (
	// Manual treats every unknown name as a new metric.
	Manual Mode = iota + 1
	// Assisted offers close matches and lets the user pick.
	Assisted
	// Speedy replaces unknown names with the closest match.
	Speedy
)

// Modes lists the modes in menu order.
var Modes = []Mode{Manual, Assisted, Speedy}

func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	case Assisted:
		return "assisted"
	case Speedy:
		return "speedy"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Description is the one-line summary shown when choosing a mode.
func (m Mode) Description() string {
	switch m {
	case Manual:
		return "Unrecognised metric names are treated as new metrics"
	case Assisted:
		return "Close matches are suggested for unrecognised metric names"
	case Speedy:
		return "Unrecognised metric names are replaced with the closest match"
	default:
		return ""
	}
}

// ParseMode accepts a mode name or its menu number (1, 2 or 3).
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, m := range Modes {
		if normalized == m.String() || normalized == fmt.Sprint(i+1) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want manual, assisted or speedy)", ErrUnknownMode, s)
}
