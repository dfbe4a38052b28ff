// Package entry turns raw data-entry lines into stored measurements.
//
// A line has the form "<name> <value> <date> [unit]". Any of the first three
// fields (and the unit) may be "*" to repeat the value used on the previous
// line of the same session.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/vitals/internal/metric"
)

// DateLayout is the external date format, DDMMYYYY.
const DateLayout = "02012006"

// Wildcard repeats the previous line's value for a field.
const Wildcard = "*"

// ErrMalformedInput is the parent of every line parsing error.
var ErrMalformedInput = errors.New("entry: malformed input")

var (
	// ErrMalformedArity means the line did not have 3 or 4 fields.
	ErrMalformedArity = fmt.Errorf("%w: expected \"<name> <value> <DDMMYYYY> [unit]\"", ErrMalformedInput)

	// ErrBadDate means the date field is not DDMMYYYY.
	ErrBadDate = fmt.Errorf("%w: date must be DDMMYYYY", ErrMalformedInput)

	// ErrBadValue means the value field could not be parsed.
	ErrBadValue = fmt.Errorf("%w: bad value", ErrMalformedInput)

	// ErrNoPrevious means a wildcard was used before any line set that field.
	ErrNoPrevious = fmt.Errorf("%w: nothing to repeat yet", ErrMalformedInput)
)

// Line is one parsed entry with wildcards resolved.
type Line struct {
	Name  string
	Value metric.Value
	Date  time.Time
	Unit  string
}

// Session remembers the last fields used so wildcards can repeat them. Each
// data-entry session owns its own Session.
type Session struct {
	lastName  string
	lastValue metric.Value
	lastDate  time.Time
	lastUnit  string
	hasLine   bool
}

// Parse resolves raw into a Line. All wildcards on a line read the state left
// by the previous successful line. State is only updated when the whole line
// parses.
func (s *Session) Parse(raw string) (Line, error) {
	fields := strings.Fields(raw)
	if len(fields) != 3 && len(fields) != 4 {
		return Line{}, fmt.Errorf("%w (got %d fields)", ErrMalformedArity, len(fields))
	}

	var line Line

	if fields[0] == Wildcard {
		if !s.hasLine {
			return Line{}, fmt.Errorf("%w: name", ErrNoPrevious)
		}
		line.Name = s.lastName
	} else {
		line.Name = strings.ToLower(fields[0])
	}

	if fields[1] == Wildcard {
		if !s.hasLine {
			return Line{}, fmt.Errorf("%w: value", ErrNoPrevious)
		}
		line.Value = s.lastValue
	} else {
		v, err := metric.ParseValue(fields[1])
		if err != nil {
			return Line{}, fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		line.Value = v
	}

	if fields[2] == Wildcard {
		// Before any line this is the zero time, 0001-01-01.
		line.Date = s.lastDate
	} else {
		d, err := time.Parse(DateLayout, fields[2])
		if err != nil {
			return Line{}, fmt.Errorf("%w: %q", ErrBadDate, fields[2])
		}
		line.Date = d
	}

	if len(fields) == 4 {
		line.Unit = fields[3]
		if line.Unit == Wildcard {
			line.Unit = s.lastUnit
		}
	}

	s.lastName = line.Name
	s.lastValue = line.Value
	s.lastDate = line.Date
	s.lastUnit = line.Unit
	s.hasLine = true
	return line, nil
}

// IsVerbatim reports whether name carries the verbatim marker, either
// surrounding double quotes or a trailing "*", and returns it stripped.
func IsVerbatim(name string) (string, bool) {
	if len(name) >= 2 && strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		return name[1 : len(name)-1], true
	}
	if len(name) > 1 && strings.HasSuffix(name, Wildcard) {
		return name[:len(name)-1], true
	}
	return name, false
}
