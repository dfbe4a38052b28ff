// Package metric defines health metrics, their measurements, and the guides
// that decide whether a measurement is out of range.
package metric

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadInequality is returned when a value contains '<' or '>' but is not of
// the form "<N" or ">N".
var ErrBadInequality = errors.New("metric: malformed inequality value")

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindBoolean
	KindText
	KindInequality
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindText:
		return "text"
	case KindInequality:
		return "inequality"
	default:
		return "empty"
	}
}

// Direction is the side of the bound an inequality value sits on.
type Direction string

const (
	DirectionGreater Direction = "greater_than"
	DirectionLess    Direction = "less_than"
)

// Value is a single recorded value. The zero Value is empty.
type Value struct {
	kind      Kind
	number    float64
	boolean   bool
	text      string
	direction Direction
}

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, number: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Text returns an opaque string value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Inequality returns a one-sided bound value such as "<120".
func Inequality(bound float64, dir Direction) Value {
	return Value{kind: KindInequality, number: bound, direction: dir}
}

func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v holds no value.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Float returns the numeric content of v. Inequality values report their bound.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber, KindInequality:
		return v.number, true
	default:
		return 0, false
	}
}

// Bool returns the boolean content of v.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.boolean, true
}

// Direction returns the inequality direction, or "" for other kinds.
func (v Value) Direction() Direction {
	if v.kind != KindInequality {
		return ""
	}
	return v.direction
}

// String renders v in the form it is typed and stored in.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatFloat(v.number)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	case KindText:
		return v.text
	case KindInequality:
		op := "<"
		if v.direction == DirectionGreater {
			op = ">"
		}
		return op + formatFloat(v.number)
	default:
		return ""
	}
}

// MarshalJSON writes numbers and booleans as JSON literals and everything
// else, inequalities included, as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.number)
	case KindBoolean:
		return json.Marshal(v.boolean)
	case KindEmpty:
		return []byte("null"), nil
	default:
		return json.Marshal(v.String())
	}
}

// UnmarshalJSON accepts a JSON number, boolean, string or null. Strings that
// look like inequalities are decoded as inequality values.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Value{}
	case float64:
		*v = Number(t)
	case bool:
		*v = Bool(t)
	case string:
		if IsInequality(t) {
			iv, err := parseInequality(t)
			if err != nil {
				return err
			}
			*v = iv
			return nil
		}
		*v = Text(t)
	default:
		return fmt.Errorf("metric: unsupported value %s", string(data))
	}
	return nil
}

// IsInequality reports whether raw looks like an inequality value.
func IsInequality(raw string) bool {
	return strings.ContainsAny(raw, "<>")
}

// ParseValue interprets raw user input. Booleans are recognised first, then
// inequalities, then numbers; anything else is kept as text.
func ParseValue(raw string) (Value, error) {
	switch strings.ToLower(raw) {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if IsInequality(raw) {
		return parseInequality(raw)
	}
	if f, ok := parseFinite(raw); ok {
		return Number(f), nil
	}
	return Text(raw), nil
}

// parseFinite parses s as a float, rejecting NaN and infinities, which
// strconv accepts but JSON cannot store.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseInequality(raw string) (Value, error) {
	if len(raw) < 2 {
		return Value{}, fmt.Errorf("%w: %q", ErrBadInequality, raw)
	}
	var dir Direction
	switch raw[0] {
	case '<':
		dir = DirectionLess
	case '>':
		dir = DirectionGreater
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrBadInequality, raw)
	}
	bound, ok := parseFinite(raw[1:])
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrBadInequality, raw)
	}
	return Inequality(bound, dir), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
