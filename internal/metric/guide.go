package metric

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownType is returned when a metric type string is not recognised.
var ErrUnknownType = errors.New("metric: unknown metric type")

// Type is the persisted name of a guide variant.
type Type string

const (
	TypeRanged      Type = "ranged"
	TypeGreaterThan Type = "greater_than"
	TypeLessThan    Type = "less_than"
	TypeBoolean     Type = "boolean"
	TypeFree        Type = "metric"
)

// Types lists every guide variant in the order they are offered to users.
var Types = []Type{TypeRanged, TypeGreaterThan, TypeLessThan, TypeBoolean, TypeFree}

// ParseType converts a persisted or user-typed type name into a Type.
func ParseType(s string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Types {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Description is a one-line explanation of the variant shown when creating a metric.
func (t Type) Description() string {
	switch t {
	case TypeRanged:
		return "Measurements should fall between two values (e.g. x < m < y)"
	case TypeGreaterThan:
		return "Measurements should be at least some value (e.g. m >= x)"
	case TypeLessThan:
		return "Measurements should be at most some value (e.g. m <= x)"
	case TypeBoolean:
		return "Measurements should be of a certain truth value (e.g. m is true)"
	default:
		return "Measurements have no ideal value (e.g. age)"
	}
}

// Guide is the validity rule attached to a metric. The set of implementations
// is closed: RangedGuide, GreaterThanGuide, LessThanGuide, BooleanGuide and FreeGuide.
type Guide interface {
	Type() Type
	// OutOfRange reports whether m violates the guide.
	OutOfRange(m Measurement) bool
	// Descriptor is a short human-readable form of the rule.
	Descriptor() string
	// Params is the JSON shape stored under "metric_guide".
	Params() any

	sealed()
}

// RangedGuide accepts values strictly between Min and Max.
type RangedGuide struct {
	Min float64
	Max float64
}

func (RangedGuide) Type() Type { return TypeRanged }

func (g RangedGuide) OutOfRange(m Measurement) bool {
	v, ok := m.Value.Float()
	if !ok {
		return true
	}
	return !(g.Min < v && v < g.Max)
}

func (g RangedGuide) Descriptor() string {
	return fmt.Sprintf("%s < m < %s", formatFloat(g.Min), formatFloat(g.Max))
}

func (g RangedGuide) Params() any { return []float64{g.Min, g.Max} }
func (RangedGuide) sealed()       {}

// GreaterThanGuide accepts values at or above Min.
type GreaterThanGuide struct {
	Min float64
}

func (GreaterThanGuide) Type() Type { return TypeGreaterThan }

func (g GreaterThanGuide) OutOfRange(m Measurement) bool {
	v, ok := m.Value.Float()
	if !ok {
		return true
	}
	return v < g.Min
}

func (g GreaterThanGuide) Descriptor() string { return "m >= " + formatFloat(g.Min) }
func (g GreaterThanGuide) Params() any        { return g.Min }
func (GreaterThanGuide) sealed()              {}

// LessThanGuide accepts values at or below Max.
type LessThanGuide struct {
	Max float64
}

func (LessThanGuide) Type() Type { return TypeLessThan }

func (g LessThanGuide) OutOfRange(m Measurement) bool {
	v, ok := m.Value.Float()
	if !ok {
		return true
	}
	return v > g.Max
}

func (g LessThanGuide) Descriptor() string { return "m <= " + formatFloat(g.Max) }
func (g LessThanGuide) Params() any        { return g.Max }
func (LessThanGuide) sealed()              {}

// BooleanGuide accepts values equal to Ideal.
type BooleanGuide struct {
	Ideal bool
}

func (BooleanGuide) Type() Type { return TypeBoolean }

// OutOfRange never flags inequality measurements; any other value that is not
// exactly Ideal is out of range.
func (g BooleanGuide) OutOfRange(m Measurement) bool {
	if m.IsInequality() {
		return false
	}
	b, ok := m.Value.Bool()
	return !ok || b != g.Ideal
}

func (g BooleanGuide) Descriptor() string { return fmt.Sprintf("m is %t", g.Ideal) }
func (g BooleanGuide) Params() any        { return g.Ideal }
func (BooleanGuide) sealed()              {}

// FreeGuide has no notion of out-of-range.
type FreeGuide struct{}

func (FreeGuide) Type() Type                  { return TypeFree }
func (FreeGuide) OutOfRange(Measurement) bool { return false }
func (FreeGuide) Descriptor() string          { return "Generic Metric" }
func (FreeGuide) Params() any                 { return nil }
func (FreeGuide) sealed()                     {}

// ParseGuide builds a Guide from a persisted type and its "metric_guide" payload.
func ParseGuide(t Type, raw json.RawMessage) (Guide, error) {
	switch t {
	case TypeRanged:
		var bounds []float64
		if err := json.Unmarshal(raw, &bounds); err != nil {
			return nil, fmt.Errorf("metric: ranged guide: %w", err)
		}
		if len(bounds) != 2 {
			return nil, fmt.Errorf("metric: ranged guide needs 2 bounds, got %d", len(bounds))
		}
		return RangedGuide{Min: bounds[0], Max: bounds[1]}, nil
	case TypeGreaterThan, TypeLessThan:
		var bound float64
		if err := json.Unmarshal(raw, &bound); err != nil {
			return nil, fmt.Errorf("metric: %s guide: %w", t, err)
		}
		if t == TypeGreaterThan {
			return GreaterThanGuide{Min: bound}, nil
		}
		return LessThanGuide{Max: bound}, nil
	case TypeBoolean:
		var ideal bool
		if err := json.Unmarshal(raw, &ideal); err != nil {
			return nil, fmt.Errorf("metric: boolean guide: %w", err)
		}
		return BooleanGuide{Ideal: ideal}, nil
	case TypeFree:
		return FreeGuide{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
}

// Bounds returns the numeric bounds of g, for drawing guide lines on charts.
func Bounds(g Guide) []float64 {
	switch g := g.(type) {
	case RangedGuide:
		return []float64{g.Min, g.Max}
	case GreaterThanGuide:
		return []float64{g.Min}
	case LessThanGuide:
		return []float64{g.Max}
	default:
		return nil
	}
}

// NewGuide builds a guide of type t from user-supplied bounds. Ranged guides
// take two numbers, greater_than and less_than one, boolean one of
// "true"/"false" and metric none.
func NewGuide(t Type, params ...string) (Guide, error) {
	want := map[Type]int{TypeRanged: 2, TypeGreaterThan: 1, TypeLessThan: 1, TypeBoolean: 1, TypeFree: 0}
	n, ok := want[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	if len(params) != n {
		return nil, fmt.Errorf("metric: %s guide takes %d value(s), got %d", t, n, len(params))
	}

	if t == TypeBoolean {
		switch strings.ToLower(strings.TrimSpace(params[0])) {
		case "true":
			return BooleanGuide{Ideal: true}, nil
		case "false":
			return BooleanGuide{Ideal: false}, nil
		default:
			return nil, fmt.Errorf("metric: boolean guide needs true or false, got %q", params[0])
		}
	}

	bounds := make([]float64, n)
	for i, p := range params {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("metric: %s guide bound %q is not a number", t, p)
		}
		bounds[i] = f
	}

	switch t {
	case TypeRanged:
		if bounds[0] >= bounds[1] {
			return nil, fmt.Errorf("metric: ranged guide needs lower < upper, got %v and %v", bounds[0], bounds[1])
		}
		return RangedGuide{Min: bounds[0], Max: bounds[1]}, nil
	case TypeGreaterThan:
		return GreaterThanGuide{Min: bounds[0]}, nil
	case TypeLessThan:
		return LessThanGuide{Max: bounds[0]}, nil
	default:
		return FreeGuide{}, nil
	}
}
