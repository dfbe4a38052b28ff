package metric

import (
	"fmt"
	"strings"
	"time"
)

// Measurement is one timestamped value of a metric.
type Measurement struct {
	Value Value
	Date  time.Time
	// Unit is optional; empty means the metric's default unit applies.
	Unit string
}

// IsInequality reports whether the measurement records a one-sided bound.
func (m Measurement) IsInequality() bool {
	return m.Value.Kind() == KindInequality
}

func (m Measurement) String() string {
	return m.Value.String()
}

// HealthMetric is a named series of measurements with an optional guide.
type HealthMetric struct {
	Name  string
	Guide Guide
	Unit  string
	// Entries are kept in the order they were recorded, not sorted by date.
	Entries []Measurement
}

// New returns an empty metric. The name is lower-cased and a nil guide is
// treated as FreeGuide.
func New(name string, guide Guide, unit string) *HealthMetric {
	if guide == nil {
		guide = FreeGuide{}
	}
	return &HealthMetric{
		Name:  strings.ToLower(name),
		Guide: guide,
		Unit:  unit,
	}
}

// Type returns the metric's guide variant.
func (h *HealthMetric) Type() Type {
	if h.Guide == nil {
		return TypeFree
	}
	return h.Guide.Type()
}

// Add appends a measurement.
func (h *HealthMetric) Add(m Measurement) {
	h.Entries = append(h.Entries, m)
}

// Count returns the number of recorded measurements.
func (h *HealthMetric) Count() int { return len(h.Entries) }

// OutOfRange returns every measurement that violates the metric's guide.
func (h *HealthMetric) OutOfRange() []Measurement {
	if h.Guide == nil {
		return nil
	}
	var out []Measurement
	for _, m := range h.Entries {
		if h.Guide.OutOfRange(m) {
			out = append(out, m)
		}
	}
	return out
}

// Descriptor returns the guide's descriptor.
func (h *HealthMetric) Descriptor() string {
	if h.Guide == nil {
		return FreeGuide{}.Descriptor()
	}
	return h.Guide.Descriptor()
}

func (h *HealthMetric) String() string {
	return fmt.Sprintf("Metric: %s -> %d entries. (%s)", strings.ToUpper(h.Name), len(h.Entries), h.Type())
}
