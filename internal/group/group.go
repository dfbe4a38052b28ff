// Package group holds named collections of metrics and the registry that
// persists them as aliases.
package group

import (
	"sort"

	"nathanbeddoewebdev/vitals/internal/metric"

	"go.uber.org/zap"
)

// MetricGroup is a set of metrics keyed by name. When EnforceUnits is set,
// members must share the group's unit.
type MetricGroup struct {
	Name         string
	Unit         string
	EnforceUnits bool

	metrics map[string]*metric.HealthMetric
	log     *zap.SugaredLogger
}

// New returns an empty group. Unit enforcement is on if and only if unit is
// non-empty.
func New(name, unit string, log *zap.SugaredLogger) *MetricGroup {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &MetricGroup{
		Name:         name,
		Unit:         unit,
		EnforceUnits: unit != "",
		metrics:      make(map[string]*metric.HealthMetric),
		log:          log,
	}
}

// Add inserts m, replacing any member with the same name. It returns false
// and logs a warning when units are enforced and m carries a different unit.
func (g *MetricGroup) Add(m *metric.HealthMetric) bool {
	if g.EnforceUnits && m.Unit != "" && m.Unit != g.Unit {
		g.log.Warnw("metric unit does not match group unit",
			"group", g.Name, "metric", m.Name, "metric_unit", m.Unit, "group_unit", g.Unit)
		return false
	}
	g.metrics[m.Name] = m
	return true
}

// AddAll adds each metric in turn and reports which were accepted.
func (g *MetricGroup) AddAll(ms []*metric.HealthMetric) []bool {
	added := make([]bool, len(ms))
	for i, m := range ms {
		added[i] = g.Add(m)
	}
	return added
}

// Remove drops the named member. It returns false and logs a warning if there
// is no such member.
func (g *MetricGroup) Remove(name string) bool {
	if _, ok := g.metrics[name]; !ok {
		g.log.Warnw("no metric in group", "group", g.Name, "metric", name)
		return false
	}
	delete(g.metrics, name)
	return true
}

// Get returns the named member.
func (g *MetricGroup) Get(name string) (*metric.HealthMetric, bool) {
	m, ok := g.metrics[name]
	return m, ok
}

// Metrics returns the members sorted by name.
func (g *MetricGroup) Metrics() []*metric.HealthMetric {
	out := make([]*metric.HealthMetric, 0, len(g.metrics))
	for _, m := range g.metrics {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the member names in sorted order.
func (g *MetricGroup) Names() []string {
	names := make([]string, 0, len(g.metrics))
	for name := range g.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count is the number of distinct members.
func (g *MetricGroup) Count() int { return len(g.metrics) }

// Combine returns a new group holding the union of g and other. On a name
// collision the member from other wins. An empty name keeps g's name; the
// result has no unit unless inheritUnit is set.
func (g *MetricGroup) Combine(other *MetricGroup, name string, inheritUnit bool) *MetricGroup {
	if name == "" {
		name = g.Name
	}
	unit := ""
	if inheritUnit {
		unit = g.Unit
	}
	out := New(name, unit, g.log)
	out.AddAll(g.Metrics())
	out.AddAll(other.Metrics())
	return out
}
