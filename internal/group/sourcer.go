package group

import (
	"fmt"

	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/similarity"
	"nathanbeddoewebdev/vitals/internal/util"

	"go.uber.org/zap"
)

// MetricReader is the slice of the metric store the sourcer needs.
type MetricReader interface {
	Read(name string) (*metric.HealthMetric, error)
	Names() ([]string, error)
}

// Sourcer resolves user-typed names to metrics. Metrics and groups share one
// namespace: a stored metric is tried first, then a registered group, then
// the closest stored metric name.
type Sourcer struct {
	reader  MetricReader
	manager *Manager
	log     *zap.SugaredLogger
}

// NewSourcer returns a sourcer over reader and manager. A nil manager means
// no groups are consulted.
func NewSourcer(reader MetricReader, manager *Manager, log *zap.SugaredLogger) *Sourcer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Sourcer{reader: reader, manager: manager, log: log}
}

// Source resolves name to a group. A single metric comes back wrapped in a
// new group carrying the metric's unit; a registered group is returned as is.
func (s *Sourcer) Source(name string) (*MetricGroup, error) {
	key := util.NormalizeKey(name)

	if m, err := s.reader.Read(key); err == nil {
		return s.wrap(m), nil
	}

	if s.manager != nil {
		if g, err := s.manager.Get(name); err == nil {
			return g, nil
		}
		if g, err := s.manager.Get(key); err == nil {
			return g, nil
		}
	}

	names, err := s.reader.Names()
	if err != nil {
		return nil, err
	}
	closest, err := similarity.ClosestMatch(key, names)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	m, err := s.reader.Read(closest)
	if err != nil {
		s.log.Warnw("closest metric could not be read", "input", name, "match", closest, "error", err)
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	s.log.Infow("matched name to closest metric", "input", name, "match", closest)
	return s.wrap(m), nil
}

// SourceAll resolves every name and merges the results into one group named
// name. Names that cannot be resolved are logged and skipped; ErrNotFound is
// returned only when nothing resolved.
func (s *Sourcer) SourceAll(name string, inputs []string) (*MetricGroup, error) {
	out := New(name, "", s.log)
	for _, in := range inputs {
		g, err := s.Source(in)
		if err != nil {
			s.log.Warnw("unable to source metric", "input", in, "error", err)
			continue
		}
		out.AddAll(g.Metrics())
	}
	if out.Count() == 0 {
		return nil, fmt.Errorf("%w: none of %q", ErrNotFound, inputs)
	}
	return out, nil
}

func (s *Sourcer) wrap(m *metric.HealthMetric) *MetricGroup {
	g := New(m.Name, m.Unit, s.log)
	g.Add(m)
	return g
}
