// Package metricstore persists each health metric as its own JSON document.
//
// A metric exists if and only if its document exists; there is no separate
// index. Documents carry a file_version so older files can be recognised and
// still read on a best-effort basis.
package metricstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/util"

	"go.uber.org/zap"
)

// Store reads and writes metric documents through a Backend.
type Store struct {
	backend Backend
	log     *zap.SugaredLogger
}

// New returns a store over backend. A nil logger disables logging.
func New(backend Backend, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{backend: backend, log: log}
}

// Open returns a store over a DirBackend rooted at dir.
func Open(dir string, log *zap.SugaredLogger) (*Store, error) {
	backend, err := NewDirBackend(dir)
	if err != nil {
		return nil, err
	}
	return New(backend, log), nil
}

// Summary describes a stored metric without its entries.
type Summary struct {
	Name        string
	Type        metric.Type
	Descriptor  string
	Unit        string
	Entries     int
	FileVersion int
	Outdated    bool
}

// Exists reports whether a document for name is stored.
func (s *Store) Exists(name string) (bool, error) {
	return s.backend.Exists(util.NormalizeKey(name))
}

// Names returns the sorted names of every stored metric.
func (s *Store) Names() ([]string, error) {
	return s.backend.List()
}

// Create writes a new, empty document for m. It fails with ErrExists rather
// than overwrite an existing metric.
func (s *Store) Create(m *metric.HealthMetric) error {
	m.Name = util.NormalizeKey(m.Name)
	if err := util.ValidateMetricName(m.Name); err != nil {
		return fmt.Errorf("metricstore: %w", err)
	}
	if m.Guide == nil {
		m.Guide = metric.FreeGuide{}
	}

	exists, err := s.backend.Exists(m.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrExists, m.Name)
	}

	data, err := encode(newDocument(m))
	if err != nil {
		return fmt.Errorf("metricstore: failed to encode %q: %w", m.Name, err)
	}
	if err := s.backend.Save(m.Name, data); err != nil {
		s.log.Errorw("failed to write metric file", "metric", m.Name, "error", err)
		return err
	}

	s.log.Infow("created metric file", "action", "create", "metric", m.Name, "type", m.Type())
	return nil
}

// Append adds a measurement to an existing metric. It never creates the
// metric: a missing document yields ErrNotFound.
func (s *Store) Append(name string, m metric.Measurement) error {
	name = util.NormalizeKey(name)
	if m.Value.IsEmpty() {
		return fmt.Errorf("metricstore: refusing to append empty value to %q", name)
	}

	data, err := s.backend.Load(name)
	if err != nil {
		return err
	}
	doc, err := decodeRaw(data)
	if err != nil {
		s.log.Errorw("failed to parse metric file", "metric", name, "error", err)
		return fmt.Errorf("metricstore: %q: %w", name, err)
	}
	entries, err := doc.entries()
	if err != nil {
		return fmt.Errorf("metricstore: %q: %w", name, err)
	}

	raw, err := json.Marshal(newEntry(m, doc.unit()))
	if err != nil {
		return fmt.Errorf("metricstore: failed to encode measurement: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("metricstore: failed to encode measurement: %w", err)
	}
	entries = append(entries, fields)
	if err := doc.set("data", entries); err != nil {
		return fmt.Errorf("metricstore: failed to encode %q: %w", name, err)
	}

	if err := s.write(name, doc); err != nil {
		return err
	}
	s.log.Infow("added measurement", "action", "append", "metric", name, "value", m.Value.String())
	return nil
}

// Read loads a metric. Outdated documents are logged and parsed anyway;
// entries without a date are skipped. Any other structural problem yields a
// *ParseError.
func (s *Store) Read(name string) (*metric.HealthMetric, error) {
	m, _, err := s.read(util.NormalizeKey(name))
	return m, err
}

func (s *Store) read(name string) (*metric.HealthMetric, int, error) {
	data, err := s.backend.Load(name)
	if err != nil {
		return nil, 0, err
	}

	h, err := decodeHeader(data)
	if err != nil {
		s.log.Warnw("metric file is malformed", "metric", name, "error", err)
		return nil, 0, &ParseError{Name: name, Err: err}
	}

	version := *h.FileVersion
	stale := version < FileVersion
	if stale {
		s.log.Warnw("metric file is outdated",
			"metric", name, "file_version", version, "current_version", FileVersion, "behind", FileVersion-version)
	}

	m, err := s.decode(data)
	if err != nil {
		perr := &ParseError{Name: name, Version: version, Stale: stale, Err: err}
		s.log.Warnw("unable to parse metric file", "metric", name, "stale", stale, "error", err)
		return nil, version, perr
	}
	return m, version, nil
}

func (s *Store) decode(data []byte) (*metric.HealthMetric, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	t, err := metric.ParseType(doc.MetricType)
	if err != nil {
		return nil, err
	}
	guide, err := metric.ParseGuide(t, doc.MetricGuide)
	if err != nil {
		return nil, err
	}

	m := metric.New(doc.MetricName, guide, doc.Unit)
	for i, e := range doc.Data {
		if strings.TrimSpace(e.Date) == "" {
			s.log.Warnw("skipping entry without date", "metric", m.Name, "entry", i)
			continue
		}
		date, err := parseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if e.Value.IsEmpty() {
			return nil, fmt.Errorf("entry %d: missing value", i)
		}
		unit := e.Unit
		if unit == "" {
			unit = doc.Unit
		}
		m.Add(metric.Measurement{Value: e.Value, Date: date, Unit: unit})
	}
	return m, nil
}

// ReadAll loads every readable metric. Documents that fail to load are
// logged and skipped.
func (s *Store) ReadAll() ([]*metric.HealthMetric, error) {
	names, err := s.backend.List()
	if err != nil {
		return nil, err
	}
	metrics := make([]*metric.HealthMetric, 0, len(names))
	for _, name := range names {
		m, err := s.Read(name)
		if err != nil {
			s.log.Warnw("skipping unreadable metric", "metric", name, "error", err)
			continue
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

// Describe summarises a stored metric, including its file version.
func (s *Store) Describe(name string) (Summary, error) {
	m, version, err := s.read(util.NormalizeKey(name))
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Name:        m.Name,
		Type:        m.Type(),
		Descriptor:  m.Descriptor(),
		Unit:        m.Unit,
		Entries:     m.Count(),
		FileVersion: version,
		Outdated:    version < FileVersion,
	}, nil
}

// Rename moves a metric to a new name in two steps: the document is renamed,
// then its embedded metric_name is rewritten. The steps are not atomic; if the
// second fails the document keeps its new name and the error says so.
func (s *Store) Rename(oldName, newName string) error {
	oldName = util.NormalizeKey(oldName)
	newName = util.NormalizeKey(newName)
	if err := util.ValidateMetricName(newName); err != nil {
		return fmt.Errorf("metricstore: %w", err)
	}
	if oldName == newName {
		return nil
	}

	exists, err := s.backend.Exists(newName)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrExists, newName)
	}

	if err := s.backend.Rename(oldName, newName); err != nil {
		s.log.Warnw("failed to rename metric file", "from", oldName, "to", newName, "error", err)
		return err
	}

	data, err := s.backend.Load(newName)
	if err != nil {
		return fmt.Errorf("metricstore: renamed %q to %q but could not reload it: %w", oldName, newName, err)
	}
	doc, err := decodeRaw(data)
	if err != nil {
		s.log.Warnw("renamed metric file is malformed", "metric", newName, "error", err)
		return fmt.Errorf("metricstore: renamed %q to %q but could not update metric_name: %w", oldName, newName, err)
	}
	if _, ok := doc["metric_name"]; !ok {
		s.log.Warnw("renamed metric file has no metric_name key", "metric", newName)
	}
	if err := doc.set("metric_name", newName); err != nil {
		return fmt.Errorf("metricstore: failed to encode %q: %w", newName, err)
	}
	if err := s.write(newName, doc); err != nil {
		return fmt.Errorf("metricstore: renamed %q to %q but could not update metric_name: %w", oldName, newName, err)
	}

	s.log.Infow("renamed metric", "action", "rename", "from", oldName, "to", newName)
	return nil
}

// UpdateUnits sets the unit of every entry of a metric and returns how many
// entries were changed. With fileLevel the document's default unit is
// updated too.
func (s *Store) UpdateUnits(name, unit string, fileLevel bool) (int, error) {
	name = util.NormalizeKey(name)

	data, err := s.backend.Load(name)
	if err != nil {
		s.log.Warnw("cannot update units", "metric", name, "error", err)
		return 0, err
	}
	doc, err := decodeRaw(data)
	if err != nil {
		return 0, fmt.Errorf("metricstore: %q: %w", name, err)
	}
	entries, err := doc.entries()
	if err != nil {
		return 0, fmt.Errorf("metricstore: %q: %w", name, err)
	}

	unitRaw, err := json.Marshal(unit)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		e["unit"] = unitRaw
	}
	if entries == nil {
		entries = []map[string]json.RawMessage{}
	}
	if err := doc.set("data", entries); err != nil {
		return 0, err
	}
	if fileLevel {
		doc["unit"] = unitRaw
	}

	if err := s.write(name, doc); err != nil {
		return 0, err
	}

	s.log.Infow("updated measurement units",
		"action", "units", "metric", name, "unit", unit, "count", len(entries), "file_level", fileLevel)
	return len(entries), nil
}

func (s *Store) write(name string, doc rawDocument) error {
	data, err := encode(doc)
	if err != nil {
		return fmt.Errorf("metricstore: failed to encode %q: %w", name, err)
	}
	if err := s.backend.Save(name, data); err != nil {
		s.log.Errorw("failed to write metric file", "metric", name, "error", err)
		return err
	}
	return nil
}

// IsNotFound reports whether err means the metric does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
