package metricstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nathanbeddoewebdev/vitals/internal/metric"
)

// FileVersion is the document format version written by this build.
const FileVersion = 9

// dateLayout matches the ISO-8601 form dates have always been stored in.
const dateLayout = "2006-01-02T15:04:05"

var readLayouts = []string{
	dateLayout,
	"2006-01-02T15:04:05.999999",
	time.RFC3339Nano,
	"2006-01-02",
}

// document is the typed view of a metric file used for reading.
type document struct {
	MetricName  string          `json:"metric_name"`
	FileVersion int             `json:"file_version"`
	MetricType  string          `json:"metric_type"`
	MetricGuide json.RawMessage `json:"metric_guide,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Data        []entry         `json:"data"`
}

type entry struct {
	Date  string       `json:"date"`
	Value metric.Value `json:"value"`
	Unit  string       `json:"unit,omitempty"`
}

// newDocument builds the document for a freshly created metric.
func newDocument(m *metric.HealthMetric) document {
	doc := document{
		MetricName:  m.Name,
		FileVersion: FileVersion,
		MetricType:  string(m.Type()),
		Unit:        m.Unit,
		Data:        []entry{},
	}
	if params := m.Guide.Params(); params != nil {
		doc.MetricGuide, _ = json.Marshal(params)
	} else {
		doc.MetricGuide, _ = json.Marshal(m.Guide.Descriptor())
	}
	return doc
}

func newEntry(m metric.Measurement, fileUnit string) entry {
	unit := m.Unit
	if unit == "" {
		unit = fileUnit
	}
	return entry{
		Date:  m.Date.Format(dateLayout),
		Value: m.Value,
		Unit:  unit,
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// header holds the two keys every document version carries.
type header struct {
	MetricName  *string `json:"metric_name"`
	FileVersion *int    `json:"file_version"`
}

func decodeHeader(data []byte) (header, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if h.MetricName == nil {
		return h, fmt.Errorf("%w: missing required key metric_name", ErrMalformed)
	}
	if h.FileVersion == nil {
		return h, fmt.Errorf("%w: missing required key file_version", ErrMalformed)
	}
	return h, nil
}

// rawDocument is the untyped view used for in-place edits so fields this
// build does not know about survive a rewrite.
type rawDocument map[string]json.RawMessage

func decodeRaw(data []byte) (rawDocument, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformed)
	}
	return doc, nil
}

func (d rawDocument) unit() string {
	var unit string
	if raw, ok := d["unit"]; ok {
		_ = json.Unmarshal(raw, &unit)
	}
	return unit
}

func (d rawDocument) entries() ([]map[string]json.RawMessage, error) {
	raw, ok := d["data"]
	if !ok {
		return nil, nil
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrMalformed, err)
	}
	return entries, nil
}

func (d rawDocument) set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	d[key] = raw
	return nil
}

func encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ParseError reports a document that exists but could not be turned into a
// metric. Stale is set when the document's version is behind FileVersion, in
// which case the version gap is the likely cause.
type ParseError struct {
	Name    string
	Version int
	Stale   bool
	Err     error
}

func (e *ParseError) Error() string {
	if e.Stale {
		return fmt.Sprintf("metricstore: unable to parse %q, likely because the file is outdated (file version %d, current %d): %v",
			e.Name, e.Version, FileVersion, e.Err)
	}
	return fmt.Sprintf("metricstore: unable to parse %q (file is up to date): %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Stale {
		return []error{ErrStaleFormat, e.Err}
	}
	return []error{e.Err}
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no document exists for the requested metric.
	ErrNotFound = errors.New("metric not found")

	// ErrExists indicates a document with the requested name is already stored.
	ErrExists = errors.New("metric already exists")

	// ErrMalformed indicates a document that is not valid metric JSON.
	ErrMalformed = errors.New("malformed metric document")

	// ErrStaleFormat indicates a document written by an older file version.
	ErrStaleFormat = errors.New("outdated metric document")
)
