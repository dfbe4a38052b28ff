package group

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// AliasFile is the name of the alias document inside the memory directory.
const AliasFile = "aliases.json"

type aliasDocument struct {
	RecordCount string                 `json:"record_count"`
	GroupRecord map[string]aliasRecord `json:"group_record"`
}

type aliasRecord struct {
	EnforceUnits bool     `json:"enforce_units"`
	Unit         *string  `json:"unit"`
	Count        int      `json:"count"`
	MetricDict   []string `json:"metric_dict"`
}

// Load reads the alias file at path and rebuilds every group by sourcing its
// member names again. A missing file yields an empty manager. Members that no
// longer resolve are logged and dropped.
//
// A file that exists but cannot be read or parsed yields an empty manager
// with no source file alongside the error, so the file is never saved over.
func Load(path string, reader MetricReader, log *zap.SugaredLogger) (*Manager, error) {
	m := NewManager(path, log)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.log.Infow("no alias file, starting with no groups", "path", path)
			return m, nil
		}
		return NewManager("", log), fmt.Errorf("group: failed to read %s: %w", path, err)
	}

	var doc aliasDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return NewManager("", log), fmt.Errorf("group: failed to parse %s: %w", path, err)
	}

	sourcer := NewSourcer(reader, m, m.log)
	for _, name := range sortedKeys(doc.GroupRecord) {
		rec := doc.GroupRecord[name]
		unit := ""
		if rec.Unit != nil {
			unit = *rec.Unit
		}
		g := New(name, unit, m.log)
		g.EnforceUnits = rec.EnforceUnits

		for _, member := range rec.MetricDict {
			src, err := sourcer.Source(member)
			if err != nil {
				m.log.Warnw("dropping alias member that no longer resolves", "group", name, "metric", member, "error", err)
				continue
			}
			g.AddAll(src.Metrics())
		}
		m.Register(name, g)
	}

	m.log.Infow("loaded groups", "path", path, "groups", m.Len())
	return m, nil
}

// Save writes every registered group to the manager's source file, storing
// member names only.
func (m *Manager) Save() error {
	if m.sourceFile == "" {
		return errors.New("group: manager has no source file")
	}

	doc := aliasDocument{
		RecordCount: strconv.Itoa(len(m.groups)),
		GroupRecord: make(map[string]aliasRecord, len(m.groups)),
	}
	for name, g := range m.groups {
		rec := aliasRecord{
			EnforceUnits: g.EnforceUnits,
			Count:        g.Count(),
			MetricDict:   g.Names(),
		}
		if g.Unit != "" {
			unit := g.Unit
			rec.Unit = &unit
		}
		doc.GroupRecord[name] = rec
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("group: failed to marshal aliases: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(m.sourceFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("group: failed to create directory %s: %w", dir, err)
	}
	if err := writeFile(m.sourceFile, data); err != nil {
		return err
	}

	m.log.Infow("saved groups", "path", m.sourceFile, "groups", len(m.groups))
	return nil
}

func sortedKeys(records map[string]aliasRecord) []string {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// writeFile replaces path through a temp file in the same directory so an
// interrupted save leaves the previous file intact.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("group: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("group: failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("group: failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("group: failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("group: failed to write %s: %w", path, err)
	}
	return nil
}
