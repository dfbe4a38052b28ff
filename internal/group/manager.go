package group

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a name resolves to neither a metric nor a group.
var ErrNotFound = errors.New("group: no metric or group with that name")

// Manager is the registry of named groups for one run. It is created once at
// startup and flushed back to its source file on exit.
type Manager struct {
	groups     map[string]*MetricGroup
	sourceFile string
	log        *zap.SugaredLogger
}

// NewManager returns an empty registry that saves to sourceFile.
func NewManager(sourceFile string, log *zap.SugaredLogger) *Manager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Manager{
		groups:     make(map[string]*MetricGroup),
		sourceFile: sourceFile,
		log:        log,
	}
}

// Register stores g under name, replacing any previous group of that name.
func (m *Manager) Register(name string, g *MetricGroup) {
	if g.Name == "" {
		g.Name = name
	}
	m.groups[name] = g
}

// Remove unregisters name. An absent name is logged and reported as false.
func (m *Manager) Remove(name string) bool {
	if _, ok := m.groups[name]; !ok {
		m.log.Warnw("no group registered with that name", "group", name)
		return false
	}
	delete(m.groups, name)
	return true
}

// Get returns the named group.
func (m *Manager) Get(name string) (*MetricGroup, error) {
	g, ok := m.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return g, nil
}

// IsRegistered reports whether a group named name exists.
func (m *Manager) IsRegistered(name string) bool {
	_, ok := m.groups[name]
	return ok
}

// Names returns the registered group names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.groups))
	for name := range m.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the current member count of the named group.
func (m *Manager) Size(name string) (int, bool) {
	g, ok := m.groups[name]
	if !ok {
		return 0, false
	}
	return g.Count(), true
}

// Len is the number of registered groups.
func (m *Manager) Len() int { return len(m.groups) }

// SourceFile is the alias file this registry was loaded from and saves to.
func (m *Manager) SourceFile() string { return m.sourceFile }
