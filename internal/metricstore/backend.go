package metricstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const docExt = ".json"

// Backend persists raw metric documents keyed by metric name. The store is
// written against this interface so tests can swap the filesystem for memory.
type Backend interface {
	Exists(name string) (bool, error)
	// Load returns ErrNotFound if no document has this name.
	Load(name string) ([]byte, error)
	// Save replaces the whole document.
	Save(name string, data []byte) error
	Rename(oldName, newName string) error
	// List returns the names of every stored document.
	List() ([]string, error)
}

// DirBackend stores one <name>.json file per metric in a directory.
type DirBackend struct {
	dir string
}

// NewDirBackend returns a backend rooted at dir, creating it if needed.
func NewDirBackend(dir string) (*DirBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("metricstore: failed to create directory %s: %w", dir, err)
	}
	return &DirBackend{dir: dir}, nil
}

// Dir returns the backing directory.
func (b *DirBackend) Dir() string { return b.dir }

func (b *DirBackend) path(name string) string {
	return filepath.Join(b.dir, name+docExt)
}

func (b *DirBackend) Exists(name string) (bool, error) {
	_, err := os.Stat(b.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("metricstore: stat %s: %w", name, err)
}

func (b *DirBackend) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(b.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("metricstore: failed to read %s: %w", b.path(name), err)
	}
	return data, nil
}

// Save writes to a temporary file in the same directory and renames it over
// the target so readers never observe a half-written document.
func (b *DirBackend) Save(name string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("metricstore: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("metricstore: failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("metricstore: failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, b.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("metricstore: failed to write %s: %w", name, err)
	}
	return nil
}

func (b *DirBackend) Rename(oldName, newName string) error {
	err := os.Rename(b.path(oldName), b.path(newName))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %q", ErrNotFound, oldName)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("metricstore: permission denied renaming %q: %w", oldName, err)
	default:
		return fmt.Errorf("metricstore: failed to rename %q: %w", oldName, err)
	}
}

func (b *DirBackend) List() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, fmt.Errorf("metricstore: failed to list %s: %w", b.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if stem, ok := strings.CutSuffix(e.Name(), docExt); ok {
			names = append(names, stem)
		}
	}
	sort.Strings(names)
	return names, nil
}

// MemoryBackend keeps documents in memory.
type MemoryBackend struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (b *MemoryBackend) Exists(name string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.docs[name]
	return ok, nil
}

func (b *MemoryBackend) Load(name string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) Save(name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[name] = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Rename(oldName, newName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.docs[oldName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, oldName)
	}
	delete(b.docs, oldName)
	b.docs[newName] = data
	return nil
}

func (b *MemoryBackend) List() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.docs))
	for name := range b.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
