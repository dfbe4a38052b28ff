// Package config handles persistent user configuration for vitals.
//
// Configuration is stored as JSON at <base>/config.json, where base is
// $VITALS_HOME if set and otherwise the vitals directory under the
// platform-equivalent path returned by os.UserConfigDir. Metric files, the
// alias file, logs and the history database live under the same base unless
// configured elsewhere.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDir   = "vitals"
	fileName = "config.json"

	// HomeEnv overrides the base directory for all vitals state.
	HomeEnv = "VITALS_HOME"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	MetricDir   string `json:"metric_dir,omitempty"`
	MemoryDir   string `json:"memory_dir,omitempty"`
	DefaultMode string `json:"default_mode,omitempty"`
	Suggestions int    `json:"suggestions,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
}

// Paths are the resolved locations of everything vitals reads and writes.
type Paths struct {
	Base      string
	MetricDir string
	MemoryDir string
	LogFile   string
	Database  string
}

// BaseDir returns the directory holding all vitals state.
func BaseDir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, fileName), nil
}

// Resolve fills in the default location for every path not set in c.
func (c *Config) Resolve() (Paths, error) {
	base, err := BaseDir()
	if err != nil {
		return Paths{}, err
	}
	return c.ResolveIn(base), nil
}

// ResolveIn is Resolve with an explicit base directory.
func (c *Config) ResolveIn(base string) Paths {
	p := Paths{
		Base:      base,
		MetricDir: filepath.Join(base, "metric_files"),
		MemoryDir: filepath.Join(base, "memory"),
		LogFile:   filepath.Join(base, "logs", "vitals.log"),
		Database:  filepath.Join(base, "vitals.db"),
	}
	if c.MetricDir != "" {
		p.MetricDir = c.MetricDir
	}
	if c.MemoryDir != "" {
		p.MemoryDir = c.MemoryDir
	}
	return p
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	return loadFrom("")
}

func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}
