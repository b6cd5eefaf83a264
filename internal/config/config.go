package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/doselog/config.yaml"

// Config holds all doselog configuration, including the suggestion tables
// consumed by the entry commands and the aggregation engine.
type Config struct {
	Storage     StorageConfig             `yaml:"storage"`
	Logging     LoggingConfig             `yaml:"logging"`
	Report      ReportConfig              `yaml:"report"`
	Suggestions SuggestionsConfig         `yaml:"suggestions"`
	Dosages     map[string][]DosageOption `yaml:"dosages"`
	Weights     map[string]float64        `yaml:"weights"`
}

type StorageConfig struct {
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ReportConfig struct {
	Days    int      `yaml:"days"`
	OutDir  string   `yaml:"out_dir"`
	Tracked []string `yaml:"tracked"`
}

type SuggestionsConfig struct {
	Substances []string `yaml:"substances"`
	Feelings   []string `yaml:"feelings"`
}

// DosageOption is a suggested dosage label for one substance, with a
// human-readable description. The label may additionally appear in the
// weights table to give it a charting magnitude.
type DosageOption struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// The usage chart needs a bounded window; a non-positive day count
	// falls back to the default.
	if cfg.Report.Days < 1 {
		cfg.Report.Days = DefaultConfig().Report.Days
	}

	return cfg, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// DatabasePath resolves the SQLite database location from the storage
// section, expanding a leading ~.
func (c *Config) DatabasePath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// TrackedSubstances returns the substances charted by the usage report:
// the report.tracked list when set, otherwise the suggestion list.
func (c *Config) TrackedSubstances() []string {
	if len(c.Report.Tracked) > 0 {
		return c.Report.Tracked
	}
	return c.Suggestions.Substances
}
