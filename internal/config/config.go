// Package config provides configuration management for rslines. It
// handles loading, parsing, and validating the YAML configuration file,
// as well as supplying defaults, following the teacher's config.go
// Load/Save/mergeWithDefaults idiom (pointer-for-explicit-setting,
// default fallback when no file is found).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document, per SPEC_FULL.md §6.
type Config struct {
	Scan          ScanConfig          `yaml:"scan"`
	TestDetection TestDetectionConfig `yaml:"test_detection"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ScanConfig controls file discovery and the parallel driver.
type ScanConfig struct {
	MaxFileSize string   `yaml:"max_file_size"`
	Workers     int      `yaml:"workers"` // 0 = runtime.NumCPU()
	Accumulator string   `yaml:"accumulator"` // "memory" | "spill"
	Exclude     []string `yaml:"exclude"`
}

// TestDetectionConfig controls C3's test-attribute recognition breadth.
type TestDetectionConfig struct {
	ExtraTestAttributes []string `yaml:"extra_test_attributes"`
	ConservativeCfg     *bool    `yaml:"conservative_cfg"` // default true
}

// OutputConfig controls the reporter.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" | "json"
	Path   string `yaml:"path"`   // "" means stdout
	Color  string `yaml:"color"`  // "auto" | "always" | "never"
}

// LoggingConfig controls the logrus side channel.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" | "json"
}

// Load reads and parses the config file at path, or the first of the
// standard config file names found in the current directory if path is
// empty, falling back to defaults when neither is found.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfigFile()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = found
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	mergeWithDefaults(&cfg)
	return &cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxFileSize: "4MB",
			Workers:     0,
			Accumulator: "memory",
			Exclude:     []string{"target/", ".git/"},
		},
		TestDetection: TestDetectionConfig{
			ExtraTestAttributes: []string{},
			ConservativeCfg:     boolPtr(true),
		},
		Output: OutputConfig{
			Format: "text",
			Path:   "",
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func mergeWithDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Scan.MaxFileSize == "" {
		cfg.Scan.MaxFileSize = defaults.Scan.MaxFileSize
	}
	if cfg.Scan.Accumulator == "" {
		cfg.Scan.Accumulator = defaults.Scan.Accumulator
	}
	if len(cfg.Scan.Exclude) == 0 {
		cfg.Scan.Exclude = defaults.Scan.Exclude
	}
	if cfg.TestDetection.ConservativeCfg == nil {
		cfg.TestDetection.ConservativeCfg = defaults.TestDetection.ConservativeCfg
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = defaults.Output.Format
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = defaults.Output.Color
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
}

func findConfigFile() (string, error) {
	for _, name := range GetConfigPaths() {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no config file found")
}

// GetConfigPaths returns the standard configuration file names/locations.
func GetConfigPaths() []string {
	return []string{
		"rslines.yaml",
		"rslines.yml",
		".rslines.yaml",
		".rslines.yml",
	}
}

// Validate checks cross-field invariants the YAML schema alone can't
// express.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format: %s (must be text or json)", c.Output.Format)
	}
	switch c.Scan.Accumulator {
	case "memory", "spill":
	default:
		return fmt.Errorf("invalid accumulator: %s (must be memory or spill)", c.Scan.Accumulator)
	}
	validLevels := []string{"debug", "info", "warn", "error"}
	ok := false
	for _, l := range validLevels {
		if c.Logging.Level == l {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	return nil
}

// GetConservativeCfg safely reads TestDetection.ConservativeCfg with its
// default-true fallback, mirroring the teacher's pointer-for-explicit-
// setting accessor pattern.
func (t *TestDetectionConfig) GetConservativeCfg() bool {
	if t.ConservativeCfg == nil {
		return true
	}
	return *t.ConservativeCfg
}

func boolPtr(b bool) *bool { return &b }
