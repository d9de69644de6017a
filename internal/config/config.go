package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for configuration when no --config
// flag is given.
const DefaultPath = "trajlens.yaml"

// Config holds all trajlens configuration.
type Config struct {
	// Trajectory search roots, in preference order
	Roots []RootConfig `yaml:"roots"`

	// Audit log settings
	Audit AuditConfig `yaml:"audit"`

	// Sweep settings
	Sweep SweepConfig `yaml:"sweep"`

	// Spot-check settings
	Inspect InspectConfig `yaml:"inspect"`
}

// RootConfig names one directory of per-instance trajectory folders.
type RootConfig struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// AuditConfig configures the append-only classification logs.
type AuditConfig struct {
	Dir string `yaml:"dir"`
}

// SweepConfig configures the all-instances sweep.
type SweepConfig struct {
	// Concurrent analyses; 1 keeps the sweep fully sequential
	Workers int `yaml:"workers"`

	// Report file the sweep output is mirrored to
	Report string `yaml:"report"`

	// Watch-mode settle time after the last file change
	Debounce string `yaml:"debounce"`
}

// InspectConfig configures the spot-check printer.
type InspectConfig struct {
	// How many leading steps get a tool-header line
	MaxToolSteps int `yaml:"max_tool_steps"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Roots: []RootConfig{
			{Label: "claude", Path: "claude-sonnet-trajs"},
			{Label: "qwen", Path: "Qwen-2.5-Coder-Instruct-trajs"},
		},

		Audit: AuditConfig{
			Dir: ".",
		},

		Sweep: SweepConfig{
			Workers:  1,
			Report:   "sweep_report.txt",
			Debounce: "500ms",
		},

		Inspect: InspectConfig{
			MaxToolSteps: 20,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("TRAJLENS_AUDIT_DIR"); dir != "" {
		c.Audit.Dir = dir
	}
	if report := os.Getenv("TRAJLENS_REPORT"); report != "" {
		c.Sweep.Report = report
	}
	if workers := os.Getenv("TRAJLENS_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			c.Sweep.Workers = n
		}
	}
	if steps := os.Getenv("TRAJLENS_MAX_TOOL_STEPS"); steps != "" {
		if n, err := strconv.Atoi(steps); err == nil && n > 0 {
			c.Inspect.MaxToolSteps = n
		}
	}
}

// GetDebounce returns the watch-mode settle time as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Sweep.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
