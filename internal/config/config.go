// Package config loads testctl configuration from .testctl/config.yaml.
// CLI flags override file settings; the file overrides built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig controls the local run-history store.
type HistoryConfig struct {
	// Enabled turns run recording on or off
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// KeepRuns is the maximum number of runs retained before pruning
	KeepRuns int `yaml:"keep_runs"`
}

// ReportConfig controls HTML report generation.
type ReportConfig struct {
	// Path is where the rendered HTML report is written
	Path string `yaml:"path"`
}

// Config represents testctl configuration options.
type Config struct {
	// ProjectDir is the root of the project whose tests are run
	ProjectDir string `yaml:"project_dir"`

	// NodeBin is the Node.js executable used for version probes
	NodeBin string `yaml:"node_bin"`

	// NPMBin is the npm executable used for installs and script invocations
	NPMBin string `yaml:"npm_bin"`

	// PytestBin is the pytest executable
	PytestBin string `yaml:"pytest_bin"`

	// PipBin is the pip executable used for the one-shot pytest install
	PipBin string `yaml:"pip_bin"`

	// History configures run recording
	History HistoryConfig `yaml:"history"`

	// Report configures HTML report output
	Report ReportConfig `yaml:"report"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		ProjectDir: ".",
		NodeBin:    "node",
		NPMBin:     "npm",
		PytestBin:  "pytest",
		PipBin:     "pip",
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   filepath.Join(".testctl", "history.db"),
			KeepRuns: 500,
		},
		Report: ReportConfig{
			Path: "test_report.html",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file returns defaults without error; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads .testctl/config.yaml relative to dir.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".testctl", "config.yaml"))
}

// MergeWithFlags overrides config values with explicitly-set CLI flags.
// Nil pointers mean the flag was not provided and the config value stands.
func (c *Config) MergeWithFlags(projectDir *string, noHistory *bool, reportPath *string) {
	if projectDir != nil {
		c.ProjectDir = *projectDir
	}
	if noHistory != nil && *noHistory {
		c.History.Enabled = false
	}
	if reportPath != nil {
		c.Report.Path = *reportPath
	}
}

// Validate checks the merged configuration for values no run could succeed
// with.
func (c *Config) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("project_dir must not be empty")
	}
	if c.NPMBin == "" || c.NodeBin == "" {
		return fmt.Errorf("node_bin and npm_bin must not be empty")
	}
	if c.PytestBin == "" {
		return fmt.Errorf("pytest_bin must not be empty")
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path must be set when history is enabled")
	}
	if c.History.KeepRuns < 0 {
		return fmt.Errorf("history.keep_runs must not be negative")
	}
	return nil
}

// HistoryDBPath resolves the history database path against the project dir
// when it is relative.
func (c *Config) HistoryDBPath() string {
	if filepath.IsAbs(c.History.DBPath) {
		return c.History.DBPath
	}
	return filepath.Join(c.ProjectDir, c.History.DBPath)
}

// ReportPath resolves the report output path against the project dir when it
// is relative.
func (c *Config) ReportPath() string {
	if filepath.IsAbs(c.Report.Path) {
		return c.Report.Path
	}
	return filepath.Join(c.ProjectDir, c.Report.Path)
}
