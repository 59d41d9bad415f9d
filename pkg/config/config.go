// Package config handles workspace configuration for reportview.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultListen is the serve address used when neither config nor flags set one.
const DefaultListen = "127.0.0.1:8787"

// Config represents the workspace configuration (.reportview.yaml).
type Config struct {
	// Initial view state applied after a report is loaded
	Search     string   `yaml:"search"`     // Search text
	Formats    []string `yaml:"formats"`    // Checked format filters
	DiffFormat string   `yaml:"diffFormat"` // Global output-format tab
	ImageMode  string   `yaml:"imageMode"`  // Global image view mode
	Expand     []string `yaml:"expand"`     // Reports to expand
	Collapse   []string `yaml:"collapse"`   // Reports to collapse

	// Rendering
	Title string `yaml:"title"` // Report title for render

	// Server
	Listen string `yaml:"listen"` // Address for serve
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromDir looks for .reportview.yaml or .reportview.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{".reportview.yaml", ".reportview.yml"} {
		configPath := filepath.Join(dir, name)
		if _, err := os.Stat(configPath); err == nil {
			return Load(configPath)
		}
	}

	// No config file found, return empty config
	return &Config{}, nil
}

// ListenAddr returns the configured serve address or DefaultListen.
func (c *Config) ListenAddr() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}
