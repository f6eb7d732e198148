// Package config loads snapshot defaults from a flowshot.yaml file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/flowshot/pkg/render"
	"github.com/devicelab-dev/flowshot/pkg/snapshot"
)

// Config represents the workspace snapshot defaults (flowshot.yaml).
// Unset fields keep the built-in defaults; Record is a pointer so an
// absent key defers to the FLOWSHOT_RECORD environment toggle.
type Config struct {
	Scale             float64 `yaml:"scale"`             // Render density multiplier
	Width             int     `yaml:"width"`             // Logical view width
	Height            int     `yaml:"height"`            // Logical view height
	Tolerance         float64 `yaml:"tolerance"`         // Per-byte difference fraction
	Record            *bool   `yaml:"record"`            // Always overwrite references
	SnapshotDirectory string  `yaml:"snapshotDirectory"` // Explicit store location
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for flowshot.yaml or flowshot.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{"flowshot.yaml", "flowshot.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	// No config file found, return empty config
	return &Config{}, nil
}

// Apply overlays the file's values onto a snapshot config. File values
// win over cfg's current values only where set; an explicit record key
// overrides the environment toggle already resolved in cfg.
func (c *Config) Apply(cfg snapshot.Config) snapshot.Config {
	if c.Scale > 0 {
		cfg.Scale = c.Scale
	}
	if c.Width > 0 && c.Height > 0 {
		cfg.Size = render.Size{Width: c.Width, Height: c.Height}
	}
	if c.Tolerance > 0 {
		cfg.Tolerance = c.Tolerance
	}
	if c.Record != nil {
		cfg.Record = *c.Record
	}
	if c.SnapshotDirectory != "" {
		cfg.Directory = c.SnapshotDirectory
	}
	return cfg
}
