// Package config provides configuration management for flowstate.
//
// Config file locations (priority order):
//  1. $FLOWSTATE_CONFIG
//  2. ./flowstate.yaml
//  3. ./flowstate.toml
//  4. $XDG_CONFIG_HOME/flowstate/config.yaml
//  5. ~/.config/flowstate/config.yaml
//  6. /etc/flowstate/config.yaml
//
// Files ending in .toml are decoded with BurntSushi/toml, everything else as
// YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"flowstate/internal/idgen"
	"flowstate/internal/logging"
)

// ErrInvalid is wrapped by every Validate error
var ErrInvalid = errors.New("invalid config")

// Defaults for a new installation
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultKeepalive       = 30 * time.Second
	DefaultJournalPath     = "./flowstate.db"
	DefaultPlacementSize   = 500
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path in the format its extension names
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if isTOML(path) {
		err = toml.NewEncoder(f).Encode(c)
	} else {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		err = enc.Encode(c)
		if closeErr := enc.Close(); err == nil {
			err = closeErr
		}
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(DefaultShutdownTimeout)
	}
	if c.Server.Keepalive == 0 {
		c.Server.Keepalive = Duration(DefaultKeepalive)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Editor.IDStrategy == "" {
		c.Editor.IDStrategy = idgen.StrategySequence
	}
	if c.Editor.Placement.Width == 0 {
		c.Editor.Placement.Width = DefaultPlacementSize
	}
	if c.Editor.Placement.Height == 0 {
		c.Editor.Placement.Height = DefaultPlacementSize
	}
	if c.Journal.Path == "" {
		c.Journal.Path = DefaultJournalPath
	}
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if !slices.Contains(logging.Levels, c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (want one of %s)", ErrInvalid, c.Log.Level, strings.Join(logging.Levels, ", "))
	}
	if !slices.Contains(logging.Formats, c.Log.Format) {
		return fmt.Errorf("%w: log.format %q (want one of %s)", ErrInvalid, c.Log.Format, strings.Join(logging.Formats, ", "))
	}

	switch c.Editor.IDStrategy {
	case idgen.StrategySequence, idgen.StrategyUUID, idgen.StrategyHashed:
	default:
		return fmt.Errorf("%w: editor.id_strategy %q", ErrInvalid, c.Editor.IDStrategy)
	}

	if c.Editor.Placement.Width <= 0 || c.Editor.Placement.Height <= 0 {
		return fmt.Errorf("%w: editor.placement width and height must be positive", ErrInvalid)
	}

	z := c.Editor.Zoom
	if z.Bounded() && (z.Min <= 0 || z.Max < z.Min) {
		return fmt.Errorf("%w: editor.zoom requires 0 < min <= max, got min=%v max=%v", ErrInvalid, z.Min, z.Max)
	}

	if c.Server.ShutdownTimeout < 0 || c.Server.Keepalive < 0 {
		return fmt.Errorf("%w: server durations must not be negative", ErrInvalid)
	}

	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	zoom := "unbounded"
	if c.Editor.Zoom.Bounded() {
		zoom = fmt.Sprintf("[%g, %g]", c.Editor.Zoom.Min, c.Editor.Zoom.Max)
	}
	journal := "off"
	if c.Journal.Enabled {
		journal = c.Journal.Path
	}

	summary := fmt.Sprintf("Server: %s, Log: %s/%s\n", c.Server.Addr, c.Log.Level, c.Log.Format)
	summary += fmt.Sprintf("IDs: %s, Placement: %gx%g, Zoom: %s\n",
		c.Editor.IDStrategy, c.Editor.Placement.Width, c.Editor.Placement.Height, zoom)
	summary += fmt.Sprintf("Journal: %s", journal)
	if c.Editor.SeedFile != "" {
		summary += fmt.Sprintf(", Seed: %s", c.Editor.SeedFile)
	}

	return summary
}
