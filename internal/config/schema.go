package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	Editor  EditorConfig  `yaml:"editor" toml:"editor"`
	Journal JournalConfig `yaml:"journal" toml:"journal"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string   `yaml:"addr" toml:"addr"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	Keepalive       Duration `yaml:"sse_keepalive" toml:"sse_keepalive"` // SSE keep-alive comment interval
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // text, json
}

// EditorConfig holds the settings of the editor session
type EditorConfig struct {
	IDStrategy string          `yaml:"id_strategy" toml:"id_strategy"` // sequence, uuid, hashed
	IDSalt     string          `yaml:"id_salt,omitempty" toml:"id_salt,omitempty"`
	Placement  PlacementConfig `yaml:"placement" toml:"placement"`
	Zoom       ZoomConfig      `yaml:"zoom" toml:"zoom"`
	SeedFile   string          `yaml:"seed_file,omitempty" toml:"seed_file,omitempty"`
	WatchSeed  bool            `yaml:"watch_seed,omitempty" toml:"watch_seed,omitempty"`
}

// PlacementConfig is the area new nodes are dropped into
type PlacementConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Seed   uint64  `yaml:"seed,omitempty" toml:"seed,omitempty"` // 0 = nondeterministic
}

// ZoomConfig bounds the viewport zoom; 0/0 leaves it unbounded
type ZoomConfig struct {
	Min float64 `yaml:"min,omitempty" toml:"min,omitempty"`
	Max float64 `yaml:"max,omitempty" toml:"max,omitempty"`
}

// Bounded reports whether a zoom range is configured
func (z ZoomConfig) Bounded() bool {
	return z.Min != 0 || z.Max != 0
}

// JournalConfig holds action journal settings
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

// Duration wraps time.Duration for YAML and TOML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by TOML
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
