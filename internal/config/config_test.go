package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, LogConfig{Level: "info", Format: "text"}, cfg.Log)
	assert.Equal(t, "sequence", cfg.Editor.IDStrategy)
	assert.Equal(t, 500.0, cfg.Editor.Placement.Width)
	assert.Equal(t, 500.0, cfg.Editor.Placement.Height)
	assert.False(t, cfg.Editor.Zoom.Bounded(), "zoom is unbounded by default")
	assert.False(t, cfg.Journal.Enabled, "journal is off by default")
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"debug json", func(c *Config) { c.Log.Level = "debug"; c.Log.Format = "json" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"uuid ids", func(c *Config) { c.Editor.IDStrategy = "uuid" }, true},
		{"bad ids", func(c *Config) { c.Editor.IDStrategy = "snowflake" }, false},
		{"negative placement", func(c *Config) { c.Editor.Placement.Width = -1 }, false},
		{"zoom bounds", func(c *Config) { c.Editor.Zoom = ZoomConfig{Min: 0.1, Max: 4} }, true},
		{"inverted zoom", func(c *Config) { c.Editor.Zoom = ZoomConfig{Min: 2, Max: 1} }, false},
		{"zero min zoom", func(c *Config) { c.Editor.Zoom = ZoomConfig{Max: 2} }, false},
		{"negative timeout", func(c *Config) { c.Server.ShutdownTimeout = Duration(-time.Second) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "nested", name)

			cfg := DefaultConfig()
			cfg.Server.Addr = "127.0.0.1:9000"
			cfg.Server.Keepalive = Duration(5 * time.Second)
			cfg.Editor.IDStrategy = "hashed"
			cfg.Editor.IDSalt = "team"
			cfg.Editor.Zoom = ZoomConfig{Min: 0.25, Max: 4}
			cfg.Editor.Placement.Seed = 42
			cfg.Journal = JournalConfig{Enabled: true, Path: "/tmp/journal.db"}

			require.NoError(t, cfg.Save(configPath))

			loaded, path, err := LoadFromPath(configPath)
			require.NoError(t, err)
			assert.Equal(t, configPath, path)
			assert.Equal(t, *cfg, *loaded)
		})
	}
}

func TestLoadFromPathFormats(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml with partial values", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		writeFile(t, path, "log:\n  level: debug\neditor:\n  seed_file: seed.yaml\nserver:\n  shutdown_timeout: 3s\n")

		cfg, _, err := LoadFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, LogConfig{Level: "debug", Format: "text"}, cfg.Log)
		assert.Equal(t, "seed.yaml", cfg.Editor.SeedFile)
		assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout.Duration())
		assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	})

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(dir, "flowstate.toml")
		writeFile(t, path, "[editor]\nid_strategy = \"uuid\"\n\n[editor.zoom]\nmin = 0.5\nmax = 2.0\n\n[server]\nsse_keepalive = \"15s\"\n")

		cfg, _, err := LoadFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, "uuid", cfg.Editor.IDStrategy)
		assert.Equal(t, ZoomConfig{Min: 0.5, Max: 2}, cfg.Editor.Zoom)
		assert.Equal(t, 15*time.Second, cfg.Server.Keepalive.Duration())
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "editor:\n  id_strategy: random\n")

		_, _, err := LoadFromPath(path)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		writeFile(t, path, "server: [\n")

		_, _, err := LoadFromPath(path)
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadFromPath(filepath.Join(dir, "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFindConfigPath(t *testing.T) {
	xdg := t.TempDir()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)

	t.Run("nothing found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		found := FindConfigPath()
		assert.True(t, found == "" || strings.HasPrefix(found, "/etc/"), "found %s", found)
	})

	t.Run("working directory yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFileName), "log:\n  level: warn\n")
		t.Chdir(dir)

		found := FindConfigPath()
		assert.Equal(t, ConfigFileName, filepath.Base(found))
		assert.True(t, filepath.IsAbs(found))
	})

	t.Run("working directory toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, TOMLConfigFileName), "[log]\nlevel = \"warn\"\n")
		t.Chdir(dir)

		assert.Equal(t, TOMLConfigFileName, filepath.Base(FindConfigPath()))
	})

	t.Run("yaml beats toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFileName), "")
		writeFile(t, filepath.Join(dir, TOMLConfigFileName), "")
		t.Chdir(dir)

		assert.Equal(t, ConfigFileName, filepath.Base(FindConfigPath()))
	})

	t.Run("explicit env var wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFileName), "")
		explicit := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, explicit, "")
		t.Chdir(dir)
		t.Setenv(EnvConfigPath, explicit)

		assert.Equal(t, explicit, FindConfigPath())
	})

	t.Run("missing env path falls back", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFileName), "")
		t.Chdir(dir)
		t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")

		assert.Equal(t, ConfigFileName, filepath.Base(FindConfigPath()))
	})

	t.Run("xdg before home", func(t *testing.T) {
		t.Chdir(t.TempDir())
		xdgPath := filepath.Join(xdg, ConfigDirName, "config.yaml")
		homePath := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		require.NoError(t, EnsureConfigDir(xdgPath))
		require.NoError(t, EnsureConfigDir(homePath))
		writeFile(t, homePath, "")

		assert.Equal(t, homePath, FindConfigPath())

		writeFile(t, xdgPath, "")
		assert.Equal(t, xdgPath, FindConfigPath())
	})
}

func TestConfigCandidates(t *testing.T) {
	t.Setenv(EnvConfigPath, "/custom/flow.yaml")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/ada")

	assert.Equal(t, []string{
		"/custom/flow.yaml",
		ConfigFileName,
		TOMLConfigFileName,
		"/xdg/flowstate/config.yaml",
		"/home/ada/.config/flowstate/config.yaml",
		"/etc/flowstate/config.yaml",
	}, configCandidates())

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	assert.Equal(t, []string{ConfigFileName, TOMLConfigFileName, "/etc/flowstate/config.yaml"}, configCandidates())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/ada")
	assert.Equal(t, "/xdg/flowstate/config.yaml", DefaultConfigPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, "/home/ada/.config/flowstate/config.yaml", DefaultConfigPath())

	t.Setenv("HOME", "")
	assert.Equal(t, ConfigFileName, DefaultConfigPath())
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)
	assert.Equal(t, 5*time.Minute, d.Duration())

	marshaled, err := d.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "5m0s", marshaled)

	var parsed Duration
	require.NoError(t, parsed.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, parsed.Duration())
	assert.Error(t, parsed.UnmarshalText([]byte("soon")))
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Journal.Enabled = true
	cfg.Editor.Zoom = ZoomConfig{Min: 0.5, Max: 2}

	summary := cfg.Summary()
	for _, want := range []string{":8080", "sequence", "[0.5, 2]", DefaultJournalPath} {
		assert.Contains(t, summary, want)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
