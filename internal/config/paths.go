package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "FLOWSTATE_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "flowstate.yaml"
	// TOMLConfigFileName is the TOML alternative in the working directory
	TOMLConfigFileName = "flowstate.toml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "flowstate"
)

// FindConfigPath returns the first existing config file among
// configCandidates, or "" when there is none. Working-directory hits are
// made absolute.
func FindConfigPath() string {
	for _, path := range configCandidates() {
		if !fileExists(path) {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

// configCandidates lists config locations in priority order: the
// FLOWSTATE_CONFIG override, the working directory (YAML before TOML),
// XDG_CONFIG_HOME, ~/.config and finally /etc.
func configCandidates() []string {
	var paths []string
	if env := os.Getenv(EnvConfigPath); env != "" {
		paths = append(paths, env)
	}
	paths = append(paths, ConfigFileName, TOMLConfigFileName)

	for _, dir := range []string{os.Getenv("XDG_CONFIG_HOME"), homeConfigDir(), "/etc"} {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, ConfigDirName, "config.yaml"))
		}
	}
	return paths
}

func homeConfigDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

// DefaultConfigPath is where a new config file goes: under XDG_CONFIG_HOME
// or ~/.config when either is known, else the working directory
func DefaultConfigPath() string {
	for _, dir := range []string{os.Getenv("XDG_CONFIG_HOME"), homeConfigDir()} {
		if dir != "" {
			return filepath.Join(dir, ConfigDirName, "config.yaml")
		}
	}
	return ConfigFileName
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
