package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the appbridge configuration directory path.
// By default, this is ~/.config/appbridge/. If the XDG_CONFIG_HOME
// environment variable is set, it uses $XDG_CONFIG_HOME/appbridge/ instead.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return filepath.Join(ExpandHome(base), "appbridge")
}

// EnsureDir creates the configuration directory with 0700 permissions
// if it doesn't exist.
func EnsureDir() error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return nil
}

// Path returns the full path to the configuration file.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// ExpandHome replaces a leading ~ in path with the user's home directory.
// If the home directory cannot be determined, the path is returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// expandPaths expands ~ in every path field of cfg.
func expandPaths(cfg *Config) {
	cfg.Scratch.Dir = ExpandHome(cfg.Scratch.Dir)
	cfg.Log.File = ExpandHome(cfg.Log.File)
	cfg.Audit.File = ExpandHome(cfg.Audit.File)
	cfg.Metrics.Textfile = ExpandHome(cfg.Metrics.Textfile)
}
