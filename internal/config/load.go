package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/xdg/appbridge/internal/clog"
)

// Load loads the configuration from Path().
// If the file doesn't exist, the default file is written and the defaults
// are returned. If the file exists but cannot be read, parsed or validated,
// it returns an error. Fields left empty take their default values, and
// paths containing ~ are expanded.
func Load() (*Config, error) {
	path := Path()
	clog.Debug("config: loading from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			clog.Debug("config: file not found, creating defaults")
			if writeErr := WriteDefault(); writeErr != nil {
				clog.Warn("config: failed to create default config: %v", writeErr)
			}
			cfg := DefaultConfig()
			expandPaths(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyDefaults(cfg)
	expandPaths(cfg)
	return cfg, nil
}
