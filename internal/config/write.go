package config

import (
	"errors"
	"fmt"
	"os"
)

// defaultTemplate is written by WriteDefault. It must parse to a Config
// equal to DefaultConfig().
const defaultTemplate = `# appbridge configuration

# Application identities to try, most preferred first. The first one that
# answers is used; a script error stops the search.
targets:
  - Adobe InDesign 2026
  - Adobe InDesign 2025
  - Adobe InDesign 2024
  - Adobe InDesign 2023
  - Adobe InDesign 2022

# Timeout for each identity. A request can take up to this value times the
# number of targets.
timeout: 30s

host:
  # Automation host executable.
  command: osascript
  # Scripting language passed to "do script".
  language: javascript

scratch:
  # Directory for temporary script files. Empty uses the OS temp directory.
  # dir: ~/tmp
  prefix: appbridge-
  ext: .jsx

log:
  file: ~/.local/state/appbridge/appbridge.log
  level: info
  # Set when embedding the bridge in a process that owns stderr.
  # quiet: true

audit:
  file: ~/.local/state/appbridge/audit.log

metrics:
  # Write Prometheus metrics here after each run (node_exporter textfile format).
  # textfile: ~/.local/state/appbridge/appbridge.prom
`

// WriteDefault creates the default configuration file with comments.
// If the file already exists, it returns nil without overwriting.
// The file is written with 0600 permissions (user read/write only).
func WriteDefault() error {
	path := Path()

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(defaultTemplate), 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// Write writes cfg to Path(), replacing any existing file.
func Write(cfg *Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(Path(), data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
