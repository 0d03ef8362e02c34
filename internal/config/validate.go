package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xdg/appbridge/internal/clog"
)

// languagePattern restricts host.language to a bare word. The value is
// placed unquoted in the host's "do script ... language" clause.
var languagePattern = regexp.MustCompile(`^[A-Za-z]+$`)

// Validate checks that all fields of cfg contain valid values:
//   - targets are non-empty and unique
//   - timeout is a positive duration
//   - host.language is a single word
//   - scratch.prefix contains no path separators; scratch.ext starts with "."
//   - log.level is one of: debug, info, warn, error
//
// Empty optional fields are valid. The returned error names the offending
// field.
func Validate(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Targets))
	for i, target := range cfg.Targets {
		if strings.TrimSpace(target) == "" {
			return fmt.Errorf("targets[%d]: must not be empty", i)
		}
		if seen[target] {
			return fmt.Errorf("targets[%d]: duplicate target %q", i, target)
		}
		seen[target] = true
	}

	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: invalid duration %q", cfg.Timeout)
		}
		if d <= 0 {
			return fmt.Errorf("timeout: must be positive, got %q", cfg.Timeout)
		}
	}

	if cfg.Host.Language != "" && !languagePattern.MatchString(cfg.Host.Language) {
		return fmt.Errorf("host.language: invalid value %q, must be a single word", cfg.Host.Language)
	}

	if strings.ContainsAny(cfg.Scratch.Prefix, `/\`) {
		return fmt.Errorf("scratch.prefix: must not contain path separators, got %q", cfg.Scratch.Prefix)
	}
	if cfg.Scratch.Ext != "" && (!strings.HasPrefix(cfg.Scratch.Ext, ".") || strings.ContainsAny(cfg.Scratch.Ext, `/\`)) {
		return fmt.Errorf("scratch.ext: invalid extension %q, must start with '.'", cfg.Scratch.Ext)
	}

	if _, ok := clog.LookupLevel(cfg.Log.Level); cfg.Log.Level != "" && !ok {
		return fmt.Errorf("log.level: invalid value %q, must be one of: debug, info, warn, error", cfg.Log.Level)
	}

	return nil
}
