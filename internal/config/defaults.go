package config

import "time"

// DefaultTimeout is the per-identity timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// DefaultTargets lists the application identities tried when none are
// configured, newest release first.
var DefaultTargets = []string{
	"Adobe InDesign 2026",
	"Adobe InDesign 2025",
	"Adobe InDesign 2024",
	"Adobe InDesign 2023",
	"Adobe InDesign 2022",
}

// DefaultConfig returns a Config with all defaults populated.
func DefaultConfig() *Config {
	return &Config{
		Targets: append([]string(nil), DefaultTargets...),
		Timeout: DefaultTimeout.String(),
		Host: HostConfig{
			Command:  "osascript",
			Language: "javascript",
		},
		Scratch: ScratchConfig{
			// Dir intentionally empty - signals the OS temp directory
			Prefix: "appbridge-",
			Ext:    ".jsx",
		},
		Log: LogConfig{
			File:  "~/.local/state/appbridge/appbridge.log",
			Level: "info",
		},
		Audit: AuditConfig{
			File: "~/.local/state/appbridge/audit.log",
		},
	}
}

// applyDefaults fills fields left empty in cfg from DefaultConfig.
// Booleans and optional outputs (Scratch.Dir, Metrics.Textfile) are kept
// as written.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if len(cfg.Targets) == 0 {
		cfg.Targets = def.Targets
	}
	if cfg.Timeout == "" {
		cfg.Timeout = def.Timeout
	}
	if cfg.Host.Command == "" {
		cfg.Host.Command = def.Host.Command
	}
	if cfg.Host.Language == "" {
		cfg.Host.Language = def.Host.Language
	}
	if cfg.Scratch.Prefix == "" {
		cfg.Scratch.Prefix = def.Scratch.Prefix
	}
	if cfg.Scratch.Ext == "" {
		cfg.Scratch.Ext = def.Scratch.Ext
	}
	if cfg.Log.File == "" {
		cfg.Log.File = def.Log.File
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}
