// Package config provides the appbridge configuration file: which
// application identities to try, how to reach them, and where logs and
// scratch files go. The configuration is YAML, stored at
// ~/.config/appbridge/config.yaml.
package config

import "time"

// Config represents the appbridge configuration.
type Config struct {
	Targets []string      `yaml:"targets,omitempty"`
	Timeout string        `yaml:"timeout,omitempty"`
	Host    HostConfig    `yaml:"host,omitempty"`
	Scratch ScratchConfig `yaml:"scratch,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
	Audit   AuditConfig   `yaml:"audit,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// HostConfig describes the OS automation host.
type HostConfig struct {
	Command  string `yaml:"command,omitempty"`
	Language string `yaml:"language,omitempty"`
}

// ScratchConfig controls where script files are written.
type ScratchConfig struct {
	Dir    string `yaml:"dir,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
	Ext    string `yaml:"ext,omitempty"`
}

// LogConfig contains operational logging settings.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
	Quiet bool   `yaml:"quiet,omitempty"`
}

// AuditConfig contains the per-request audit trail settings.
// An empty File disables auditing.
type AuditConfig struct {
	File string `yaml:"file,omitempty"`
}

// MetricsConfig contains Prometheus export settings.
// An empty Textfile disables the export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// TimeoutDuration returns the per-identity timeout. It falls back to the
// default when Timeout is empty or invalid; ValidateConfig rejects invalid
// values before they get here.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}
