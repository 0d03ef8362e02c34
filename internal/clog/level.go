// Package clog provides leveled operational logging for appbridge.
// This is distinct from user-facing output (see internal/term) and from the
// per-request audit trail (see internal/audit).
//
// Log levels:
//   - Debug: Per-attempt transitions and file lifecycle, only with --debug
//   - Info: Request-level events
//   - Warn: Timeouts and other conditions that don't stop a request
//   - Error: Failures that stop a request
//
// Output destinations:
//   - File: All levels at or above the configured level
//   - Stderr: Warn and Error only, disabled in quiet mode
package clog

import "strings"

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is for verbose diagnostic information.
	LevelDebug Level = iota
	// LevelInfo is for normal operational events.
	LevelInfo
	// LevelWarn is for unexpected conditions that don't prevent operation.
	LevelWarn
	// LevelError is for failures that affect functionality.
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// levelAliases maps accepted spellings to levels.
var levelAliases = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
	"err":     LevelError,
}

// String returns the uppercase name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// LookupLevel returns the level named by s (case-insensitive, surrounding
// space ignored) and whether the name was recognized.
func LookupLevel(s string) (Level, bool) {
	l, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// ParseLevel is LookupLevel with LevelInfo for unrecognized names.
func ParseLevel(s string) Level {
	if l, ok := LookupLevel(s); ok {
		return l
	}
	return LevelInfo
}
