package clog

import (
	"io"
	"sync"
)

var (
	stdMu sync.RWMutex
	std   = NewLogger()
)

func global() *Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// Configure sets up the global logger.
// If logPath is empty, file logging is disabled.
// If quiet is true, stderr output is disabled.
func Configure(logPath string, level Level, quiet bool) error {
	l := global()
	l.SetLevel(level)
	l.SetQuiet(quiet)

	if logPath != "" {
		f, err := OpenLogFile(logPath)
		if err != nil {
			return err
		}
		l.SetFileOutput(f)
	}
	return nil
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	global().SetLevel(level)
}

// SetErrOutput sets the stderr writer for the global logger.
func SetErrOutput(w io.Writer) {
	global().SetErrOutput(w)
}

// Debug logs a debug message using the global logger.
func Debug(format string, args ...any) {
	global().Debug(format, args...)
}

// Info logs an informational message using the global logger.
func Info(format string, args ...any) {
	global().Info(format, args...)
}

// Warn logs a warning message using the global logger.
func Warn(format string, args ...any) {
	global().Warn(format, args...)
}

// Error logs an error message using the global logger.
func Error(format string, args ...any) {
	global().Error(format, args...)
}

// Close closes the file writer if it implements io.Closer.
// This should be called during shutdown to ensure logs are flushed.
func Close() error {
	l := global()
	l.mu.Lock()
	defer l.mu.Unlock()

	closer, ok := l.fileWriter.(io.Closer)
	if !ok {
		return nil
	}
	l.fileWriter = nil
	return closer.Close()
}

// Reset resets the global logger to default state.
// This is primarily useful for testing.
func Reset() {
	ReplaceGlobal(NewLogger())
}

// Discard configures the global logger to discard all output.
// This is useful for silencing logs in tests.
func Discard() {
	l := global()
	l.SetFileOutput(nil)
	l.SetErrOutput(nil)
}

// TestLogger returns a debug-level logger that writes everything to w.
func TestLogger(w io.Writer) *Logger {
	l := NewLogger()
	l.SetFileOutput(w)
	l.SetErrOutput(nil)
	l.SetLevel(LevelDebug)
	return l
}

// ReplaceGlobal replaces the global logger and returns the previous one.
// Caller should restore the original logger after test.
func ReplaceGlobal(l *Logger) *Logger {
	stdMu.Lock()
	defer stdMu.Unlock()
	old := std
	std = l
	return old
}
