// Package term provides user-facing terminal output for the appbridge CLI.
// This is distinct from operational logging (see internal/clog).
//
// Print, Printf and Println write script results and command output to
// stdout and are suppressed with --silent. Warn and Error write to stderr
// and are never suppressed.
package term

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type printer struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	silent bool
}

var std = &printer{stdout: os.Stdout, stderr: os.Stderr}

func (p *printer) out(format string, a ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.silent {
		return
	}
	_, _ = fmt.Fprintf(p.stdout, format, a...)
}

func (p *printer) err(prefix, format string, a ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.stderr, "%s: %s\n", prefix, fmt.Sprintf(format, a...))
}

// SetSilent enables or disables silent mode.
func SetSilent(s bool) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.silent = s
}

// SetOutput sets the writer for stdout output.
// Pass nil to use os.Stdout.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	std.stdout = w
}

// SetErrOutput sets the writer for stderr output.
// Pass nil to use os.Stderr.
func SetErrOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.stderr = w
}

// Print writes a to stdout.
func Print(a ...any) {
	std.out("%s", fmt.Sprint(a...))
}

// Printf formats according to a format specifier and writes to stdout.
func Printf(format string, a ...any) {
	std.out(format, a...)
}

// Println writes a to stdout with a trailing newline.
func Println(a ...any) {
	std.out("%s", fmt.Sprintln(a...))
}

// Warn writes a warning message to stderr with "Warning: " prefix.
func Warn(format string, a ...any) {
	std.err("Warning", format, a...)
}

// Error writes an error message to stderr with "Error: " prefix.
func Error(format string, a ...any) {
	std.err("Error", format, a...)
}

// Reset restores os.Stdout, os.Stderr and normal mode.
func Reset() {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.stdout = os.Stdout
	std.stderr = os.Stderr
	std.silent = false
}
