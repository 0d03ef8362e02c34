// Package hostexec runs the OS automation host that carries a script file
// into the target application.
package hostexec

import (
	"context"
	"time"
)

// Invoker runs one automation host process per call.
type Invoker interface {
	Invoke(ctx context.Context, identity, scriptPath string, timeout time.Duration) Invocation
}

// Invocation is the raw outcome of a single host process.
type Invocation struct {
	Status   string        // "completed", "timeout", "error"
	ExitCode int           // -1 unless Status is "completed"
	Stdout   string        // captured standard output
	Stderr   string        // captured standard error
	Error    string        // description for timeout and error statuses
	PID      int           // host process ID, 0 if it never started
	Duration time.Duration // wall time from start to reap
}

// Status constants for Invocation.Status.
const (
	StatusCompleted = "completed"
	StatusTimeout   = "timeout"
	StatusError     = "error"
)

// CommandBuilder returns the host executable and arguments that run the
// script at scriptPath inside the application named identity.
type CommandBuilder func(identity, scriptPath string) (name string, args []string)
