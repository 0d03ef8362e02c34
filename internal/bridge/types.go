// Package bridge executes automation scripts inside the target desktop
// application. It tries an ordered list of installed application
// identities, one at a time, and stops at the first identity that either
// returns a result or reports a genuine script error.
package bridge

import (
	"fmt"
	"time"
)

// DefaultTimeoutMillis is the per-identity timeout used when a request
// does not set one.
const DefaultTimeoutMillis = 30000

// Request is one script to execute. It is not modified by the executor.
type Request struct {
	Script        string `json:"script"`
	TimeoutMillis int    `json:"timeout_ms,omitempty"` // per identity; 0 means default
}

// timeout returns the per-identity timeout, applying def when unset.
func (r Request) timeout(def time.Duration) (time.Duration, error) {
	switch {
	case r.TimeoutMillis < 0:
		return 0, fmt.Errorf("%w: timeout_ms must be positive, got %d", ErrInvalidRequest, r.TimeoutMillis)
	case r.TimeoutMillis == 0:
		return def, nil
	default:
		return time.Duration(r.TimeoutMillis) * time.Millisecond, nil
	}
}

// Attempt records one identity that was tried.
type Attempt struct {
	Identity   string        `json:"identity"`
	ScriptPath string        `json:"script_path"`
	Class      Class         `json:"-"`
	Status     string        `json:"status"` // Class.String()
	ExitCode   int           `json:"exit_code"`
	Output     string        `json:"output,omitempty"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Result is returned for every request. Exactly one of Result and Error is
// meaningful, selected by Success.
type Result struct {
	Success  bool      `json:"success"`
	Result   string    `json:"result,omitempty"`
	Error    string    `json:"error,omitempty"`
	Attempts []Attempt `json:"attempts,omitempty"`

	err error
}

// Err returns the typed failure behind Error: *ScriptError,
// *ExhaustedError, or an error wrapping ErrInvalidRequest or
// ErrScriptFile. It is nil on success.
func (r Result) Err() error {
	return r.err
}

// Status names the outcome for logs and metrics: "success",
// "script_error", "exhausted" or "failed".
func (r Result) Status() string {
	if r.Success {
		return "success"
	}
	switch r.err.(type) {
	case *ScriptError:
		return "script_error"
	case *ExhaustedError:
		return "exhausted"
	default:
		return "failed"
	}
}

func succeeded(output string, attempts []Attempt) Result {
	return Result{Success: true, Result: output, Attempts: attempts}
}

func failed(err error, attempts []Attempt) Result {
	return Result{Error: err.Error(), Attempts: attempts, err: err}
}

// State is the position of a request in the candidate search.
type State int

const (
	// StateIdle is the state before any identity has been tried.
	StateIdle State = iota
	// StateTrying means an identity is being invoked.
	StateTrying
	// StateDone means an identity returned a result or a script error.
	StateDone
	// StateExhausted means every identity failed to respond.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTrying:
		return "trying"
	case StateDone:
		return "done"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
