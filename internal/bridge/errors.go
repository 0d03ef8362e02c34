package bridge

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnreachable is the generic failure when no identity produced a
	// diagnostic.
	ErrUnreachable = errors.New("could not reach application")
	// ErrInvalidRequest is wrapped by request validation failures.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrScriptFile is wrapped when the script file cannot be written.
	ErrScriptFile = errors.New("cannot prepare script file")
)

// ScriptError is a failure raised by the application's scripting engine.
// The script reached the application, so other identities are not tried.
type ScriptError struct {
	Identity string
	Code     int
	Message  string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script error %d: %s", e.Code, e.Message)
}

// ExhaustedError means every identity failed to run the script.
type ExhaustedError struct {
	Tried int    // identities actually invoked
	Last  string // last diagnostic, empty when none was produced
}

// Error returns the last diagnostic verbatim, or the generic
// ErrUnreachable text when there is none.
func (e *ExhaustedError) Error() string {
	if e.Last == "" {
		return ErrUnreachable.Error()
	}
	return e.Last
}

// Unwrap lets errors.Is(err, ErrUnreachable) match.
func (e *ExhaustedError) Unwrap() error {
	return ErrUnreachable
}
