package cmd

import (
	"errors"
	"fmt"

	"github.com/xdg/appbridge/internal/bridge"
)

// Exit codes reported by exec.
const (
	ExitFailure     = 1 // no identity produced a result, or the request was invalid
	ExitScriptError = 2 // the script ran and raised an error
)

// ExitCodeError carries a process exit code out of a command. The message
// has already been shown to the user when it is returned.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError returns an ExitCodeError for code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// exitCodeFor maps a failed result to its exit code.
func exitCodeFor(res bridge.Result) int {
	var scriptErr *bridge.ScriptError
	if errors.As(res.Err(), &scriptErr) {
		return ExitScriptError
	}
	return ExitFailure
}
