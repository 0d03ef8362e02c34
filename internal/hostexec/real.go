package hostexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long Invoke waits for output pipes to close
// after the host process has been killed or has exited.
const DefaultWaitDelay = 100 * time.Millisecond

// RealInvoker executes the automation host using os/exec.
// It keeps no state between calls and is safe for concurrent use.
type RealInvoker struct {
	build     CommandBuilder
	waitDelay time.Duration
}

// NewRealInvoker creates a RealInvoker. A nil build uses OSAScript with
// the default command and language.
func NewRealInvoker(build CommandBuilder) *RealInvoker {
	if build == nil {
		build = OSAScript("", "")
	}
	return &RealInvoker{build: build, waitDelay: DefaultWaitDelay}
}

// Invoke runs the host for one identity and returns its raw output.
// When timeout elapses the whole host process group is killed and the
// invocation reports StatusTimeout.
func (r *RealInvoker) Invoke(ctx context.Context, identity, scriptPath string, timeout time.Duration) Invocation {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	name, args := r.build(identity, scriptPath)
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // G204: host command comes from configuration
	setProcessGroup(cmd)
	cmd.WaitDelay = r.waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return Invocation{
				Status:   StatusError,
				ExitCode: -1,
				Error:    "executable not found: " + name,
			}
		}
		return Invocation{
			Status:   StatusError,
			ExitCode: -1,
			Error:    fmt.Sprintf("start %s: %v", name, err),
		}
	}
	pid := cmd.Process.Pid

	err := cmd.Wait()
	inv := Invocation{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		PID:      pid,
		Duration: time.Since(start),
	}

	if err == nil || (errors.Is(err, exec.ErrWaitDelay) && ctx.Err() == nil) {
		inv.Status = StatusCompleted
		inv.ExitCode = cmd.ProcessState.ExitCode()
		return inv
	}

	// Check the context before the exit status: a killed host also
	// reports an ExitError.
	if ctxErr := ctx.Err(); ctxErr != nil {
		inv.Status = StatusTimeout
		inv.ExitCode = -1
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			inv.Error = fmt.Sprintf("host timed out after %s", timeout)
		} else {
			inv.Error = "host invocation canceled"
		}
		return inv
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		inv.Status = StatusCompleted
		inv.ExitCode = exitErr.ExitCode()
		return inv
	}

	inv.Status = StatusError
	inv.ExitCode = -1
	inv.Error = err.Error()
	return inv
}
