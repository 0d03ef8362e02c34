package bridge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xdg/appbridge/internal/hostexec"
)

// Class is the classification of a single attempt.
type Class int

const (
	// ClassSuccess means the script ran and produced a result.
	ClassSuccess Class = iota
	// ClassScriptError means the application ran the script and its
	// scripting engine raised. Other identities are not tried.
	ClassScriptError
	// ClassInfrastructure means the host could not run the script under this
	// identity (application missing, host failure). The next identity is tried.
	ClassInfrastructure
	// ClassTimeout means the host did not answer in time and was killed.
	// It is retried like ClassInfrastructure.
	ClassTimeout
)

// String returns the lowercase name used in logs and metrics.
func (c Class) String() string {
	switch c {
	case ClassSuccess:
		return "success"
	case ClassScriptError:
		return "script_error"
	case ClassInfrastructure:
		return "infrastructure"
	case ClassTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Retryable reports whether the next candidate identity should be tried.
func (c Class) Retryable() bool {
	return c == ClassInfrastructure || c == ClassTimeout
}

// Outcome is the classified result of one host invocation.
type Outcome struct {
	Class   Class
	Output  string // merged, trimmed stdout and stderr
	Code    int    // script error number, ClassScriptError only
	Message string // script error message or failure diagnostic
}

// Classifier turns raw host output into an Outcome.
type Classifier struct {
	sentinel *regexp.Regexp
}

// NewClassifier creates a Classifier recognizing marker lines of the form
// <marker>|<number>|<message>. An empty marker means hostexec.ErrorMarker.
func NewClassifier(marker string) *Classifier {
	if marker == "" {
		marker = hostexec.ErrorMarker
	}
	return &Classifier{
		sentinel: regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(marker) + `\|(-?\d{1,9})\|`),
	}
}

// DefaultClassifier uses the host wrapper's marker.
var DefaultClassifier = NewClassifier(hostexec.ErrorMarker)

// Classify classifies output with DefaultClassifier.
func Classify(stdout, stderr string, exitCode int) Outcome {
	return DefaultClassifier.Classify(stdout, stderr, exitCode)
}

// Classify inspects the output of a completed host process.
//
// The first line that starts with the marker decides the outcome regardless
// of exit code, and the script is never retried elsewhere. Stdout is
// searched before stderr. The message is the rest of that stream after the
// second pipe, so it may contain pipes and line breaks but never text from
// the other stream. Without a marker, exit code 0 is success and anything
// else is an infrastructure failure.
func (c *Classifier) Classify(stdout, stderr string, exitCode int) Outcome {
	merged := Merge(stdout, stderr)

	for _, stream := range []string{stdout, stderr} {
		if code, msg, ok := c.marker(stream); ok {
			return Outcome{Class: ClassScriptError, Output: merged, Code: code, Message: msg}
		}
	}

	if exitCode == 0 {
		return Outcome{Class: ClassSuccess, Output: merged, Message: merged}
	}

	diag := merged
	if diag == "" {
		diag = fmt.Sprintf("host exited with code %d", exitCode)
	}
	return Outcome{Class: ClassInfrastructure, Output: merged, Message: diag}
}

// marker finds the first marker line in text and returns its error number
// and the trimmed remainder of text after it.
func (c *Classifier) marker(text string) (code int, msg string, ok bool) {
	loc := c.sentinel.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, "", false
	}
	code, err := strconv.Atoi(text[loc[2]:loc[3]])
	if err != nil {
		return 0, "", false
	}
	return code, strings.TrimSpace(text[loc[1]:]), true
}

// ClassifyInvocation classifies a raw host invocation. Timeouts and host
// errors never reach the output classifier.
func (c *Classifier) ClassifyInvocation(inv hostexec.Invocation) Outcome {
	switch inv.Status {
	case hostexec.StatusCompleted:
		return c.Classify(inv.Stdout, inv.Stderr, inv.ExitCode)
	case hostexec.StatusTimeout:
		msg := inv.Error
		if msg == "" {
			msg = "host timed out"
		}
		return Outcome{Class: ClassTimeout, Output: Merge(inv.Stdout, inv.Stderr), Message: msg}
	default:
		msg := inv.Error
		if msg == "" {
			msg = "host invocation failed"
		}
		return Outcome{Class: ClassInfrastructure, Output: Merge(inv.Stdout, inv.Stderr), Message: msg}
	}
}

// Merge joins stdout and stderr into one trimmed text. The host may write
// a result to either stream.
func Merge(stdout, stderr string) string {
	out := strings.TrimSpace(stdout)
	errOut := strings.TrimSpace(stderr)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}
