// Package audit provides structured logging for script execution events.
// Log entries follow a key=value format suitable for parsing and analysis.
package audit

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xdg/appbridge/internal/bridge"
	"github.com/xdg/appbridge/internal/clog"
)

// EventType represents the type of bridge event.
type EventType string

// Event types for individual host invocations.
const (
	EventAttempt EventType = "ATTEMPT"
	EventTimeout EventType = "TIMEOUT"
)

// Event types for finished requests.
const (
	EventSuccess     EventType = "SUCCESS"
	EventScriptError EventType = "SCRIPT_ERROR"
	EventExhausted   EventType = "EXHAUSTED"
	EventFailed      EventType = "FAILED"
)

// Event represents a bridge audit log entry.
type Event struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Type is the event type (ATTEMPT, SUCCESS, etc.)
	Type EventType

	// Request is the request ID shared by all events of one request.
	Request string

	// Identity is the target application identity (for attempt events).
	Identity string

	// Class is the attempt classification (for ATTEMPT events).
	Class string

	// ExitCode is the host exit code (for ATTEMPT events).
	ExitCode int

	// Code is the script error number (for SCRIPT_ERROR events).
	Code int

	// Attempts is the number of identities tried (for request events).
	Attempts int

	// Message is the diagnostic or script error message.
	Message string

	// Duration is the attempt or request wall time.
	Duration time.Duration
}

// Format returns the log entry as a formatted string.
// Format: 2024-01-15T14:32:05Z BRIDGE ATTEMPT request=r1 identity="Adobe InDesign 2025" class=success exit=0 duration=120.0ms
// Format: 2024-01-15T14:32:05Z BRIDGE SCRIPT_ERROR request=r1 attempts=1 code=2 duration=130.0ms message="Object is not valid."
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" BRIDGE ")
	b.WriteString(string(e.Type))

	b.WriteString(" request=")
	b.WriteString(e.Request)

	e.formatTypeSpecificFields(&b)

	b.WriteString(" duration=")
	b.WriteString(formatDuration(e.Duration))
	writeOptionalField(&b, "message", e.Message)

	return b.String()
}

// formatTypeSpecificFields appends type-specific key=value pairs to the builder.
func (e *Event) formatTypeSpecificFields(b *strings.Builder) {
	switch e.Type {
	case EventAttempt, EventTimeout:
		b.WriteString(" identity=")
		b.WriteString(quoteValue(e.Identity))
		if e.Type == EventAttempt {
			b.WriteString(" class=")
			b.WriteString(e.Class)
			b.WriteString(" exit=")
			b.WriteString(strconv.Itoa(e.ExitCode))
		}
	case EventScriptError:
		b.WriteString(" attempts=")
		b.WriteString(strconv.Itoa(e.Attempts))
		b.WriteString(" code=")
		b.WriteString(strconv.Itoa(e.Code))
	default:
		b.WriteString(" attempts=")
		b.WriteString(strconv.Itoa(e.Attempts))
	}
}

// writeOptionalField appends " key=quoted_value" to the builder if value is non-empty.
func writeOptionalField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(quoteValue(value))
}

// quoteValue returns a quoted string value.
// Values are always quoted for consistency and to handle spaces/special chars.
func quoteValue(s string) string {
	return fmt.Sprintf("%q", s)
}

// formatDuration formats a duration as a human-readable string (e.g., "2.3s", "1m30s").
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// Logger writes audit events to an io.Writer. It implements bridge.Observer.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewLogger creates a new audit logger that writes to the given writer.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Log writes an event to the audit log.
func (l *Logger) Log(e *Event) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := e.Format() + "\n"
	_, err := l.w.Write([]byte(line))
	if err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// AttemptStarted implements bridge.Observer. Attempts are logged when they
// finish.
func (l *Logger) AttemptStarted(string, string, int) {}

// AttemptFinished logs an ATTEMPT event, or TIMEOUT when the host was killed.
func (l *Logger) AttemptFinished(requestID string, a bridge.Attempt) {
	if l == nil {
		return
	}
	e := &Event{
		Timestamp: l.now(),
		Type:      EventAttempt,
		Request:   requestID,
		Identity:  a.Identity,
		Class:     a.Class.String(),
		ExitCode:  a.ExitCode,
		Duration:  a.Duration,
	}
	if a.Class == bridge.ClassTimeout {
		e.Type = EventTimeout
	}
	if a.Class != bridge.ClassSuccess {
		e.Message = a.Message
	}
	l.write(e)
}

// RequestFinished logs the terminal event of a request.
func (l *Logger) RequestFinished(requestID string, r bridge.Result, d time.Duration) {
	if l == nil {
		return
	}
	e := &Event{
		Timestamp: l.now(),
		Request:   requestID,
		Attempts:  len(r.Attempts),
		Duration:  d,
	}

	var scriptErr *bridge.ScriptError
	switch {
	case r.Success:
		e.Type = EventSuccess
	case errors.As(r.Err(), &scriptErr):
		e.Type = EventScriptError
		e.Code = scriptErr.Code
		e.Message = scriptErr.Message
	case r.Status() == "exhausted":
		e.Type = EventExhausted
		e.Message = r.Error
	default:
		e.Type = EventFailed
		e.Message = r.Error
	}
	l.write(e)
}

func (l *Logger) write(e *Event) {
	if err := l.Log(e); err != nil {
		clog.Warn("audit: %v", err)
	}
}
