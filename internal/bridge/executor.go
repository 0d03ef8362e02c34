package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xdg/appbridge/internal/clog"
	"github.com/xdg/appbridge/internal/hostexec"
	"github.com/xdg/appbridge/internal/tempfile"
)

// ScriptFiles writes a script body to a file the host can read and removes
// it afterwards. *tempfile.Manager implements it.
type ScriptFiles interface {
	Acquire(body string) (string, error)
	Release(path string)
}

// Executor runs scripts against an ordered list of application identities.
// It holds no per-request state and is safe for concurrent use; identities
// within one request are always tried sequentially.
type Executor struct {
	targets        []string
	invoker        hostexec.Invoker
	files          ScriptFiles
	classifier     *Classifier
	observer       Observer
	defaultTimeout time.Duration
	newRequestID   func() string
}

// Option configures an Executor.
type Option func(*Executor)

// WithScriptFiles sets where script files are written.
func WithScriptFiles(f ScriptFiles) Option {
	return func(e *Executor) {
		e.files = f
	}
}

// WithClassifier replaces DefaultClassifier.
func WithClassifier(c *Classifier) Option {
	return func(e *Executor) {
		e.classifier = c
	}
}

// WithObserver sets the observer notified of attempts and results.
func WithObserver(o Observer) Option {
	return func(e *Executor) {
		e.observer = o
	}
}

// WithDefaultTimeout sets the per-identity timeout for requests that do
// not carry one.
func WithDefaultTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.defaultTimeout = d
		}
	}
}

// WithRequestIDs sets the generator for request IDs reported to observers.
func WithRequestIDs(fn func() string) Option {
	return func(e *Executor) {
		e.newRequestID = fn
	}
}

// New creates an Executor that tries targets in order, most preferred
// first. The list is copied and never changes afterwards.
func New(targets []string, invoker hostexec.Invoker, opts ...Option) *Executor {
	e := &Executor{
		targets:        append([]string(nil), targets...),
		invoker:        invoker,
		files:          &tempfile.Manager{},
		classifier:     DefaultClassifier,
		observer:       NopObserver{},
		defaultTimeout: DefaultTimeoutMillis * time.Millisecond,
		newRequestID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Targets returns a copy of the identity list.
func (e *Executor) Targets() []string {
	return append([]string(nil), e.targets...)
}

// ExecuteScript runs body with the default timeout.
func (e *Executor) ExecuteScript(ctx context.Context, body string) Result {
	return e.Execute(ctx, Request{Script: body})
}

// Execute runs req and returns exactly one Result.
//
// Identities are tried in order. The search stops at the first success or
// script error; infrastructure failures and timeouts move on to the next
// identity. Worst-case latency is the timeout times the number of
// identities. The script file is written once and removed before Execute
// returns.
func (e *Executor) Execute(ctx context.Context, req Request) Result {
	id := e.newRequestID()
	start := time.Now()
	res := e.execute(ctx, id, req)
	e.observer.RequestFinished(id, res, time.Since(start))
	return res
}

func (e *Executor) execute(ctx context.Context, id string, req Request) Result {
	timeout, err := req.timeout(e.defaultTimeout)
	if err != nil {
		return failed(err, nil)
	}
	if len(e.targets) == 0 {
		clog.Warn("bridge: request %s: no target identities configured", id)
		return failed(&ExhaustedError{}, nil)
	}

	path, err := e.files.Acquire(req.Script)
	if err != nil {
		clog.Error("bridge: request %s: %v", id, err)
		return failed(fmt.Errorf("%w: %v", ErrScriptFile, err), nil)
	}
	defer e.files.Release(path)

	var (
		state    = StateIdle
		attempts []Attempt
		last     string
	)
	for i, identity := range e.targets {
		if i > 0 && ctx.Err() != nil {
			clog.Warn("bridge: request %s: stopping before %q: %v", id, identity, ctx.Err())
			break
		}
		state = e.transition(id, state, StateTrying)

		e.observer.AttemptStarted(id, identity, i)
		a, o := e.attempt(ctx, identity, path, timeout)
		attempts = append(attempts, a)
		e.observer.AttemptFinished(id, a)

		switch o.Class {
		case ClassSuccess:
			e.transition(id, state, StateDone)
			return succeeded(o.Output, attempts)
		case ClassScriptError:
			e.transition(id, state, StateDone)
			clog.Debug("bridge: request %s: script error %d in %q: %s", id, o.Code, identity, o.Message)
			return failed(&ScriptError{Identity: identity, Code: o.Code, Message: o.Message}, attempts)
		case ClassTimeout:
			clog.Warn("bridge: request %s: %q timed out after %s", id, identity, timeout)
		default:
			clog.Debug("bridge: request %s: %q unreachable: %s", id, identity, o.Message)
		}
		if o.Message != "" {
			last = o.Message
		}
	}

	e.transition(id, state, StateExhausted)
	clog.Info("bridge: request %s: no target responded after %d attempts", id, len(attempts))
	return failed(&ExhaustedError{Tried: len(attempts), Last: last}, attempts)
}

// attempt invokes the host for one identity. A panic inside the invoker is
// contained and reported as an infrastructure failure so the search can
// continue.
func (e *Executor) attempt(ctx context.Context, identity, path string, timeout time.Duration) (a Attempt, o Outcome) {
	a = Attempt{Identity: identity, ScriptPath: path, ExitCode: -1}
	defer func() {
		if r := recover(); r != nil {
			o = Outcome{Class: ClassInfrastructure, Message: fmt.Sprintf("host invocation panicked: %v", r)}
			clog.Error("bridge: %s", o.Message)
		}
		a.Class = o.Class
		a.Status = o.Class.String()
		a.Output = o.Output
		a.Message = o.Message
	}()

	inv := e.invoker.Invoke(ctx, identity, path, timeout)
	a.ExitCode = inv.ExitCode
	a.Duration = inv.Duration
	return a, e.classifier.ClassifyInvocation(inv)
}

func (e *Executor) transition(id string, from, to State) State {
	clog.Debug("bridge: request %s: %s -> %s", id, from, to)
	return to
}
