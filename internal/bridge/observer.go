package bridge

import "time"

// Observer receives execution events. The executor calls observers
// synchronously from the request's goroutine; implementations must be
// safe for concurrent use because requests run concurrently.
type Observer interface {
	AttemptStarted(requestID, identity string, index int)
	AttemptFinished(requestID string, a Attempt)
	RequestFinished(requestID string, r Result, d time.Duration)
}

// NopObserver ignores all events.
type NopObserver struct{}

// AttemptStarted does nothing.
func (NopObserver) AttemptStarted(string, string, int) {}

// AttemptFinished does nothing.
func (NopObserver) AttemptFinished(string, Attempt) {}

// RequestFinished does nothing.
func (NopObserver) RequestFinished(string, Result, time.Duration) {}

// Observers fans events out to each observer in order.
type Observers []Observer

// AttemptStarted forwards the event to each observer.
func (obs Observers) AttemptStarted(requestID, identity string, index int) {
	for _, o := range obs {
		o.AttemptStarted(requestID, identity, index)
	}
}

// AttemptFinished forwards the event to each observer.
func (obs Observers) AttemptFinished(requestID string, a Attempt) {
	for _, o := range obs {
		o.AttemptFinished(requestID, a)
	}
}

// RequestFinished forwards the event to each observer.
func (obs Observers) RequestFinished(requestID string, r Result, d time.Duration) {
	for _, o := range obs {
		o.RequestFinished(requestID, r, d)
	}
}
