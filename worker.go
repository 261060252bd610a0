package swkit

import (
	"context"
	"sync/atomic"
)

// Worker is the event-driven core. One handler method exists per event
// kind; the hosting adapter dispatches each platform event to exactly one
// handler invocation and treats the call's return as the event's
// settlement. Handlers of different kinds carry no ordering guarantee
// relative to one another, and fetch handlers may run concurrently - the
// store tolerates concurrent match/put on the same key (last put wins).
type Worker struct {
	version  string
	manifest []string
	siteRoot string

	store    *store
	fetcher  Fetcher
	renderer Renderer
	windows  WindowClient
	sync     Backend

	defaults Payload

	log   Logger
	hooks Hooks

	state atomic.Int32
}

// Version returns the generation tag this worker serves.
func (w *Worker) Version() string { return w.version }

// State reports the lifecycle state. Safe to call from any goroutine.
func (w *Worker) State() State { return State(w.state.Load()) }

func (w *Worker) setState(s State) { w.state.Store(int32(s)) }

// transition moves from->to atomically; any other current state is an error.
func (w *Worker) transition(from, to State) error {
	if !w.state.CompareAndSwap(int32(from), int32(to)) {
		return &TransitionError{From: w.State(), To: to}
	}
	return nil
}

// Close releases the store's resources (registry first, then provider).
// The worker must not receive events after Close.
func (w *Worker) Close(ctx context.Context) error {
	w.setState(StateRedundant)
	return w.store.close(ctx)
}
