// Package rxtest provides observers for testing rx pipelines.
package rxtest

import (
	"sync"

	"github.com/roach88/rxcore/rx"
)

// Recorder records every event it observes.
//
// Recorder is safe under concurrent On calls.
type Recorder[T any] struct {
	mu     sync.Mutex
	events []rx.Event[T]
}

// NewRecorder constructs an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

// On appends e.
func (r *Recorder[T]) On(e rx.Event[T]) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a snapshot copy of recorded events.
func (r *Recorder[T]) Events() []rx.Event[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]rx.Event[T], len(r.events))
	copy(cp, r.events)
	return cp
}

// Values returns the values of the recorded next events, in order.
func (r *Recorder[T]) Values() []T {
	evs := r.Events()
	out := make([]T, 0, len(evs))
	for _, e := range evs {
		if e.Kind == rx.KindNext {
			out = append(out, e.Value)
		}
	}
	return out
}

// Terminals returns the number of recorded error and completed events.
func (r *Recorder[T]) Terminals() int {
	n := 0
	for _, e := range r.Events() {
		if e.IsStop() {
			n++
		}
	}
	return n
}

// Err returns the error of the first recorded error event, or nil.
func (r *Recorder[T]) Err() error {
	for _, e := range r.Events() {
		if e.Kind == rx.KindError {
			return e.Err
		}
	}
	return nil
}

// Completed reports whether a completed event was recorded.
func (r *Recorder[T]) Completed() bool {
	for _, e := range r.Events() {
		if e.Kind == rx.KindCompleted {
			return true
		}
	}
	return false
}

// Reset clears the recorder.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
