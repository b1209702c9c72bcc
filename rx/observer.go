package rx

import (
	"sync"
	"sync/atomic"
)

// Observer receives the events of one subscription.
type Observer[T any] interface {
	On(e Event[T])
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc[T any] func(e Event[T])

// On calls f(e).
func (f ObserverFunc[T]) On(e Event[T]) {
	f(e)
}

// Observe builds an Observer from per-kind callbacks. Nil callbacks are
// skipped.
func Observe[T any](onNext func(T), onError func(error), onCompleted func()) Observer[T] {
	return ObserverFunc[T](func(e Event[T]) {
		switch e.Kind {
		case KindNext:
			if onNext != nil {
				onNext(e.Value)
			}
		case KindError:
			if onError != nil {
				onError(e.Err)
			}
		case KindCompleted:
			if onCompleted != nil {
				onCompleted()
			}
		}
	})
}

// SafeObserver forwards events to a handler and guarantees the handler sees
// at most one terminal event, no matter how many the source emits.
//
// Next events are forwarded only while the observer is not stopped. The first
// Error or Completed stops it and is forwarded; later terminal events are
// dropped. Dispose stops it without forwarding anything.
type SafeObserver[T any] struct {
	stopped atomic.Bool
	handler func(Event[T])
}

// NewSafeObserver returns a SafeObserver forwarding to handler.
func NewSafeObserver[T any](handler func(Event[T])) *SafeObserver[T] {
	return &SafeObserver[T]{handler: handler}
}

// On forwards e subject to the terminal-once rule.
func (o *SafeObserver[T]) On(e Event[T]) {
	if e.Kind == KindNext {
		if !o.stopped.Load() {
			o.handler(e)
		}
		return
	}
	if o.stopped.CompareAndSwap(false, true) {
		o.handler(e)
	}
}

// Dispose stops the observer without delivering a terminal event.
func (o *SafeObserver[T]) Dispose() {
	o.stopped.Store(true)
}

// IsDisposed reports whether the observer has stopped, either by a terminal
// event or by Dispose.
func (o *SafeObserver[T]) IsDisposed() bool {
	return o.stopped.Load()
}

// Synchronize wraps o so that concurrent On calls are delivered one at a
// time. Use it for sources that emit from more than one goroutine.
func Synchronize[T any](o Observer[T]) Observer[T] {
	return &syncObserver[T]{next: o}
}

type syncObserver[T any] struct {
	mu   sync.Mutex
	next Observer[T]
}

func (s *syncObserver[T]) On(e Event[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next.On(e)
}
