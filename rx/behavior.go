package rx

import (
	"sync"
	"sync/atomic"

	"github.com/roach88/rxcore/disposable"
)

// BehaviorSubject is a subject that remembers its latest value and replays
// it to every new subscriber before forwarding later events.
//
// Every delivery (a replay or a broadcast) is queued under the state lock and
// drained in queue order by one goroutine at a time, outside the lock. A
// subscriber therefore sees its replayed value before any event emitted
// after it subscribed, and never sees an older value after a newer one. When
// another goroutine is already draining, On and Subscribe may return before
// their deliveries have been made; the draining goroutine makes them.
type BehaviorSubject[T any] struct {
	mu          sync.Mutex
	subscribers subscriberList[T]
	value       T
	stop        *Event[T]
	disposed    bool

	pending  []delivery[T]
	draining bool
}

type delivery[T any] struct {
	targets []Observer[T]
	event   Event[T]
}

// behaviorSubscription filters deliveries that were queued before the
// subscription was disposed.
type behaviorSubscription[T any] struct {
	observer Observer[T]
	active   atomic.Bool
}

func (b *behaviorSubscription[T]) On(e Event[T]) {
	if b.active.Load() {
		b.observer.On(e)
	}
}

// NewBehaviorSubject returns a BehaviorSubject holding initial.
func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	return &BehaviorSubject[T]{value: initial}
}

// On records next values and broadcasts e to current subscribers.
func (s *BehaviorSubject[T]) On(e Event[T]) {
	s.mu.Lock()
	if s.disposed || s.stop != nil {
		s.mu.Unlock()
		return
	}
	if e.Kind == KindNext {
		s.value = e.Value
	}
	targets := s.subscribers.snapshot()
	if e.IsStop() {
		stop := e
		s.stop = &stop
		s.subscribers.clear()
	}
	s.enqueueLocked(targets, e)
	s.mu.Unlock()

	s.drain()
}

// Subscribe delivers the latest value to o and registers it for future
// events. A terminated subject delivers only its terminal event.
func (s *BehaviorSubject[T]) Subscribe(o Observer[T]) disposable.Disposable {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		o.On(Error[T](ErrSubjectDisposed))
		return disposable.Nop()
	}
	if s.stop != nil {
		stop := *s.stop
		s.mu.Unlock()
		o.On(stop)
		return disposable.Nop()
	}
	sub := &behaviorSubscription[T]{observer: o}
	sub.active.Store(true)
	key := s.subscribers.add(sub)
	s.enqueueLocked([]Observer[T]{sub}, Next(s.value))
	s.mu.Unlock()

	s.drain()

	return disposable.Create(func() {
		sub.active.Store(false)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subscribers.remove(key)
	})
}

func (s *BehaviorSubject[T]) enqueueLocked(targets []Observer[T], e Event[T]) {
	if len(targets) == 0 {
		return
	}
	s.pending = append(s.pending, delivery[T]{targets: targets, event: e})
}

// drain delivers queued events unless another call is already doing so.
// Re-entrant calls from an observer return at once; their deliveries are
// made by the outer loop after the current one.
func (s *BehaviorSubject[T]) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for {
		if s.disposed || len(s.pending) == 0 {
			s.pending = nil
			s.draining = false
			s.mu.Unlock()
			return
		}
		d := s.pending[0]
		s.pending[0] = delivery[T]{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.deliver(d)

		s.mu.Lock()
	}
}

// deliver calls the targets of d. If an observer panics the drain state is
// reset so the subject stays usable.
func (s *BehaviorSubject[T]) deliver(d delivery[T]) {
	ok := false
	defer func() {
		if !ok {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
		}
	}()
	for _, o := range d.targets {
		o.On(d.event)
	}
	ok = true
}

// Value returns the latest value. It returns the terminal error if the
// subject failed, or ErrSubjectDisposed after Dispose.
func (s *BehaviorSubject[T]) Value() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		var zero T
		return zero, ErrSubjectDisposed
	}
	if s.stop != nil && s.stop.Kind == KindError {
		var zero T
		return zero, s.stop.Err
	}
	return s.value, nil
}

// AsStream returns s.
func (s *BehaviorSubject[T]) AsStream() Stream[T] {
	return s
}

// AsObserver returns s.
func (s *BehaviorSubject[T]) AsObserver() Observer[T] {
	return s
}

// Dispose releases every subscriber without notifying them and drops
// deliveries that have not been made yet.
func (s *BehaviorSubject[T]) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.subscribers.clear()
	s.pending = nil
	s.stop = nil
	var zero T
	s.value = zero
}
