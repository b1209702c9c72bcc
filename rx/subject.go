package rx

import (
	"sync"

	"github.com/roach88/rxcore/disposable"
)

// Subject is both a Stream and an Observer: events delivered to it through
// On are broadcast to every observer currently subscribed to it.
//
// Buffering and replay policies are properties of the concrete subject.
// Each is responsible for delivering at most one terminal event to each of
// its subscribers.
type Subject[T any] interface {
	Stream[T]
	Observer[T]

	// AsObserver returns the observer side of the subject.
	AsObserver() Observer[T]
}

// subscriberList holds the current subscribers of a subject in subscription
// order. Callers hold the subject's lock.
type subscriberList[T any] struct {
	nextKey uint64
	entries []subscriberEntry[T]
}

type subscriberEntry[T any] struct {
	key      uint64
	observer Observer[T]
}

func (l *subscriberList[T]) add(o Observer[T]) uint64 {
	l.nextKey++
	l.entries = append(l.entries, subscriberEntry[T]{key: l.nextKey, observer: o})
	return l.nextKey
}

func (l *subscriberList[T]) remove(key uint64) {
	for i, e := range l.entries {
		if e.key == key {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// snapshot returns the current observers; the result is safe to iterate
// after the lock is released.
func (l *subscriberList[T]) snapshot() []Observer[T] {
	out := make([]Observer[T], len(l.entries))
	for i, e := range l.entries {
		out[i] = e.observer
	}
	return out
}

func (l *subscriberList[T]) clear() {
	l.entries = nil
}

// PublishSubject broadcasts each event to the observers subscribed at the
// time it arrives. Observers that subscribe after the subject terminated
// receive the terminal event immediately.
//
// Observers are never called with the subject's lock held, so they may
// subscribe to or emit into the subject re-entrantly.
type PublishSubject[T any] struct {
	mu          sync.Mutex
	subscribers subscriberList[T]
	stop        *Event[T]
	disposed    bool
}

// NewPublishSubject returns an empty PublishSubject.
func NewPublishSubject[T any]() *PublishSubject[T] {
	return &PublishSubject[T]{}
}

// On broadcasts e. Terminal events are broadcast once and remembered; every
// event after the first terminal one is dropped.
func (s *PublishSubject[T]) On(e Event[T]) {
	s.mu.Lock()
	if s.disposed || s.stop != nil {
		s.mu.Unlock()
		return
	}
	observers := s.subscribers.snapshot()
	if e.IsStop() {
		stop := e
		s.stop = &stop
		s.subscribers.clear()
	}
	s.mu.Unlock()

	for _, o := range observers {
		o.On(e)
	}
}

// Subscribe registers o for future events. The returned handle
// unregisters it.
func (s *PublishSubject[T]) Subscribe(o Observer[T]) disposable.Disposable {
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
	key := s.subscribers.add(o)
	s.mu.Unlock()

	return disposable.Create(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subscribers.remove(key)
	})
}

// AsStream returns s.
func (s *PublishSubject[T]) AsStream() Stream[T] {
	return s
}

// AsObserver returns s.
func (s *PublishSubject[T]) AsObserver() Observer[T] {
	return s
}

// HasObservers reports whether any observer is subscribed.
func (s *PublishSubject[T]) HasObservers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers.entries) > 0
}

// Dispose releases every subscriber without notifying them. Later
// subscribers receive ErrSubjectDisposed.
func (s *PublishSubject[T]) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.subscribers.clear()
	s.stop = nil
}

// IsDisposed reports whether Dispose has been called.
func (s *PublishSubject[T]) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

var (
	_ Subject[int] = (*PublishSubject[int])(nil)
	_ Subject[int] = (*BehaviorSubject[int])(nil)
)
