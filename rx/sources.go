package rx

import (
	"github.com/roach88/rxcore/disposable"
	"github.com/roach88/rxcore/scheduler"
)

// Of returns a stream that emits values in order and completes.
func Of[T any](values ...T) Stream[T] {
	return From(values)
}

// From returns a stream that emits the elements of values in order and
// completes. The slice is copied.
//
// Elements are emitted one per trampoline step on the subscribing
// goroutine, so several Of/From streams subscribed from inside another
// emission interleave in subscription order instead of nesting.
func From[T any](values []T) Stream[T] {
	cp := make([]T, len(values))
	copy(cp, values)
	return &sequence[T]{values: cp}
}

type sequence[T any] struct {
	values []T
}

func (s *sequence[T]) Subscribe(o Observer[T]) disposable.Disposable {
	return Produce[T](s, o)
}

func (s *sequence[T]) AsStream() Stream[T] {
	return s
}

func (s *sequence[T]) Run(o Observer[T], cancel disposable.Cancelable) (disposable.Disposable, disposable.Disposable) {
	sink := &sequenceSink[T]{Sink: NewSink(o, cancel), values: s.values}
	subscription := scheduler.CurrentGoroutine.Schedule(sink.step)
	return sink, subscription
}

type sequenceSink[T any] struct {
	*Sink[T]
	values []T
	index  int
}

// step emits one element and schedules the next step, or completes.
func (s *sequenceSink[T]) step() disposable.Disposable {
	if s.IsDisposed() {
		return nil
	}

	if s.index < len(s.values) {
		v := s.values[s.index]
		s.index++
		s.ForwardOn(Next(v))
		scheduler.CurrentGoroutine.Schedule(s.step)
		return nil
	}

	s.ForwardOn(Completed[T]())
	s.Dispose()
	return nil
}

// Create returns a stream whose subscriptions run subscribe.
//
// The observer handed to subscribe enforces the terminal-once rule: events
// after the first Error or Completed, or after the subscription is disposed,
// are dropped. The handle subscribe returns is disposed when the
// subscription ends.
func Create[T any](subscribe func(Observer[T]) disposable.Disposable) Stream[T] {
	return &anonymousStream[T]{subscribe: subscribe}
}

type anonymousStream[T any] struct {
	subscribe func(Observer[T]) disposable.Disposable
}

func (a *anonymousStream[T]) Subscribe(o Observer[T]) disposable.Disposable {
	return Produce[T](a, o)
}

func (a *anonymousStream[T]) AsStream() Stream[T] {
	return a
}

func (a *anonymousStream[T]) Run(o Observer[T], cancel disposable.Cancelable) (disposable.Disposable, disposable.Disposable) {
	sink := &anonymousSink[T]{Sink: NewSink(o, cancel)}
	sink.guard = NewSafeObserver(sink.forward)
	subscription := a.subscribe(sink)
	if subscription == nil {
		subscription = disposable.Nop()
	}
	return sink, subscription
}

type anonymousSink[T any] struct {
	*Sink[T]
	guard *SafeObserver[T]
}

func (s *anonymousSink[T]) On(e Event[T]) {
	s.guard.On(e)
}

func (s *anonymousSink[T]) forward(e Event[T]) {
	s.ForwardOn(e)
	if e.IsStop() {
		s.Dispose()
	}
}

// Empty returns a stream that completes immediately.
func Empty[T any]() Stream[T] {
	return Create(func(o Observer[T]) disposable.Disposable {
		o.On(Completed[T]())
		return disposable.Nop()
	})
}

// Never returns a stream that emits nothing and never terminates.
func Never[T any]() Stream[T] {
	return Create(func(Observer[T]) disposable.Disposable {
		return disposable.Nop()
	})
}

// Fail returns a stream that terminates immediately with err.
func Fail[T any](err error) Stream[T] {
	return Create(func(o Observer[T]) disposable.Disposable {
		o.On(Error[T](err))
		return disposable.Nop()
	})
}
