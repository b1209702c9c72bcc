package rx

import "github.com/roach88/rxcore/disposable"

// Map returns a stream that applies transform to every element of src.
//
// If transform fails, the error is delivered as a single Error event and the
// subscription is torn down, upstream included. Error and Completed from src
// pass through unchanged.
//
// Mapping a stream that is itself the result of Map fuses the two stages:
// the transforms run left to right inside one sink over one upstream
// subscription, and a failure in the first skips the second. The observable
// events are identical to the unfused chain.
func Map[A, B any](src Stream[A], transform func(A) (B, error)) Stream[B] {
	if t, ok := src.(transformable[A]); ok {
		upstream := t.transformUpstream()
		return &mapStream[B]{
			upstream: func(o Observer[B]) disposable.Disposable {
				return upstream(mapObserver[A, B]{transform: transform, next: o})
			},
		}
	}

	source := src.AsStream()
	return &mapStream[B]{
		upstream: func(o Observer[B]) disposable.Disposable {
			return source.Subscribe(mapObserver[A, B]{transform: transform, next: o})
		},
	}
}

// transformable is implemented by streams whose transform chain can absorb
// another transform instead of being wrapped by a new producer.
type transformable[T any] interface {
	// transformUpstream returns a function that subscribes the original
	// source and delivers its events, already transformed to T, to an
	// observer.
	transformUpstream() func(Observer[T]) disposable.Disposable
}

// mapStream is the producer behind Map. upstream erases the element type of
// the original source so that any number of fused transforms share it.
type mapStream[R any] struct {
	upstream func(Observer[R]) disposable.Disposable
}

func (m *mapStream[R]) Subscribe(o Observer[R]) disposable.Disposable {
	return Produce[R](m, o)
}

func (m *mapStream[R]) AsStream() Stream[R] {
	return m
}

func (m *mapStream[R]) transformUpstream() func(Observer[R]) disposable.Disposable {
	return m.upstream
}

func (m *mapStream[R]) Run(o Observer[R], cancel disposable.Cancelable) (disposable.Disposable, disposable.Disposable) {
	sink := &mapSink[R]{Sink: NewSink(o, cancel)}
	subscription := m.upstream(sink)
	return sink, subscription
}

// mapSink receives already-transformed events and terminates the
// subscription on the first Error or Completed.
type mapSink[R any] struct {
	*Sink[R]
}

func (s *mapSink[R]) On(e Event[R]) {
	s.ForwardOn(e)
	if e.IsStop() {
		s.Dispose()
	}
}

// mapObserver applies one transform. A failing transform becomes an Error
// event, which later stages pass through without running their transform.
type mapObserver[A, B any] struct {
	transform func(A) (B, error)
	next      Observer[B]
}

func (m mapObserver[A, B]) On(e Event[A]) {
	switch e.Kind {
	case KindNext:
		v, err := m.transform(e.Value)
		if err != nil {
			m.next.On(Error[B](err))
			return
		}
		m.next.On(Next(v))
	case KindError:
		m.next.On(Error[B](e.Err))
	default:
		m.next.On(Completed[B]())
	}
}
