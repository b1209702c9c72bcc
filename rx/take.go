package rx

import "github.com/roach88/rxcore/disposable"

// Take returns a stream of the first count elements of src. After the
// count-th element it completes and cancels the upstream subscription.
// Take with count <= 0 completes without subscribing to src.
func Take[T any](src Stream[T], count int) Stream[T] {
	if count <= 0 {
		return Empty[T]()
	}
	return &takeStream[T]{source: src.AsStream(), count: count}
}

type takeStream[T any] struct {
	source Stream[T]
	count  int
}

func (t *takeStream[T]) Subscribe(o Observer[T]) disposable.Disposable {
	return Produce[T](t, o)
}

func (t *takeStream[T]) AsStream() Stream[T] {
	return t
}

func (t *takeStream[T]) Run(o Observer[T], cancel disposable.Cancelable) (disposable.Disposable, disposable.Disposable) {
	sink := &takeSink[T]{Sink: NewSink(o, cancel), remaining: t.count}
	subscription := t.source.Subscribe(sink)
	return sink, subscription
}

type takeSink[T any] struct {
	*Sink[T]
	remaining int
}

func (s *takeSink[T]) On(e Event[T]) {
	if e.Kind == KindNext {
		if s.remaining <= 0 {
			return
		}
		s.remaining--
		s.ForwardOn(e)
		if s.remaining == 0 {
			s.ForwardOn(Completed[T]())
			s.Dispose()
		}
		return
	}

	s.ForwardOn(e)
	s.Dispose()
}
