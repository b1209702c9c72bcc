package rx

import "github.com/roach88/rxcore/disposable"

// Filter returns a stream of the elements of src that satisfy predicate.
// A failing predicate terminates the subscription with its error.
func Filter[T any](src Stream[T], predicate func(T) (bool, error)) Stream[T] {
	return &filterStream[T]{source: src.AsStream(), predicate: predicate}
}

type filterStream[T any] struct {
	source    Stream[T]
	predicate func(T) (bool, error)
}

func (f *filterStream[T]) Subscribe(o Observer[T]) disposable.Disposable {
	return Produce[T](f, o)
}

func (f *filterStream[T]) AsStream() Stream[T] {
	return f
}

func (f *filterStream[T]) Run(o Observer[T], cancel disposable.Cancelable) (disposable.Disposable, disposable.Disposable) {
	sink := &filterSink[T]{Sink: NewSink(o, cancel), predicate: f.predicate}
	subscription := f.source.Subscribe(sink)
	return sink, subscription
}

type filterSink[T any] struct {
	*Sink[T]
	predicate func(T) (bool, error)
}

func (s *filterSink[T]) On(e Event[T]) {
	if e.Kind == KindNext {
		ok, err := s.predicate(e.Value)
		if err != nil {
			s.ForwardOn(Error[T](err))
			s.Dispose()
			return
		}
		if ok {
			s.ForwardOn(e)
		}
		return
	}

	s.ForwardOn(e)
	s.Dispose()
}
