package rx

import "github.com/roach88/rxcore/disposable"

// Scan returns a stream of running accumulations: each element of src is
// folded into the accumulator, starting from seed, and the new accumulator
// is emitted. A failing accumulator terminates the subscription.
//
// Every subscription starts again from seed.
func Scan[T, S any](src Stream[T], seed S, accumulate func(S, T) (S, error)) Stream[S] {
	return &scanStream[T, S]{source: src.AsStream(), seed: seed, accumulate: accumulate}
}

type scanStream[T, S any] struct {
	source     Stream[T]
	seed       S
	accumulate func(S, T) (S, error)
}

func (s *scanStream[T, S]) Subscribe(o Observer[S]) disposable.Disposable {
	return Produce[S](s, o)
}

func (s *scanStream[T, S]) AsStream() Stream[S] {
	return s
}

func (s *scanStream[T, S]) Run(o Observer[S], cancel disposable.Cancelable) (disposable.Disposable, disposable.Disposable) {
	sink := &scanSink[T, S]{Sink: NewSink(o, cancel), acc: s.seed, accumulate: s.accumulate}
	subscription := s.source.Subscribe(sink)
	return sink, subscription
}

type scanSink[T, S any] struct {
	*Sink[S]
	acc        S
	accumulate func(S, T) (S, error)
}

func (s *scanSink[T, S]) On(e Event[T]) {
	switch e.Kind {
	case KindNext:
		acc, err := s.accumulate(s.acc, e.Value)
		if err != nil {
			s.ForwardOn(Error[S](err))
			s.Dispose()
			return
		}
		s.acc = acc
		s.ForwardOn(Next(acc))
	case KindError:
		s.ForwardOn(Error[S](e.Err))
		s.Dispose()
	default:
		s.ForwardOn(Completed[S]())
		s.Dispose()
	}
}
