package rx_test

import (
	"github.com/roach88/rxcore/disposable"
	"github.com/roach88/rxcore/rx"
)

// opaque hides the concrete type of a stream, preventing Map fusion.
type opaque[T any] struct {
	inner rx.Stream[T]
}

func (o opaque[T]) Subscribe(observer rx.Observer[T]) disposable.Disposable {
	return o.inner.Subscribe(observer)
}

func (o opaque[T]) AsStream() rx.Stream[T] {
	return o
}

func square(x int) (int, error) {
	return x * x, nil
}
