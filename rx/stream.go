package rx

import "github.com/roach88/rxcore/disposable"

// Stream is a lazily started, push-based sequence of events.
//
// Subscribe begins one independent production and returns the handle that
// cancels it. AsStream returns the canonical stream for a value that wraps
// one (for example a Subject); for plain streams it returns the receiver.
type Stream[T any] interface {
	Subscribe(observer Observer[T]) disposable.Disposable
	AsStream() Stream[T]
}

// Subscribe subscribes callbacks to s. The callbacks receive at most one
// terminal event, and none after the returned handle is disposed.
//
// Nil callbacks are skipped.
func Subscribe[T any](s Stream[T], onNext func(T), onError func(error), onCompleted func()) disposable.Disposable {
	observer := NewSafeObserver(Observe(onNext, onError, onCompleted).On)
	subscription := s.AsStream().Subscribe(observer)

	return disposable.Create(func() {
		observer.Dispose()
		subscription.Dispose()
	})
}
