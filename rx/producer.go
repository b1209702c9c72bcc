package rx

import (
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/roach88/rxcore/diag"
	"github.com/roach88/rxcore/disposable"
	"github.com/roach88/rxcore/scheduler"
)

// Runner is implemented by every operator built on the producer protocol.
//
// Run builds the per-subscription sink that forwards to observer and
// subscribes that sink to the operator's upstream. Both returned handles
// must be non-nil. The sink must dispose cancel when it terminates on its
// own (after forwarding Error or Completed).
//
// Run must not fail: failures while producing (for example a transform
// error on the first element) are reported as Error events through the sink.
type Runner[T any] interface {
	Run(observer Observer[T], cancel disposable.Cancelable) (sink, subscription disposable.Disposable)
}

// Produce subscribes observer to r using the producer protocol and returns
// the handle that cancels the whole chain.
//
// Inside an active trampoline on the calling goroutine r runs in place;
// otherwise the call becomes the trampoline owner, runs r, and drains any
// work r queued before returning.
//
// Operators implement Subscribe as:
//
//	func (m *myOp[T]) Subscribe(o rx.Observer[T]) disposable.Disposable {
//		return rx.Produce[T](m, o)
//	}
func Produce[T any](r Runner[T], observer Observer[T]) disposable.Disposable {
	if !scheduler.CurrentGoroutine.IsScheduleRequired() {
		return run(r, observer)
	}
	return scheduler.CurrentGoroutine.Schedule(func() disposable.Disposable {
		return run(r, observer)
	})
}

func run[T any](r Runner[T], observer Observer[T]) disposable.Disposable {
	var token *cancelToken
	if diag.Enabled() {
		name := operatorName(r)
		token = newCancelToken(name)
		token.release = diag.Track(name)
	} else {
		token = newCancelToken("")
	}

	sink, subscription := r.Run(observer, token)
	token.configure(sink, subscription)
	return token
}

// operatorName derives a short operator label from the runner's type,
// e.g. *rx.mapStream[int] -> "mapStream".
func operatorName(r any) string {
	t := reflect.TypeOf(r)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

// Sink is the downstream-facing state of one producer subscription.
//
// Operator sinks embed *Sink and call ForwardOn to emit. After Dispose,
// ForwardOn drops every event, so a sink that forwards a terminal event and
// then disposes itself can never emit again.
type Sink[T any] struct {
	observer Observer[T]
	cancel   disposable.Cancelable
	disposed atomic.Bool
}

// NewSink returns a Sink forwarding to observer and owning cancel.
func NewSink[T any](observer Observer[T], cancel disposable.Cancelable) *Sink[T] {
	return &Sink[T]{observer: observer, cancel: cancel}
}

// ForwardOn delivers e downstream unless the sink is disposed.
func (s *Sink[T]) ForwardOn(e Event[T]) {
	if s.disposed.Load() {
		return
	}
	s.observer.On(e)
}

// Dispose stops forwarding and cancels the subscription (sink and upstream).
func (s *Sink[T]) Dispose() {
	s.disposed.Store(true)
	s.cancel.Dispose()
}

// IsDisposed reports whether the sink has been disposed.
func (s *Sink[T]) IsDisposed() bool {
	return s.disposed.Load()
}
