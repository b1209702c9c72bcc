package disposable

import (
	"sync"
	"sync/atomic"
)

// Disposable releases a resource.
type Disposable interface {
	Dispose()
}

// Cancelable is a Disposable that can report whether it has been disposed.
//
// IsDisposed is a point-in-time answer and may be stale as soon as it
// returns when other goroutines are disposing concurrently.
type Cancelable interface {
	Disposable
	IsDisposed() bool
}

// Create returns a Cancelable that runs action the first time it is disposed.
// A nil action yields a handle that only tracks the disposed state.
func Create(action func()) Cancelable {
	return &anonymous{action: action}
}

type anonymous struct {
	once     sync.Once
	disposed atomic.Bool
	action   func()
}

func (a *anonymous) Dispose() {
	a.once.Do(func() {
		a.disposed.Store(true)
		action := a.action
		a.action = nil
		if action != nil {
			action()
		}
	})
}

func (a *anonymous) IsDisposed() bool {
	return a.disposed.Load()
}

// Nop returns a Disposable that does nothing.
func Nop() Disposable {
	return nopDisposable{}
}

type nopDisposable struct{}

func (nopDisposable) Dispose() {}

// Boolean is a Cancelable that only records whether it was disposed.
type Boolean struct {
	disposed atomic.Bool
}

// NewBoolean returns an undisposed Boolean.
func NewBoolean() *Boolean {
	return &Boolean{}
}

// Dispose marks b disposed.
func (b *Boolean) Dispose() {
	b.disposed.Store(true)
}

// IsDisposed reports whether Dispose has been called.
func (b *Boolean) IsDisposed() bool {
	return b.disposed.Load()
}
