package testutil

import (
	"sync"
	"sync/atomic"
)

// CountingDisposable counts how many times Dispose is called.
//
// Unlike the handles in package disposable, it is deliberately not
// idempotent, so tests can assert that a component disposes it exactly once.
//
// Thread-safety: safe for concurrent use.
type CountingDisposable struct {
	calls   atomic.Int64
	onCount func(n int64)
}

// NewCountingDisposable creates a counter with zero calls.
func NewCountingDisposable() *CountingDisposable {
	return &CountingDisposable{}
}

// OnDispose registers fn to run on every Dispose call with the new count.
// Must be set before the disposable is shared.
func (c *CountingDisposable) OnDispose(fn func(n int64)) *CountingDisposable {
	c.onCount = fn
	return c
}

// Dispose increments the call count.
func (c *CountingDisposable) Dispose() {
	n := c.calls.Add(1)
	if c.onCount != nil {
		c.onCount(n)
	}
}

// Count returns how many times Dispose has been called.
func (c *CountingDisposable) Count() int64 {
	return c.calls.Load()
}

// RunConcurrently runs fn on n goroutines released at the same instant and
// waits for all of them to return.
func RunConcurrently(n int, fn func(i int)) {
	var ready, done sync.WaitGroup
	start := make(chan struct{})

	ready.Add(n)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer done.Done()
			ready.Done()
			<-start
			fn(i)
		}()
	}

	ready.Wait()
	close(start)
	done.Wait()
}
