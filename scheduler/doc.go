// Package scheduler provides the execution-context capability used by the rx
// producer protocol.
//
// The runtime creates no goroutines of its own. The only scheduler it needs
// is a trampoline: a per-goroutine serial work queue that flattens nested
// synchronous work into issuance order instead of recursing.
//
// CurrentGoroutine is that trampoline. The first Schedule call on a goroutine
// becomes the trampoline owner: it runs its action inline and then drains
// every action enqueued meanwhile, in FIFO order. Schedule calls made while
// the owner is running (re-entrantly, on the same goroutine) are queued and
// run after the current action returns.
//
// Concrete thread pools, timers and UI main-loop integration are left to the
// embedding application; anything implementing Scheduler can be plugged in.
package scheduler
