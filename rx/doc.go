// Package rx implements a push-based reactive stream runtime.
//
// A Stream is a lazily started description of how to push Events to an
// Observer. Nothing happens until Subscribe is called, and every subscription
// is an independent production. Subscribe returns a disposable.Disposable
// that cancels the subscription and every upstream subscription it made.
//
// ARCHITECTURE:
//
// Producer protocol:
// Every operator in this package is a Runner driven by Produce. Subscribing
// runs the operator on the calling goroutine's trampoline
// (scheduler.CurrentGoroutine), builds a per-subscription Sink plus the
// upstream subscription, and registers both on a cancellation token. The
// token is what Subscribe returns.
//
// Cancellation token:
// Setup ("configure") and external cancel ("dispose") may race. The token
// reconciles them with a compare-and-swap state machine so that the sink and
// the upstream subscription are each disposed exactly once, whichever comes
// first. No lock is ever held while user code runs.
//
// Terminal-once:
// A subscription delivers at most one terminal event (Error or Completed).
// Sinks stop forwarding once disposed, and SafeObserver guards user
// callbacks against sources that misbehave.
//
// GUARANTEES:
//
//   - The runtime spawns no goroutines and never blocks.
//   - Nested synchronous subscriptions on one goroutine run in issuance
//     order through the trampoline, not by recursion.
//   - Cancellation is cooperative: a source emitting on another goroutine
//     may deliver one more event after a racing Dispose, but never a second
//     terminal event.
//
// CONCURRENCY POLICY:
//
// The runtime does not serialize calls into an observer. Sources must emit
// serially (one On call at a time per subscription). A source that emits
// from several goroutines should wrap its observer with Synchronize.
//
// Contract violations by operator authors (configuring a token twice,
// returning nil handles from Run) panic with a *ContractError. Data errors
// travel through the stream as Error events and are never returned from
// Subscribe.
package rx
