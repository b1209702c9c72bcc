// Package disposable implements resource handles for the rx runtime.
//
// A Disposable releases whatever a subscription or aggregate of subscriptions
// holds: stopping timers, unregistering callbacks, dropping references.
// A Cancelable additionally reports whether it has been disposed.
//
// Every handle in this package is idempotent: disposing it more than once
// has no effect beyond the first call.
//
// Bag aggregates handles and releases them together, exactly once. Go has no
// destructors, so the bag's owner disposes it explicitly when its scope ends.
// A bag that has already been disposed never retains a newly inserted handle;
// it disposes the handle immediately instead.
package disposable
