package disposable

import "sync"

// Bag is a thread-safe container that disposes every inserted handle once.
//
// The zero value is an active, empty bag.
//
// The internal lock is never held while user disposal code runs, so a
// handle's Dispose may call back into the same bag (or any other bag)
// without deadlocking.
type Bag struct {
	mu          sync.Mutex
	disposables []Disposable
	disposed    bool
}

// NewBag returns an active, empty bag.
func NewBag() *Bag {
	return &Bag{}
}

// Insert adds d to the bag.
//
// If the bag has already been disposed, d is disposed immediately and is
// not stored.
func (b *Bag) Insert(d Disposable) {
	if d == nil {
		return
	}
	if late := b.insert(d); late != nil {
		late.Dispose()
	}
}

func (b *Bag) insert(d Disposable) Disposable {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return d
	}

	b.disposables = append(b.disposables, d)
	return nil
}

// Dispose disposes every stored handle in insertion order and marks the bag
// disposed. Later calls are no-ops.
func (b *Bag) Dispose() {
	for _, d := range b.takeAll() {
		d.Dispose()
	}
}

// takeAll snapshots and clears the stored handles under the lock.
func (b *Bag) takeAll() []Disposable {
	b.mu.Lock()
	defer b.mu.Unlock()

	disposables := b.disposables
	b.disposables = nil
	b.disposed = true

	return disposables
}

// IsDisposed reports whether Dispose has been called.
func (b *Bag) IsDisposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}

// Len returns the number of handles currently held.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.disposables)
}

// DisposedBy inserts d into bag and returns d, so subscriptions can be
// registered inline:
//
//	disposable.DisposedBy(stream.Subscribe(obs), bag)
func DisposedBy[D Disposable](d D, bag *Bag) D {
	bag.Insert(d)
	return d
}
