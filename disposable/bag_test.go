package disposable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rxcore/internal/testutil"
)

func TestBag_DisposesEachHandleOnce(t *testing.T) {
	bag := NewBag()

	handles := make([]*testutil.CountingDisposable, 5)
	for i := range handles {
		handles[i] = testutil.NewCountingDisposable()
		bag.Insert(handles[i])
	}
	require.Equal(t, 5, bag.Len())

	bag.Dispose()
	bag.Dispose()

	for i, h := range handles {
		assert.Equal(t, int64(1), h.Count(), "handle %d", i)
	}
	assert.True(t, bag.IsDisposed())
	assert.Equal(t, 0, bag.Len())
}

func TestBag_DisposesInInsertionOrder(t *testing.T) {
	var order []int
	bag := NewBag()
	for i := 0; i < 3; i++ {
		bag.Insert(Create(func() { order = append(order, i) }))
	}

	bag.Dispose()

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestBag_InsertAfterDispose(t *testing.T) {
	bag := NewBag()
	first := testutil.NewCountingDisposable()
	bag.Insert(first)
	bag.Dispose()

	late := testutil.NewCountingDisposable()
	bag.Insert(late)

	assert.Equal(t, int64(1), late.Count(), "late handle must be disposed immediately")
	assert.Equal(t, int64(1), first.Count(), "earlier handles are not disposed again")
	assert.Equal(t, 0, bag.Len(), "disposed bag must not grow")
}

func TestBag_ZeroValueIsActive(t *testing.T) {
	var bag Bag
	h := testutil.NewCountingDisposable()
	bag.Insert(h)

	assert.Equal(t, int64(0), h.Count())
	bag.Dispose()
	assert.Equal(t, int64(1), h.Count())
}

func TestBag_InsertNil(t *testing.T) {
	bag := NewBag()
	bag.Insert(nil)
	assert.Equal(t, 0, bag.Len())
}

func TestBag_ReentrantDispose(t *testing.T) {
	bag := NewBag()
	inner := testutil.NewCountingDisposable()

	// A handle that inserts into the same bag while the bag is tearing down.
	bag.Insert(Create(func() {
		bag.Insert(inner)
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		bag.Dispose()
	}()
	<-done

	assert.Equal(t, int64(1), inner.Count(), "insert during teardown disposes immediately")
}

func TestBag_ReentrantInsertFromDisposeOfOtherBag(t *testing.T) {
	outer := NewBag()
	inner := NewBag()
	h := testutil.NewCountingDisposable()

	outer.Insert(inner)
	inner.Insert(Create(func() {
		outer.Insert(h)
	}))

	outer.Dispose()

	assert.True(t, inner.IsDisposed())
	assert.Equal(t, int64(1), h.Count())
}

func TestBag_ConcurrentInsertAndDispose(t *testing.T) {
	const n = 200
	bag := NewBag()
	handles := make([]*testutil.CountingDisposable, n)
	for i := range handles {
		handles[i] = testutil.NewCountingDisposable()
	}

	testutil.RunConcurrently(n+1, func(i int) {
		if i == n {
			bag.Dispose()
			return
		}
		bag.Insert(handles[i])
	})
	bag.Dispose()

	for i, h := range handles {
		assert.Equal(t, int64(1), h.Count(), "handle %d", i)
	}
}

func TestDisposedBy(t *testing.T) {
	bag := NewBag()
	h := DisposedBy(testutil.NewCountingDisposable(), bag)

	assert.Equal(t, 1, bag.Len())
	bag.Dispose()
	assert.Equal(t, int64(1), h.Count())
}
