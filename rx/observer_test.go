package rx_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/rxcore/internal/testutil"
	"github.com/roach88/rxcore/rx"
	"github.com/roach88/rxcore/rx/rxtest"
)

func TestSafeObserver_TerminalOnce(t *testing.T) {
	terminals := []struct {
		name  string
		first rx.Event[int]
		rest  []rx.Event[int]
	}{
		{"completed first", rx.Completed[int](), []rx.Event[int]{rx.Error[int](errors.New("late")), rx.Completed[int]()}},
		{"error first", rx.Error[int](errors.New("boom")), []rx.Event[int]{rx.Completed[int](), rx.Error[int](errors.New("late"))}},
	}

	for _, tt := range terminals {
		t.Run(tt.name, func(t *testing.T) {
			rec := rxtest.NewRecorder[int]()
			obs := rx.NewSafeObserver(rec.On)

			for i := 1; i <= 3; i++ {
				obs.On(rx.Next(i))
			}
			obs.On(tt.first)
			for _, e := range tt.rest {
				obs.On(e)
			}
			obs.On(rx.Next(99))

			assert.Equal(t, []int{1, 2, 3}, rec.Values())
			assert.Equal(t, 1, rec.Terminals())
			assert.Equal(t, tt.first.Kind, rec.Events()[3].Kind)
		})
	}
}

func TestSafeObserver_DisposeSuppressesEverything(t *testing.T) {
	rec := rxtest.NewRecorder[int]()
	obs := rx.NewSafeObserver(rec.On)

	obs.On(rx.Next(1))
	obs.Dispose()
	obs.On(rx.Next(2))
	obs.On(rx.Completed[int]())

	assert.Equal(t, []int{1}, rec.Values())
	assert.Equal(t, 0, rec.Terminals(), "dispose must not produce a terminal event")
	assert.True(t, obs.IsDisposed())
}

func TestSafeObserver_ConcurrentTerminals(t *testing.T) {
	rec := rxtest.NewRecorder[int]()
	obs := rx.NewSafeObserver(rec.On)

	testutil.RunConcurrently(32, func(i int) {
		if i%2 == 0 {
			obs.On(rx.Completed[int]())
		} else {
			obs.On(rx.Error[int](errors.New("boom")))
		}
	})

	assert.Equal(t, 1, rec.Terminals())
}

func TestObserve_DispatchesByKind(t *testing.T) {
	var values []int
	var gotErr error
	completed := false

	obs := rx.Observe(
		func(v int) { values = append(values, v) },
		func(err error) { gotErr = err },
		func() { completed = true },
	)

	obs.On(rx.Next(1))
	obs.On(rx.Error[int](errors.New("boom")))
	obs.On(rx.Completed[int]())

	assert.Equal(t, []int{1}, values)
	assert.EqualError(t, gotErr, "boom")
	assert.True(t, completed)
}

func TestObserve_NilCallbacks(t *testing.T) {
	obs := rx.Observe[int](nil, nil, nil)
	assert.NotPanics(t, func() {
		obs.On(rx.Next(1))
		obs.On(rx.Error[int](errors.New("x")))
		obs.On(rx.Completed[int]())
	})
}

func TestSynchronize_SerializesCalls(t *testing.T) {
	var mu sync.Mutex
	inside := 0
	maxInside := 0
	count := 0

	obs := rx.Synchronize[int](rx.ObserverFunc[int](func(rx.Event[int]) {
		mu.Lock()
		inside++
		if inside > maxInside {
			maxInside = inside
		}
		mu.Unlock()

		count++ // guarded only by Synchronize

		mu.Lock()
		inside--
		mu.Unlock()
	}))

	testutil.RunConcurrently(50, func(i int) {
		obs.On(rx.Next(i))
	})

	assert.Equal(t, 1, maxInside)
	assert.Equal(t, 50, count)
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "next(4)", rx.Next(4).String())
	assert.Equal(t, "error(boom)", rx.Error[int](errors.New("boom")).String())
	assert.Equal(t, "completed", rx.Completed[int]().String())
	assert.Equal(t, "EventKind(9)", rx.EventKind(9).String())
	assert.True(t, rx.Completed[int]().IsStop())
	assert.False(t, rx.Next(1).IsStop())
}
