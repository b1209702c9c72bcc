package scheduler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rxcore/disposable"
	"github.com/roach88/rxcore/internal/testutil"
)

func TestGoid_StablePerGoroutine(t *testing.T) {
	a := goid()
	b := goid()
	assert.Equal(t, a, b)

	var other uint64
	done := make(chan struct{})
	go func() {
		defer close(done)
		other = goid()
	}()
	<-done

	assert.NotEqual(t, a, other)
}

func TestTrampoline_RunsInlineWhenIdle(t *testing.T) {
	s := &TrampolineScheduler{}
	require.True(t, s.IsScheduleRequired())

	ran := false
	s.Schedule(func() disposable.Disposable {
		ran = true
		assert.False(t, s.IsScheduleRequired(), "trampoline must be active inside an action")
		return nil
	})

	assert.True(t, ran)
	assert.True(t, s.IsScheduleRequired(), "trampoline must be released after draining")
}

func TestTrampoline_NestedActionsRunInIssuanceOrder(t *testing.T) {
	s := &TrampolineScheduler{}
	var log []string

	s.Schedule(func() disposable.Disposable {
		log = append(log, "outer:start")
		s.Schedule(func() disposable.Disposable {
			log = append(log, "first")
			s.Schedule(func() disposable.Disposable {
				log = append(log, "third")
				return nil
			})
			return nil
		})
		s.Schedule(func() disposable.Disposable {
			log = append(log, "second")
			return nil
		})
		assert.Equal(t, 2, s.Pending())
		log = append(log, "outer:end")
		return nil
	})

	assert.Equal(t, []string{"outer:start", "outer:end", "first", "second", "third"}, log)
	assert.Equal(t, 0, s.Pending())
}

func TestTrampoline_CancelQueuedAction(t *testing.T) {
	s := &TrampolineScheduler{}
	ran := false

	s.Schedule(func() disposable.Disposable {
		h := s.Schedule(func() disposable.Disposable {
			ran = true
			return nil
		})
		h.Dispose()
		return nil
	})

	assert.False(t, ran, "disposed queued action must not run")
}

func TestTrampoline_DisposeAfterRunDisposesResult(t *testing.T) {
	s := &TrampolineScheduler{}
	result := testutil.NewCountingDisposable()

	var queued disposable.Disposable
	s.Schedule(func() disposable.Disposable {
		queued = s.Schedule(func() disposable.Disposable {
			return result
		})
		return nil
	})

	require.NotNil(t, queued)
	assert.Equal(t, int64(0), result.Count())

	queued.Dispose()
	queued.Dispose()
	assert.Equal(t, int64(1), result.Count())
}

func TestTrampoline_OwnerResultReturned(t *testing.T) {
	s := &TrampolineScheduler{}
	result := testutil.NewCountingDisposable()

	h := s.Schedule(func() disposable.Disposable { return result })
	h.Dispose()

	assert.Equal(t, int64(1), result.Count())
}

func TestTrampoline_PanicReleasesTrampoline(t *testing.T) {
	s := &TrampolineScheduler{}

	assert.Panics(t, func() {
		s.Schedule(func() disposable.Disposable {
			panic("boom")
		})
	})

	assert.True(t, s.IsScheduleRequired())
}

func TestTrampoline_GoroutinesAreIndependent(t *testing.T) {
	s := &TrampolineScheduler{}
	const goroutines = 16

	var wg sync.WaitGroup
	results := make([][]int, goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Schedule(func() disposable.Disposable {
				for i := 0; i < 3; i++ {
					s.Schedule(func() disposable.Disposable {
						results[g] = append(results[g], i)
						return nil
					})
				}
				return nil
			})
		}()
	}
	wg.Wait()

	for g := 0; g < goroutines; g++ {
		assert.Equal(t, []int{0, 1, 2}, results[g], "goroutine %d", g)
	}
}
