package scheduler

import (
	"sync"

	"github.com/roach88/rxcore/disposable"
)

// CurrentGoroutine is the process-wide trampoline scheduler.
var CurrentGoroutine = &TrampolineScheduler{}

// TrampolineScheduler runs actions on the calling goroutine, serializing
// nested scheduling through a per-goroutine queue.
//
// Thread-safety: safe for concurrent use. Each goroutine gets its own queue;
// queues are never shared.
type TrampolineScheduler struct {
	queues sync.Map // goroutine id -> *actionQueue
}

// IsScheduleRequired reports whether the calling goroutine has no active
// trampoline. When it returns false the caller is already running inside a
// trampoline action and may execute work in place.
func (s *TrampolineScheduler) IsScheduleRequired() bool {
	_, active := s.queues.Load(goid())
	return !active
}

// Schedule runs action on the calling goroutine's trampoline.
//
// Without an active trampoline the caller becomes its owner: action runs
// inline, then every action queued while it ran is drained in FIFO order
// before Schedule returns. The handle returned in that case is action's own.
//
// With an active trampoline action is queued behind the current work and
// the returned handle cancels it (or disposes its result once it has run).
func (s *TrampolineScheduler) Schedule(action Action) disposable.Disposable {
	id := goid()

	if q, active := s.queues.Load(id); active {
		item := newScheduledItem(action)
		q.(*actionQueue).enqueue(item)
		return item
	}

	q := newActionQueue()
	s.queues.Store(id, q)
	defer s.queues.Delete(id)

	result := action()

	for {
		item, ok := q.dequeue()
		if !ok {
			break
		}
		item.invoke()
	}

	if result == nil {
		return disposable.Nop()
	}
	return result
}

// Pending returns the number of actions queued on the calling goroutine's
// trampoline, or zero when none is active.
func (s *TrampolineScheduler) Pending() int {
	q, active := s.queues.Load(goid())
	if !active {
		return 0
	}
	return q.(*actionQueue).len()
}
