package scheduler

import "github.com/roach88/rxcore/disposable"

// Action is a unit of scheduled work. The returned handle, if any, is
// disposed when the scheduled item is disposed after it has run.
type Action func() disposable.Disposable

// Scheduler schedules actions for execution.
//
// The returned handle cancels the action if it has not run yet, and disposes
// the action's own handle if it has.
type Scheduler interface {
	Schedule(action Action) disposable.Disposable
}

// Immediate runs every action inline on the calling goroutine.
var Immediate Scheduler = immediateScheduler{}

type immediateScheduler struct{}

func (immediateScheduler) Schedule(action Action) disposable.Disposable {
	if d := action(); d != nil {
		return d
	}
	return disposable.Nop()
}
