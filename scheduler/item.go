package scheduler

import (
	"sync"

	"github.com/roach88/rxcore/disposable"
)

// scheduledItem is a queued action plus the handle it produced once run.
type scheduledItem struct {
	mu       sync.Mutex
	action   Action
	result   disposable.Disposable
	disposed bool
}

func newScheduledItem(action Action) *scheduledItem {
	return &scheduledItem{action: action}
}

// invoke runs the action unless the item was disposed first.
func (s *scheduledItem) invoke() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	action := s.action
	s.action = nil
	s.mu.Unlock()

	result := action()
	if result == nil {
		return
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		result.Dispose()
		return
	}
	s.result = result
	s.mu.Unlock()
}

func (s *scheduledItem) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.action = nil
	result := s.result
	s.result = nil
	s.mu.Unlock()

	if result != nil {
		result.Dispose()
	}
}

func (s *scheduledItem) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
