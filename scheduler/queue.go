package scheduler

// actionQueue is the FIFO backing one goroutine's trampoline.
//
// It is only ever touched by the goroutine that owns the trampoline, so it
// needs no locking.
type actionQueue struct {
	items []*scheduledItem
}

func newActionQueue() *actionQueue {
	return &actionQueue{
		items: make([]*scheduledItem, 0, 8),
	}
}

func (q *actionQueue) enqueue(item *scheduledItem) {
	q.items = append(q.items, item)
}

// dequeue removes and returns the front item, or false when empty.
func (q *actionQueue) dequeue() (*scheduledItem, bool) {
	if len(q.items) == 0 {
		return nil, false
	}

	item := q.items[0]

	// Nil out the slot so the backing array does not retain the item.
	q.items[0] = nil

	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}

	return item, true
}

func (q *actionQueue) len() int {
	return len(q.items)
}
