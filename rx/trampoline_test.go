package rx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/rxcore/rx"
	"github.com/roach88/rxcore/scheduler"
)

func TestTrampoline_NestedSubscriptionsRunInIssuanceOrder(t *testing.T) {
	var log []string
	record := func(prefix string) func(string) {
		return func(v string) { log = append(log, prefix+":"+v) }
	}
	completed := func(prefix string) func() {
		return func() { log = append(log, prefix+":completed") }
	}

	rx.Subscribe(rx.Of("1", "2"), func(v string) {
		log = append(log, "outer:"+v)
		if v == "1" {
			rx.Subscribe(rx.Of("a1", "a2"), record("a"), nil, completed("a"))
			rx.Subscribe(rx.Of("b1", "b2"), record("b"), nil, completed("b"))
			log = append(log, "outer:1:end")
		}
	}, nil, completed("outer"))

	assert.Equal(t, []string{
		"outer:1",
		"outer:1:end",
		"a:a1",
		"b:b1",
		"outer:2",
		"a:a2",
		"b:b2",
		"outer:completed",
		"a:completed",
		"b:completed",
	}, log)
	assert.True(t, scheduler.CurrentGoroutine.IsScheduleRequired(), "trampoline released after subscribe returns")
}

func TestTrampoline_SubscribeReturnsAfterSynchronousWork(t *testing.T) {
	var values []int
	rx.Subscribe(rx.Map(rx.Of(1, 2, 3), square), func(v int) {
		values = append(values, v)
	}, nil, nil)

	assert.Equal(t, []int{1, 4, 9}, values, "all synchronous events delivered before Subscribe returns")
}

func TestTrampoline_GoroutinesDoNotShareQueues(t *testing.T) {
	const goroutines = 8
	results := make(chan []int, goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			var values []int
			rx.Subscribe(rx.Of(1, 2, 3), func(v int) { values = append(values, v) }, nil, nil)
			results <- values
		}()
	}

	for g := 0; g < goroutines; g++ {
		assert.Equal(t, []int{1, 2, 3}, <-results)
	}
}
