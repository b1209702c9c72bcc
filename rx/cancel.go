package rx

import (
	"sync/atomic"

	"github.com/roach88/rxcore/disposable"
)

// tokenState is the state of a cancelToken.
//
//	unconfigured --configure--> configured --dispose--> disposed
//	unconfigured --dispose----> disposedEarly --configure--> disposed
//
// disposed is terminal. Transitions happen only by compare-and-swap.
type tokenState int32

const (
	stateUnconfigured tokenState = iota
	stateConfigured
	stateDisposedEarly
	stateDisposed
)

// cancelToken owns the sink and upstream subscription of one producer
// subscription and disposes each of them exactly once.
//
// configure and Dispose commute: whichever observes the other's transition
// performs the disposal, the other becomes a no-op.
type cancelToken struct {
	state        atomic.Int32
	sink         disposable.Disposable
	subscription disposable.Disposable

	// release is called once after the handles are disposed. Set before the
	// token is shared.
	release func()
	// operator names the producer for contract errors.
	operator string
}

func newCancelToken(operator string) *cancelToken {
	return &cancelToken{operator: operator}
}

func (c *cancelToken) load() tokenState {
	return tokenState(c.state.Load())
}

func (c *cancelToken) cas(from, to tokenState) bool {
	return c.state.CompareAndSwap(int32(from), int32(to))
}

// configure registers the sink and upstream subscription.
//
// If Dispose already happened, both handles are disposed immediately.
// Configuring twice panics with ErrCodeAlreadyConfigured.
func (c *cancelToken) configure(sink, subscription disposable.Disposable) {
	if sink == nil || subscription == nil {
		panic(&ContractError{
			Code:     ErrCodeNilHandle,
			Message:  "run must return a non-nil sink and subscription",
			Operator: c.operator,
		})
	}

	if s := c.load(); s == stateConfigured || s == stateDisposed {
		panic(c.alreadyConfigured())
	}

	// Handles are stored before the state transition publishes them.
	c.sink = sink
	c.subscription = subscription

	for {
		switch s := c.load(); s {
		case stateUnconfigured:
			if c.cas(s, stateConfigured) {
				return
			}
		case stateDisposedEarly:
			if c.cas(s, stateDisposed) {
				c.disposeHandles()
				return
			}
		default:
			panic(c.alreadyConfigured())
		}
	}
}

// Dispose cancels the subscription. Idempotent.
func (c *cancelToken) Dispose() {
	for {
		switch s := c.load(); s {
		case stateUnconfigured:
			// configure will observe disposedEarly and dispose the handles.
			if c.cas(s, stateDisposedEarly) {
				return
			}
		case stateConfigured:
			if c.cas(s, stateDisposed) {
				c.disposeHandles()
				return
			}
		default:
			return
		}
	}
}

// IsDisposed reports whether Dispose has been called.
func (c *cancelToken) IsDisposed() bool {
	s := c.load()
	return s == stateDisposedEarly || s == stateDisposed
}

func (c *cancelToken) disposeHandles() {
	sink, subscription := c.sink, c.subscription
	c.sink, c.subscription = nil, nil

	sink.Dispose()
	subscription.Dispose()

	if c.release != nil {
		c.release()
	}
}

func (c *cancelToken) alreadyConfigured() *ContractError {
	return &ContractError{
		Code:     ErrCodeAlreadyConfigured,
		Message:  "sink and subscription were already set",
		Operator: c.operator,
	}
}
