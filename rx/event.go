package rx

import "fmt"

// EventKind distinguishes the three event kinds.
type EventKind int

const (
	// KindNext carries a value.
	KindNext EventKind = iota + 1
	// KindError terminates the sequence with a failure.
	KindError
	// KindCompleted terminates the sequence successfully.
	KindCompleted
)

func (k EventKind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindCompleted:
		return "completed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one element of a sequence: next(value), error(err) or completed.
type Event[T any] struct {
	Kind  EventKind
	Value T     // set when Kind == KindNext
	Err   error // set when Kind == KindError
}

// Next returns a next event carrying v.
func Next[T any](v T) Event[T] {
	return Event[T]{Kind: KindNext, Value: v}
}

// Error returns an error event.
func Error[T any](err error) Event[T] {
	return Event[T]{Kind: KindError, Err: err}
}

// Completed returns a completed event.
func Completed[T any]() Event[T] {
	return Event[T]{Kind: KindCompleted}
}

// IsStop reports whether e is terminal (error or completed).
func (e Event[T]) IsStop() bool {
	return e.Kind == KindError || e.Kind == KindCompleted
}

func (e Event[T]) String() string {
	switch e.Kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", e.Value)
	case KindError:
		return fmt.Sprintf("error(%v)", e.Err)
	case KindCompleted:
		return "completed"
	default:
		return e.Kind.String()
	}
}
