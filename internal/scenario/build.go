package scenario

import (
	"errors"
	"fmt"

	"github.com/roach88/rxcore/disposable"
	"github.com/roach88/rxcore/rx"
)

// ErrFailOn is the error produced by the fail_on map function.
var ErrFailOn = errors.New("fail_on")

// mapFn builds a transform from a stage's arg.
type mapFn func(arg int) func(int) (int, error)

var mapFns = map[string]mapFn{
	"square": pure(func(v int) int { return v * v }),
	"double": pure(func(v int) int { return 2 * v }),
	"negate": pure(func(v int) int { return -v }),
	"inc":    pure(func(v int) int { return v + 1 }),
	"fail_on": func(arg int) func(int) (int, error) {
		return func(v int) (int, error) {
			if v == arg {
				return 0, fmt.Errorf("%w %d", ErrFailOn, v)
			}
			return v, nil
		}
	},
}

var filterFns = map[string]func(int) (bool, error){
	"even":     func(v int) (bool, error) { return v%2 == 0, nil },
	"odd":      func(v int) (bool, error) { return v%2 != 0, nil },
	"positive": func(v int) (bool, error) { return v > 0, nil },
}

var scanFns = map[string]func(acc, v int) (int, error){
	"sum": func(acc, v int) (int, error) { return acc + v, nil },
}

func pure(f func(int) int) mapFn {
	return func(int) func(int) (int, error) {
		return func(v int) (int, error) { return f(v), nil }
	}
}

// SourceStream returns the scenario's source stream.
func (s *Scenario) SourceStream() rx.Stream[int] {
	if s.Source.Error == "" {
		return rx.From(s.Source.Values)
	}
	values := append([]int(nil), s.Source.Values...)
	err := errors.New(s.Source.Error)
	return rx.Create(func(o rx.Observer[int]) disposable.Disposable {
		for _, v := range values {
			o.On(rx.Next(v))
		}
		o.On(rx.Error[int](err))
		return nil
	})
}

// Apply applies the scenario's stages to src in order.
func (s *Scenario) Apply(src rx.Stream[int]) (rx.Stream[int], error) {
	out := src
	for i, st := range s.Stages {
		switch st.Op {
		case OpMap:
			fn, ok := mapFns[st.Fn]
			if !ok {
				return nil, unknownFn(i, st)
			}
			out = rx.Map(out, fn(st.Arg))
		case OpFilter:
			fn, ok := filterFns[st.Fn]
			if !ok {
				return nil, unknownFn(i, st)
			}
			out = rx.Filter(out, fn)
		case OpScan:
			fn, ok := scanFns[st.Fn]
			if !ok {
				return nil, unknownFn(i, st)
			}
			out = rx.Scan(out, 0, fn)
		case OpTake:
			out = rx.Take(out, st.Count)
		default:
			return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("stage %d: unknown op %q", i, st.Op)}
		}
	}
	return out, nil
}

func unknownFn(i int, st Stage) error {
	return &LoadError{
		Code:    ErrCodeUnknownFunction,
		Message: fmt.Sprintf("stage %d: %s has no function %q", i, st.Op, st.Fn),
	}
}
