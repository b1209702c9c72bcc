package scheduler

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// goid returns the identifier of the calling goroutine.
//
// Go deliberately hides goroutine identity; the stack header
// "goroutine 123 [running]:" is the only portable source for it.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}

	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("scheduler: cannot parse goroutine id from stack header: " + err.Error())
	}
	return id
}
