package trace

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rxcore/rx"
)

// Entry is one observed event.
type Entry struct {
	Seq        int64  `json:"seq"`
	Subscriber int    `json:"subscriber"`
	Kind       string `json:"kind"`
	Value      string `json:"value,omitempty"`
	Error      string `json:"error,omitempty"`
}

// String renders the entry as a single trace line.
func (e Entry) String() string {
	switch e.Kind {
	case rx.KindNext.String():
		return fmt.Sprintf("%04d sub=%d next %s", e.Seq, e.Subscriber, e.Value)
	case rx.KindError.String():
		return fmt.Sprintf("%04d sub=%d error %s", e.Seq, e.Subscriber, e.Error)
	default:
		return fmt.Sprintf("%04d sub=%d %s", e.Seq, e.Subscriber, e.Kind)
	}
}

// Trace is the ordered log of one scenario run.
type Trace struct {
	Scenario string  `json:"scenario"`
	Entries  []Entry `json:"entries"`
}

// Terminals returns the number of error and completed entries for
// subscriber.
func (t Trace) Terminals(subscriber int) int {
	n := 0
	for _, e := range t.Entries {
		if e.Subscriber == subscriber && e.Kind != rx.KindNext.String() {
			n++
		}
	}
	return n
}

// Text renders the trace as a header line followed by one line per entry.
func (t Trace) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %s\n", t.Scenario)
	for _, e := range t.Entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Recorder collects entries from any number of subscribers into one trace.
// Each entry is stamped with the next logical sequence number, starting at 1.
//
// Thread-safety: safe for concurrent use. Entries are appended in seq order.
type Recorder struct {
	mu       sync.Mutex
	seq      int64
	scenario string
	entries  []Entry
}

// NewRecorder returns a recorder for the named scenario.
func NewRecorder(scenario string) *Recorder {
	return &Recorder{scenario: scenario}
}

// Record appends an entry for e observed by subscriber.
func (r *Recorder) Record(subscriber int, kind rx.EventKind, value any, err error) Entry {
	entry := Entry{
		Subscriber: subscriber,
		Kind:       kind.String(),
	}
	switch kind {
	case rx.KindNext:
		entry.Value = Normalize(fmt.Sprint(value))
	case rx.KindError:
		if err != nil {
			entry.Error = Normalize(err.Error())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	entry.Seq = r.seq
	r.entries = append(r.entries, entry)
	return entry
}

// Trace returns a copy of everything recorded so far.
func (r *Recorder) Trace() Trace {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return Trace{Scenario: r.scenario, Entries: entries}
}

// Observer returns an rx observer that records into r as subscriber.
func Observer[T any](r *Recorder, subscriber int) rx.Observer[T] {
	return rx.ObserverFunc[T](func(e rx.Event[T]) {
		r.Record(subscriber, e.Kind, e.Value, e.Err)
	})
}

// Normalize returns s in Unicode NFC form.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
