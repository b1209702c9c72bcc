package scenario

import (
	"log/slog"

	"github.com/roach88/rxcore/disposable"
	"github.com/roach88/rxcore/internal/trace"
	"github.com/roach88/rxcore/rx"
)

// Run builds the scenario's pipeline, subscribes every subscriber and
// returns the recorded trace.
//
// Sources are finite and emit on the calling goroutine, so the trace is
// complete when Run returns. All subscriptions are disposed before Run
// returns.
func Run(s *Scenario) (trace.Trace, error) {
	rec := trace.NewRecorder(s.Name)
	bag := disposable.NewBag()
	defer bag.Dispose()

	slog.Debug("running scenario",
		"name", s.Name,
		"stages", len(s.Stages),
		"subject", s.Subject,
		"subscribers", s.SubscriberCount(),
	)

	var subject rx.Subject[int]
	switch s.Subject {
	case SubjectPublish:
		subject = rx.NewPublishSubject[int]()
	case SubjectBehavior:
		subject = rx.NewBehaviorSubject(s.Initial)
	}

	if subject == nil {
		pipeline, err := s.Apply(s.SourceStream())
		if err != nil {
			return trace.Trace{}, err
		}
		for i := 0; i < s.SubscriberCount(); i++ {
			bag.Insert(pipeline.Subscribe(trace.Observer[int](rec, i)))
		}
		return finish(s, rec), nil
	}

	for i := 0; i < s.SubscriberCount(); i++ {
		pipeline, err := s.Apply(subject.AsStream())
		if err != nil {
			return trace.Trace{}, err
		}
		bag.Insert(pipeline.Subscribe(trace.Observer[int](rec, i)))
	}
	bag.Insert(s.SourceStream().Subscribe(subject.AsObserver()))

	return finish(s, rec), nil
}

func finish(s *Scenario, rec *trace.Recorder) trace.Trace {
	t := rec.Trace()
	slog.Debug("scenario finished", "name", s.Name, "entries", len(t.Entries))
	return t
}
