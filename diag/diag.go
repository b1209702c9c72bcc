package diag

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures tracing.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// WithLogger sets the logger used for subscription lifecycle records.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRegisterer exports the subscription counters to reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

type tracer struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	live       *prometheus.GaugeVec
	total      *prometheus.CounterVec
}

// unregister removes t's collectors from its registerer, if any.
func (t *tracer) unregister() {
	if t == nil || t.registerer == nil {
		return
	}
	t.registerer.Unregister(t.live)
	t.registerer.Unregister(t.total)
}

var (
	enabled atomic.Bool
	active  atomic.Pointer[tracer]

	liveCount  atomic.Int64
	totalCount atomic.Int64

	// mu serializes Enable/Disable; Track never takes it.
	mu sync.Mutex
)

// Enable turns on subscription tracing.
//
// Enabling again replaces the previous configuration: collectors registered
// by the previous call are unregistered first, so the same registerer may be
// passed again. Returns an error only if the metrics cannot be registered,
// in which case tracing is left off.
func Enable(opts ...Option) error {
	c := config{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	mu.Lock()
	defer mu.Unlock()

	enabled.Store(false)
	active.Swap(nil).unregister()

	t := &tracer{logger: c.logger, registerer: c.registerer}
	if c.registerer != nil {
		t.live = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rx_live_subscriptions",
			Help: "Subscriptions created through the producer protocol that have not been disposed",
		}, []string{"operator"})
		t.total = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rx_subscriptions_total",
			Help: "Subscriptions created through the producer protocol",
		}, []string{"operator"})

		if err := c.registerer.Register(t.live); err != nil {
			return err
		}
		if err := c.registerer.Register(t.total); err != nil {
			c.registerer.Unregister(t.live)
			return err
		}
	}

	active.Store(t)
	enabled.Store(true)
	return nil
}

// Disable turns tracing off and unregisters its collectors. Subscriptions
// tracked while enabled are still released correctly.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled.Store(false)
	active.Swap(nil).unregister()
}

// Enabled reports whether tracing is on.
func Enabled() bool {
	return enabled.Load()
}

// Track records the start of one subscription to operator and returns the
// function that records its release. The release function is idempotent.
//
// Returns nil when tracing is disabled.
func Track(operator string) func() {
	if !enabled.Load() {
		return nil
	}
	t := active.Load()
	if t == nil {
		return nil
	}

	id := uuid.Must(uuid.NewV7()).String()
	liveCount.Add(1)
	totalCount.Add(1)
	if t.live != nil {
		t.live.WithLabelValues(operator).Inc()
		t.total.WithLabelValues(operator).Inc()
	}
	t.logger.Debug("subscription started", "id", id, "operator", operator)

	var once sync.Once
	return func() {
		once.Do(func() {
			liveCount.Add(-1)
			if t.live != nil {
				t.live.WithLabelValues(operator).Dec()
			}
			t.logger.Debug("subscription disposed", "id", id, "operator", operator)
		})
	}
}

// LiveSubscriptions returns the number of tracked subscriptions not yet
// disposed.
func LiveSubscriptions() int64 {
	return liveCount.Load()
}

// TotalSubscriptions returns the number of subscriptions tracked since the
// process started.
func TotalSubscriptions() int64 {
	return totalCount.Load()
}
