package ledger

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors for ledger activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registerOnce sync.Once

	applied       prometheus.Counter
	confirmed     prometheus.Counter
	rejected      prometheus.Counter
	retries       *prometheus.CounterVec
	applyDuration prometheus.Histogram
}

// NewMetrics creates ledger metrics registered with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{}
	m.Register(registry)
	return m
}

// Register registers the collectors with registry. If registry is nil this
// is a no-op. Calls after the first successful registration are no-ops.
func (m *Metrics) Register(registry prometheus.Registerer) {
	if registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.applied = factory.NewCounter(prometheus.CounterOpts{
			Name: "kontrib_ledger_contributions_applied_total",
			Help: "Total number of contributions applied as confirmed",
		})

		m.confirmed = factory.NewCounter(prometheus.CounterOpts{
			Name: "kontrib_ledger_contributions_confirmed_total",
			Help: "Total number of pending contributions confirmed",
		})

		m.rejected = factory.NewCounter(prometheus.CounterOpts{
			Name: "kontrib_ledger_contributions_rejected_total",
			Help: "Total number of pending contributions marked failed",
		})

		m.retries = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kontrib_ledger_conflict_retries_total",
			Help: "Total number of ledger operations retried after a concurrent update",
		}, []string{"operation"})

		m.applyDuration = factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kontrib_ledger_apply_duration_seconds",
			Help:    "Time to apply a contribution, including retries",
			Buckets: prometheus.DefBuckets,
		})
	})
}

func (m *Metrics) incApplied(start time.Time) {
	if m == nil || m.applied == nil {
		return
	}
	m.applied.Inc()
	m.applyDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) incConfirmed() {
	if m == nil || m.confirmed == nil {
		return
	}
	m.confirmed.Inc()
}

func (m *Metrics) incRejected() {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.Inc()
}

func (m *Metrics) incRetry(op string) {
	if m == nil || m.retries == nil {
		return
	}
	m.retries.WithLabelValues(op).Inc()
}
