package personalization

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActionsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalization_actions_recorded_total",
			Help: "Count of recorded user actions by type and device.",
		},
		[]string{"type", "device"},
	)

	EvictedEventsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "personalization_evicted_events_total",
		Help: "Action log events dropped by the retention policy.",
	})

	PersistFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalization_persist_failures_total",
			Help: "Session snapshot load/save failures by operation.",
		},
		[]string{"op"},
	)

	SessionsDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "personalization_sessions_dropped_total",
		Help: "Live sessions released from memory by the session cap.",
	})

	ChurnRisk = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "personalization_churn_risk",
		Help:    "Distribution of churn risk assessments served.",
		Buckets: []float64{0.1, 0.25, 0.4, 0.5, 0.6, 0.75, 0.95},
	})
)

func init() {
	prometheus.MustRegister(ActionsRecordedTotal, EvictedEventsTotal, PersistFailuresTotal, SessionsDroppedTotal, ChurnRisk)
}
