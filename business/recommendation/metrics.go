package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendation requests by outcome (served, no_reference, no_matches).",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RecommendationsTotal)
}
