package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SkippedItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_skipped_items_total",
			Help: "Items left out of a ranking pass, by role and reason.",
		},
		[]string{"role", "reason"},
	)
)

func init() {
	prometheus.MustRegister(SkippedItemsTotal)
}
