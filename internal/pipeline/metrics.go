package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"

	"example.com/exerciseresolver/internal/domain"
)

var (
	resolutionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_resolver",
		Subsystem: "pipeline",
		Name:      "mentions_resolved_total",
		Help:      "Number of exercise mentions processed, by outcome.",
	}, []string{"outcome"})

	videoSelectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_resolver",
		Subsystem: "pipeline",
		Name:      "videos_selected_total",
		Help:      "Number of instructional videos selected, by category.",
	}, []string{"category"})

	quotaExhaustedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_resolver",
		Subsystem: "pipeline",
		Name:      "quota_exhausted_total",
		Help:      "Number of passes aborted by provider quota exhaustion.",
	})
)

func init() {
	prometheus.MustRegister(resolutionCounter, videoSelectedCounter, quotaExhaustedCounter)
}

func recordResolution(outcome string) {
	resolutionCounter.WithLabelValues(outcome).Inc()
}

func recordVideoSelected(category domain.Category) {
	videoSelectedCounter.WithLabelValues(string(category)).Inc()
}

func recordQuotaExhausted() {
	quotaExhaustedCounter.Inc()
}
