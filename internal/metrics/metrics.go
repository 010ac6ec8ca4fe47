package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeExtracted labels combinations that produced envelope data.
	OutcomeExtracted = "extracted"
	// OutcomeSkipped labels combinations abandoned after a solve failure.
	OutcomeSkipped = "skipped"
	// OutcomeInvalid labels combinations rejected by catalog lookup.
	OutcomeInvalid = "invalid"
)

var (
	combinationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "envelope_engine",
			Name:      "combinations_total",
			Help:      "Total number of combinations processed, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	solveDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "envelope_engine",
			Name:      "solve_seconds",
			Help:      "External solver latency per combination in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	elementsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "envelope_engine",
			Name:      "elements_skipped_total",
			Help:      "Elements skipped because their force extraction failed.",
		},
	)
)

// Register attaches the engine collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		combinationsTotal,
		solveDurationSeconds,
		elementsSkippedTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveCombination records one combination's outcome and solve latency.
func ObserveCombination(outcome string, solveDuration time.Duration, elementsSkipped int) {
	combinationsTotal.WithLabelValues(outcome).Inc()
	if solveDuration > 0 {
		solveDurationSeconds.Observe(solveDuration.Seconds())
	}
	if elementsSkipped > 0 {
		elementsSkippedTotal.Add(float64(elementsSkipped))
	}
}
