package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"

	ResultPriced   = "priced"
	ResultUnpriced = "unpriced"
)

// PricingMetrics records calculation and batch mutation activity.
type PricingMetrics struct {
	calcDuration  prometheus.Histogram
	calcResults   *prometheus.CounterVec
	mutations     *prometheus.CounterVec
	emitFailures  *prometheus.CounterVec
	cacheRequests *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
// A nil registerer yields a recorder that drops every observation.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	calcDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_calculation_duration_seconds",
		Help:    "Duration of price calculations in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	calcResults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_calculated_prices_total",
		Help: "Calculated price results by whether a price was found.",
	}, []string{"result"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_batch_mutations_total",
		Help: "Batch mutation operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	emitFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_event_emit_failures_total",
		Help: "Change events that failed to reach the event sink.",
	}, []string{"event"})
	cacheRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_cache_requests_total",
		Help: "Calculated price cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(calcDuration, calcResults, mutations, emitFailures, cacheRequests)
	return &PricingMetrics{
		calcDuration:  calcDuration,
		calcResults:   calcResults,
		mutations:     mutations,
		emitFailures:  emitFailures,
		cacheRequests: cacheRequests,
	}
}

// ObserveCalculation records one calculation call.
func (m *PricingMetrics) ObserveCalculation(duration time.Duration, priced, unpriced int) {
	if m == nil || m.calcDuration == nil {
		return
	}
	m.calcDuration.Observe(duration.Seconds())
	m.calcResults.WithLabelValues(ResultPriced).Add(float64(priced))
	m.calcResults.WithLabelValues(ResultUnpriced).Add(float64(unpriced))
}

// ObserveMutation counts a finished batch operation.
func (m *PricingMetrics) ObserveMutation(operation string, err error) {
	if m == nil || m.mutations == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.mutations.WithLabelValues(normalizeLabel(operation), outcome).Inc()
}

// IncEmitFailure counts an event that was dropped after commit.
func (m *PricingMetrics) IncEmitFailure(event string) {
	if m == nil || m.emitFailures == nil {
		return
	}
	m.emitFailures.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncCache counts a cache lookup; result is hit, miss or error.
func (m *PricingMetrics) IncCache(result string) {
	if m == nil || m.cacheRequests == nil {
		return
	}
	m.cacheRequests.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
