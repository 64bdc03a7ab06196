// Package observability holds the Prometheus collectors for the skill.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the skill's Prometheus metrics. A nil *Collector is valid
// and records nothing, so components can be built without metrics in tests.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests       *prometheus.CounterVec
	Outcomes       *prometheus.CounterVec
	FetchDurations *prometheus.HistogramVec
	CacheHits      *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wastewizard_requests_total",
		Help: "Voice requests handled, labeled by request type and intent.",
	}, []string{"type", "intent"}), "wastewizard_requests_total")
	if err != nil {
		return nil, err
	}

	outcomes, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wastewizard_outcomes_total",
		Help: "Finished lookup flows, labeled by flow, the state reached, and failure reason (ok on success).",
	}, []string{"flow", "state", "reason"}), "wastewizard_outcomes_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wastewizard_upstream_duration_seconds",
		Help:    "Latency of calls to external services and datasets.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"upstream", "result"}), "wastewizard_upstream_duration_seconds")
	if err != nil {
		return nil, err
	}

	hits, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wastewizard_dataset_cache_hits_total",
		Help: "Dataset loads served from the in-process cache.",
	}, []string{"dataset"}), "wastewizard_dataset_cache_hits_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		Requests:       requests,
		Outcomes:       outcomes,
		FetchDurations: durations,
		CacheHits:      hits,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest counts one inbound voice request.
func (c *Collector) ObserveRequest(requestType, intent string) {
	if c == nil {
		return
	}
	if intent == "" {
		intent = "none"
	}
	c.Requests.WithLabelValues(requestType, intent).Inc()
}

// ObserveOutcome counts one finished flow.
func (c *Collector) ObserveOutcome(flow, state, reason string) {
	if c == nil {
		return
	}
	c.Outcomes.WithLabelValues(flow, state, reason).Inc()
}

// ObserveUpstream records the latency of one outbound call started at start.
func (c *Collector) ObserveUpstream(upstream string, start time.Time, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.FetchDurations.WithLabelValues(upstream, result).Observe(time.Since(start).Seconds())
}

// CacheHit counts a dataset served from cache.
func (c *Collector) CacheHit(dataset string) {
	if c == nil {
		return
	}
	c.CacheHits.WithLabelValues(dataset).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
