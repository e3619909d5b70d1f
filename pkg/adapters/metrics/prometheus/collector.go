package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	calls              *prometheus.CounterVec
	tokens             *prometheus.CounterVec
	callLatency        *prometheus.HistogramVec
	experimentDuration *prometheus.HistogramVec
	inflightCalls      prometheus.Gauge
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *Collector {
	return &Collector{
		calls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatelab_gateway_calls_total",
				Help: "Total number of gateway calls",
			},
			[]string{"model", "status"},
		),
		tokens: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatelab_gateway_tokens_total",
				Help: "Total number of tokens reported by the gateway",
			},
			[]string{"model", "type"},
		),
		callLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gatelab_gateway_call_latency_seconds",
				Help:    "Gateway call latency in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 60},
			},
			[]string{"model"},
		),
		experimentDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gatelab_experiment_duration_seconds",
				Help:    "Experiment duration in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"experiment"},
		),
		inflightCalls: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gatelab_inflight_calls",
				Help: "Number of gateway calls currently in flight",
			},
		),
	}
}

// RecordCall records one gateway call outcome and its latency
func (c *Collector) RecordCall(model, status string, latency time.Duration) {
	c.calls.WithLabelValues(model, status).Inc()
	c.callLatency.WithLabelValues(model).Observe(latency.Seconds())
}

// RecordTokens adds reported token usage for a model
func (c *Collector) RecordTokens(model, tokenType string, count int) {
	c.tokens.WithLabelValues(model, tokenType).Add(float64(count))
}

// RecordExperiment records the duration of a completed experiment
func (c *Collector) RecordExperiment(name string, duration time.Duration) {
	c.experimentDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// SetInflightCalls sets the number of calls currently in flight
func (c *Collector) SetInflightCalls(count int) {
	c.inflightCalls.Set(float64(count))
}
