// Package observability exposes Prometheus collectors for the backend.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder holds the service collectors on its own registry
type Recorder struct {
	Registry *prometheus.Registry

	computations   *prometheus.CounterVec
	activeSessions prometheus.Gauge
	clockTicks     prometheus.Counter
	heatRisk       prometheus.Histogram
}

// NewRecorder creates and registers every collector
func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatguard",
			Name:      "metric_computations_total",
			Help:      "Derived metric computations by trigger.",
		}, []string{"trigger"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatguard",
			Name:      "active_sessions",
			Help:      "Open simulation sessions.",
		}),
		clockTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatguard",
			Name:      "clock_ticks_total",
			Help:      "Session clock ticks that re-derived the ambient temperature.",
		}),
		heatRisk: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatguard",
			Name:      "heat_risk_percent",
			Help:      "Heat risk of computed snapshots.",
			Buckets:   []float64{0, 10, 25, 40, 55, 70, 85, 100},
		}),
	}

	r.Registry.MustRegister(
		r.computations,
		r.activeSessions,
		r.clockTicks,
		r.heatRisk,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveComputation records one engine run
func (r *Recorder) ObserveComputation(trigger string, heatRisk float64) {
	if r == nil {
		return
	}
	r.computations.WithLabelValues(trigger).Inc()
	r.heatRisk.Observe(heatRisk)
}

// SessionOpened increments the active session gauge
func (r *Recorder) SessionOpened() {
	if r == nil {
		return
	}
	r.activeSessions.Inc()
}

// SessionClosed decrements the active session gauge
func (r *Recorder) SessionClosed() {
	if r == nil {
		return
	}
	r.activeSessions.Dec()
}

// ClockTick counts one timer-driven re-simulation
func (r *Recorder) ClockTick() {
	if r == nil {
		return
	}
	r.clockTicks.Inc()
}
