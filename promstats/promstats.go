// Package promstats exports animated graph activity as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	obs := promstats.New(reg)
//	animated.SetObserver(obs)
package promstats

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer implements animated.Observer with Prometheus collectors.
type Observer struct {
	flushes      prometheus.Counter
	leaves       prometheus.Histogram
	started      *prometheus.CounterVec
	ended        *prometheus.CounterVec
	interactions prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Observer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &Observer{
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animated_flushes_total",
			Help: "Total number of graph flushes",
		}),
		leaves: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "animated_flush_leaves",
			Help:    "Number of leaves updated per flush",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "animated_drivers_started_total",
			Help: "Total number of driver runs started",
		}, []string{"kind"}),
		ended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "animated_drivers_ended_total",
			Help: "Total number of driver runs ended",
		}, []string{"kind", "finished"}),
		interactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "animated_interactions_active",
			Help: "Current number of active interaction handles",
		}),
	}
	reg.MustRegister(o.flushes, o.leaves, o.started, o.ended, o.interactions)
	return o
}

// FlushCompleted counts the flush and observes its leaf count.
func (o *Observer) FlushCompleted(leaves int) {
	o.flushes.Inc()
	o.leaves.Observe(float64(leaves))
}

// DriverStarted counts a driver start by kind.
func (o *Observer) DriverStarted(kind string) {
	o.started.WithLabelValues(kind).Inc()
}

// DriverEnded counts a driver end by kind and outcome.
func (o *Observer) DriverEnded(kind string, finished bool) {
	o.ended.WithLabelValues(kind, strconv.FormatBool(finished)).Inc()
}

// InteractionsActive sets the active interaction gauge.
func (o *Observer) InteractionsActive(n int) {
	o.interactions.Set(float64(n))
}
