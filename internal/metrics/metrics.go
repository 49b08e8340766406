// Package metrics defines the Prometheus instruments the server exports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the server's instruments.
type Metrics struct {
	Resolutions    *prometheus.CounterVec   // mode, cached
	ResolveSeconds *prometheus.HistogramVec // mode
	Guesses        *prometheus.CounterVec   // mode, state
	Shares         *prometheus.CounterVec   // mode
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodle",
			Name:      "target_resolutions_total",
			Help:      "Daily target lookups, by mode and whether the memoized value was used.",
		}, []string{"mode", "cached"}),
		ResolveSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "geodle",
			Name:      "target_resolve_seconds",
			Help:      "Time spent replaying from the epoch to resolve a day's target.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"mode"}),
		Guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodle",
			Name:      "guesses_total",
			Help:      "Accepted guesses, by mode and resulting session state.",
		}, []string{"mode", "state"}),
		Shares: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodle",
			Name:      "shares_total",
			Help:      "Share summaries rendered.",
		}, []string{"mode"}),
	}
	reg.MustRegister(m.Resolutions, m.ResolveSeconds, m.Guesses, m.Shares)
	return m
}
