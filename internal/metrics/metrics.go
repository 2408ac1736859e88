package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeApplied   = "applied"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"

	OutcomeResolved  = "resolved"
	OutcomeUnchanged = "unchanged"
)

// Metrics holds the card's counters.
type Metrics struct {
	Fetches         *prometheus.CounterVec
	LocationLookups *prometheus.CounterVec
}

// New creates the counters and registers them on reg. A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_card",
			Name:      "fetches_total",
			Help:      "Weather fetches by outcome.",
		}, []string{"outcome"}),
		LocationLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_card",
			Name:      "location_lookups_total",
			Help:      "IP geolocation lookups by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Fetches, m.LocationLookups)
	}
	return m
}

func (m *Metrics) Fetch(outcome string) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Lookup(outcome string) {
	if m == nil {
		return
	}
	m.LocationLookups.WithLabelValues(outcome).Inc()
}
