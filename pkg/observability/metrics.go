package observability

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// UnknownAutomaton is the automaton label of events for names that never
// resolved to a table. Request names are caller input and must not mint series.
const UnknownAutomaton = "unknown"

// Metrics holds the Prometheus collectors fed by lifecycle events.
type Metrics struct {
	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	LookupResults  *prometheus.HistogramVec
	Expansions     *prometheus.HistogramVec
	Loads          *prometheus.CounterVec
	LoadedArcs     *prometheus.GaugeVec

	loaded sync.Map // automaton names that loaded at least once
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attlookup_lookups_total",
				Help: "Total number of lookups",
			},
			[]string{"automaton", "direction", "outcome"},
		),
		LookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "attlookup_lookup_duration_seconds",
				Help:    "Duration of lookups",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
			},
			[]string{"automaton", "direction"},
		),
		LookupResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "attlookup_lookup_results",
				Help:    "Number of results returned per lookup",
				Buckets: []float64{0, 1, 2, 4, 8, 16, 64},
			},
			[]string{"automaton"},
		),
		Expansions: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "attlookup_lookup_expansions",
				Help:    "Search nodes expanded per lookup",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"automaton"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attlookup_loads_total",
				Help: "Total number of automaton loads",
			},
			[]string{"automaton", "success"},
		),
		LoadedArcs: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "attlookup_automaton_arcs",
				Help: "Arc count of each loaded automaton",
			},
			[]string{"automaton"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Lookups, m.LookupDuration, m.LookupResults, m.Expansions, m.Loads, m.LoadedArcs)
	}
	return m
}

// Hooks records every event into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLoad: func(_ context.Context, e *domain.LoadEvent) {
			if e.Err == nil {
				m.loaded.Store(e.Name, struct{}{})
			}
			name := m.label(e.Name, e.Err)
			m.Loads.WithLabelValues(name, strconv.FormatBool(e.Err == nil)).Inc()
			if e.Err == nil {
				m.LoadedArcs.WithLabelValues(name).Set(float64(e.Arcs))
			}
		},
		OnLookup: func(_ context.Context, e *domain.LookupEvent) {
			name := m.label(e.Name, e.Err)
			dir := e.Direction.String()
			m.Lookups.WithLabelValues(name, dir, outcome(e)).Inc()
			if e.Err != nil {
				return
			}
			m.LookupDuration.WithLabelValues(name, dir).Observe(e.Duration.Seconds())
			m.LookupResults.WithLabelValues(name).Observe(float64(e.Results))
			if !e.CacheHit {
				m.Expansions.WithLabelValues(name).Observe(float64(e.Expansions))
			}
		},
	}
}

// label keeps name only when it is known to name a real table: the event
// succeeded, the name loaded before, or the table exists but failed to parse.
// Successful lookups only come from loaded names or from cached results of them.
func (m *Metrics) label(name string, err error) string {
	if err == nil {
		return name
	}
	if _, ok := m.loaded.Load(name); ok {
		return name
	}
	var fe *domain.FormatError
	if errors.As(err, &fe) {
		return name
	}
	return UnknownAutomaton
}

func outcome(e *domain.LookupEvent) string {
	switch {
	case e.Err != nil:
		return "error"
	case e.CacheHit:
		return "cached"
	case e.Truncated:
		return "truncated"
	case e.Results == 0:
		return "empty"
	default:
		return "ok"
	}
}
