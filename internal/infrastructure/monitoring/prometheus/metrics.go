// Package prometheus defines the grounding pipeline's metrics and their
// registration.  All metrics live on an injected registry so tests can use
// isolated registries without collision panics.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every instrument the pipeline emits.
type Metrics struct {
	registry *prometheus.Registry

	StatementsMapped  prometheus.Counter
	StatementsDropped prometheus.Counter
	GroundingMapHits  prometheus.Counter
	AgentMapHits      prometheus.Counter
	RemoteLookups     prometheus.Counter
	CacheHits         prometheus.Counter
	Disambiguations   *prometheus.CounterVec

	MappingDuration prometheus.Histogram
}

// New constructs and registers the full metric set on a fresh registry,
// including the standard Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewOnRegistry(reg)
}

// NewOnRegistry constructs the metric set on reg.  Tests pass an empty
// registry.
func NewOnRegistry(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		StatementsMapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioground",
			Name:      "statements_mapped_total",
			Help:      "Statements that survived grounding mapping.",
		}),
		StatementsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioground",
			Name:      "statements_dropped_total",
			Help:      "Statements discarded by the no-grounding sentinel.",
		}),
		GroundingMapHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioground",
			Name:      "grounding_map_hits_total",
			Help:      "Mention texts found in the curated grounding map.",
		}),
		AgentMapHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioground",
			Name:      "agent_map_hits_total",
			Help:      "Mention texts served by the prebuilt agent map.",
		}),
		RemoteLookups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioground",
			Name:      "remote_lookups_total",
			Help:      "ChEBI web-service round trips.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bioground",
			Name:      "cache_hits_total",
			Help:      "Remote-entry lookups answered from the shared cache.",
		}),
		Disambiguations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bioground",
			Name:      "disambiguations_total",
			Help:      "Disambiguation hook outcomes.",
		}, []string{"outcome"}), // grounded | ungrounded | failed
		MappingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bioground",
			Name:      "mapping_duration_seconds",
			Help:      "Wall time per batch-mapping run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	reg.MustRegister(
		m.StatementsMapped,
		m.StatementsDropped,
		m.GroundingMapHits,
		m.AgentMapHits,
		m.RemoteLookups,
		m.CacheHits,
		m.Disambiguations,
		m.MappingDuration,
	)
	return m
}

// Handler returns the scrape endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// The methods below satisfy grounding.PipelineObserver and ebi.LookupObserver
// so the metric set can be handed straight to the mapper and remote client.

func (m *Metrics) GroundingMapHit() { m.GroundingMapHits.Inc() }

func (m *Metrics) AgentMapHit() { m.AgentMapHits.Inc() }

func (m *Metrics) DisambiguationOutcome(outcome string) {
	m.Disambiguations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RemoteLookup() { m.RemoteLookups.Inc() }

func (m *Metrics) CacheHit() { m.CacheHits.Inc() }

//Personal.AI order the ending
