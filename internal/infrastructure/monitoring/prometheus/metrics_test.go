package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/remote/ebi"
)

// The metric set plugs directly into the mapper and the remote client.
var (
	_ domaingrounding.PipelineObserver = (*Metrics)(nil)
	_ ebi.LookupObserver               = (*Metrics)(nil)
)

func TestObserverMethodsIncrement(t *testing.T) {
	m := NewOnRegistry(prometheus.NewRegistry())

	m.GroundingMapHit()
	m.AgentMapHit()
	m.RemoteLookup()
	m.CacheHit()
	m.DisambiguationOutcome(domaingrounding.DisambOutcomeGrounded)
	m.DisambiguationOutcome(domaingrounding.DisambOutcomeGrounded)
	m.DisambiguationOutcome(domaingrounding.DisambOutcomeFailed)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.GroundingMapHits))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.AgentMapHits))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RemoteLookups))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.CacheHits))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.Disambiguations.WithLabelValues("grounded")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Disambiguations.WithLabelValues("failed")))
}

//Personal.AI order the ending
