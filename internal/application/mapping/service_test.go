package mapping

import (
	"context"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biotext/bioground/internal/domain/agent"
	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/messaging/kafka"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/prometheus"
	"github.com/biotext/bioground/internal/infrastructure/resources"
	"github.com/biotext/bioground/internal/testutil"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// recordingProducer captures published events.
type recordingProducer struct {
	completed []kafka.MappingCompletedEvent
	dropped   []kafka.StatementDroppedEvent
}

func (p *recordingProducer) PublishMappingCompleted(_ context.Context, ev kafka.MappingCompletedEvent) error {
	p.completed = append(p.completed, ev)
	return nil
}

func (p *recordingProducer) PublishStatementDropped(_ context.Context, ev kafka.StatementDroppedEvent) error {
	p.dropped = append(p.dropped, ev)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func newTestParams(gm grounding.GroundingMap) domaingrounding.MapperParams {
	genes := resources.NewGeneTable()
	genes.AddHGNC("1097", "BRAF", "P15056")
	genes.AddUniProt("P15056", "BRAF", true)

	chems := resources.NewChemTable()
	chems.AddChEBI("15996", "GTP")

	terms := resources.NewTermTable()

	log := testutil.NewRecordingLogger()
	normalizer := domaingrounding.NewChEBINormalizer(chems, domaingrounding.NewDisabledRemoteClient(), log)
	return domaingrounding.MapperParams{
		GroundingMap: gm,
		Reconciler:   domaingrounding.NewReconciler(genes, log),
		Namer:        domaingrounding.NewNamer(genes, terms, normalizer),
		Normalizer:   normalizer,
		Logger:       log,
		Rename:       true,
	}
}

func stmtWithText(text string) *agent.Statement {
	return agent.NewStatement("Activation", agent.New(text, text))
}

func TestMapBatchCountsAndEvents(t *testing.T) {
	gm := grounding.GroundingMap{
		"BRAF": grounding.DBRefs{grounding.NamespaceHGNC: "BRAF"},
		"XXX":  nil, // curated no-grounding sentinel
	}
	metrics := prometheus.NewOnRegistry(promclient.NewRegistry())
	producer := &recordingProducer{}
	svc := NewService(newTestParams(gm), nil, metrics, producer, testutil.NewRecordingLogger())

	stmts := []*agent.Statement{stmtWithText("BRAF"), stmtWithText("XXX")}
	res, err := svc.MapBatch(context.Background(), stmts)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Dropped)
	require.Len(t, res.Statements, 1)
	assert.Equal(t, "1097", res.Statements[0].Agents[0].DBRefs[grounding.NamespaceHGNC])
	assert.NotEmpty(t, res.BatchID)

	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.StatementsMapped))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.StatementsDropped))

	require.Len(t, producer.completed, 1)
	assert.Equal(t, res.BatchID, producer.completed[0].BatchID)
	assert.Equal(t, 1, producer.completed[0].Mapped)
	require.Len(t, producer.dropped, 1)
	assert.Equal(t, stmts[1].ID, producer.dropped[0].StatementID)
}

func TestMapBatchLeavesInputIntact(t *testing.T) {
	gm := grounding.GroundingMap{
		"BRAF": grounding.DBRefs{grounding.NamespaceHGNC: "BRAF"},
	}
	svc := NewService(newTestParams(gm), nil, nil, nil, nil)

	in := stmtWithText("BRAF")
	_, err := svc.MapBatch(context.Background(), []*agent.Statement{in})
	require.NoError(t, err)
	assert.Equal(t, grounding.DBRefs{grounding.NamespaceText: "BRAF"}, in.Agents[0].DBRefs)
}

func TestGround(t *testing.T) {
	gm := grounding.GroundingMap{
		"BRAF": grounding.DBRefs{grounding.NamespaceHGNC: "BRAF"},
		"XXX":  nil,
	}
	svc := NewService(newTestParams(gm), nil, nil, nil, nil)

	res, err := svc.Ground(context.Background(), "BRAF")
	require.NoError(t, err)
	assert.False(t, res.Dropped)
	assert.Equal(t, "BRAF", res.Name)
	assert.Equal(t, "1097", res.DBRefs[grounding.NamespaceHGNC])

	res, err = svc.Ground(context.Background(), "XXX")
	require.NoError(t, err)
	assert.True(t, res.Dropped)
	assert.Nil(t, res.DBRefs)
}

func TestUpdateGroundingMapSwapsLiveMapper(t *testing.T) {
	svc := NewService(newTestParams(grounding.GroundingMap{}), nil, nil, nil, nil)

	res, err := svc.Ground(context.Background(), "BRAF")
	require.NoError(t, err)
	assert.False(t, res.DBRefs.Grounded())

	svc.UpdateGroundingMap(grounding.GroundingMap{
		"BRAF": grounding.DBRefs{grounding.NamespaceHGNC: "BRAF"},
	})

	res, err = svc.Ground(context.Background(), "BRAF")
	require.NoError(t, err)
	assert.Equal(t, "1097", res.DBRefs[grounding.NamespaceHGNC])
}

func TestMostSpecificWithoutSelector(t *testing.T) {
	svc := NewService(newTestParams(grounding.GroundingMap{}), nil, nil, nil, nil)
	id, err := svc.MostSpecific(context.Background(), grounding.NamespaceChEBI, []string{"15996"})
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestMostSpecificWithSelector(t *testing.T) {
	h := domaingrounding.NewMemoryHierarchy()
	h.AddIsA(grounding.NamespaceChEBI, "15996", "33250")
	svc := NewService(newTestParams(grounding.GroundingMap{}), domaingrounding.NewSelector(h), nil, nil, nil)

	id, err := svc.MostSpecific(context.Background(), grounding.NamespaceChEBI, []string{"33250", "15996"})
	require.NoError(t, err)
	assert.Equal(t, "15996", id)
}

//Personal.AI order the ending
