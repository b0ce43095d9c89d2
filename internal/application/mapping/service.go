// Package mapping orchestrates the grounding engine for batch and one-shot
// callers: it owns the live Mapper instance, emits metrics and pipeline
// events, and supports hot-swapping the curated grounding map.
package mapping

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/biotext/bioground/internal/domain/agent"
	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/messaging/kafka"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/prometheus"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// Result summarises one batch-mapping run.
type Result struct {
	BatchID    string             `json:"batch_id"`
	Statements []*agent.Statement `json:"statements"`
	Total      int                `json:"total"`
	Dropped    int                `json:"dropped"`
}

// GroundResult is the outcome of a one-shot text lookup.
type GroundResult struct {
	Text    string           `json:"text"`
	Name    string           `json:"name,omitempty"`
	DBRefs  grounding.DBRefs `json:"db_refs,omitempty"`
	Dropped bool             `json:"dropped"`
}

// Service wires the Mapper to metrics and event publication.  The mapper is
// held behind an atomic pointer so the grounding-map watcher can swap in a
// rebuilt instance without interrupting in-flight batches.
type Service struct {
	params   domaingrounding.MapperParams
	mapper   atomic.Pointer[domaingrounding.Mapper]
	selector *domaingrounding.Selector
	metrics  *prometheus.Metrics
	producer kafka.EventProducer
	log      logging.Logger
}

// NewService constructs a Service.  metrics and producer may be nil.
func NewService(params domaingrounding.MapperParams, selector *domaingrounding.Selector,
	metrics *prometheus.Metrics, producer kafka.EventProducer, log logging.Logger) *Service {
	if producer == nil {
		producer = kafka.NopProducer{}
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	s := &Service{
		params:   params,
		selector: selector,
		metrics:  metrics,
		producer: producer,
		log:      log.Named("mapping"),
	}
	s.mapper.Store(domaingrounding.NewMapper(params))
	return s
}

// UpdateGroundingMap rebuilds the mapper around gm.  Called by the file
// watcher when curators edit the map on disk.
func (s *Service) UpdateGroundingMap(gm grounding.GroundingMap) {
	params := s.params
	params.GroundingMap = gm
	s.mapper.Store(domaingrounding.NewMapper(params))
	s.log.Info("mapper rebuilt with updated grounding map", logging.Int("entries", len(gm)))
}

// MapBatch maps a batch of statements, recording metrics and publishing a
// drop event per discarded statement plus a completion event for the run.
func (s *Service) MapBatch(ctx context.Context, stmts []*agent.Statement) (*Result, error) {
	m := s.mapper.Load()
	batchID := uuid.NewString()
	start := time.Now()

	out := make([]*agent.Statement, 0, len(stmts))
	dropped := 0
	for _, stmt := range stmts {
		mapped, drop, err := m.MapStatement(ctx, stmt)
		if err != nil {
			return nil, err
		}
		if drop {
			dropped++
			if s.metrics != nil {
				s.metrics.StatementsDropped.Inc()
			}
			if err := s.producer.PublishStatementDropped(ctx, kafka.StatementDroppedEvent{
				BatchID:     batchID,
				StatementID: stmt.ID,
				Timestamp:   time.Now().UTC(),
			}); err != nil {
				s.log.Warn("failed to publish drop event",
					logging.String("stmt_id", stmt.ID), logging.Err(err))
			}
			continue
		}
		if mapped != nil {
			out = append(out, mapped)
			if s.metrics != nil {
				s.metrics.StatementsMapped.Inc()
			}
		}
	}

	if s.metrics != nil {
		s.metrics.MappingDuration.Observe(time.Since(start).Seconds())
	}
	if err := s.producer.PublishMappingCompleted(ctx, kafka.MappingCompletedEvent{
		BatchID:   batchID,
		Total:     len(stmts),
		Mapped:    len(out),
		Dropped:   dropped,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish completion event",
			logging.String("batch_id", batchID), logging.Err(err))
	}

	s.log.Info("batch mapped",
		logging.String("batch_id", batchID),
		logging.Int("total", len(stmts)),
		logging.Int("dropped", dropped),
		logging.Duration("elapsed", time.Since(start)))

	return &Result{
		BatchID:    batchID,
		Statements: out,
		Total:      len(stmts),
		Dropped:    dropped,
	}, nil
}

// Ground performs a one-shot lookup for a raw mention text.
func (s *Service) Ground(ctx context.Context, text string) (*GroundResult, error) {
	m := s.mapper.Load()
	mapped, drop, err := m.MapAgent(ctx, agent.New(text, text), nil)
	if err != nil {
		return nil, err
	}
	if drop {
		return &GroundResult{Text: text, Dropped: true}, nil
	}
	return &GroundResult{Text: text, Name: mapped.Name, DBRefs: mapped.DBRefs}, nil
}

// Rename re-standardizes display names across a batch without re-grounding.
func (s *Service) Rename(ctx context.Context, stmts []*agent.Statement) []*agent.Statement {
	return s.mapper.Load().RenameStatements(ctx, stmts)
}

// MostSpecific reduces a candidate set over the is-a hierarchy and returns
// the first survivor.  Empty when the input is empty or no selector is wired.
func (s *Service) MostSpecific(ctx context.Context, ns grounding.Namespace, ids []string) (string, error) {
	if s.selector == nil {
		return "", nil
	}
	return s.selector.MostSpecific(ctx, ns, ids)
}

//Personal.AI order the ending
