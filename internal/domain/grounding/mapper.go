package grounding

import (
	"context"
	"strings"

	"github.com/biotext/bioground/internal/domain/agent"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// ─────────────────────────────────────────────────────────────────────────────
// Context text acquisition
// ─────────────────────────────────────────────────────────────────────────────

// ContextTextProvider supplies the context sentences a disambiguation model
// needs for the mentions of a statement.  Implementations may reach out to
// text archives; the default uses the statement's own evidence.
type ContextTextProvider interface {
	ContextTexts(ctx context.Context, stmt *agent.Statement) []string
}

// evidenceTextProvider returns the statement's evidence sentences.
type evidenceTextProvider struct{}

func (evidenceTextProvider) ContextTexts(_ context.Context, stmt *agent.Statement) []string {
	return stmt.SentenceTexts()
}

// NewEvidenceTextProvider returns the default provider backed by statement
// evidence.
func NewEvidenceTextProvider() ContextTextProvider { return evidenceTextProvider{} }

// ─────────────────────────────────────────────────────────────────────────────
// Mapper
// ─────────────────────────────────────────────────────────────────────────────

// MapperParams collects the dependencies of a Mapper.  GroundingMap,
// Reconciler, Namer, and Normalizer are required; the rest default to
// disabled/no-op variants.
type MapperParams struct {
	GroundingMap  grounding.GroundingMap
	AgentMap      map[string]*agent.Agent
	Reconciler    *Reconciler
	Namer         *Namer
	Normalizer    *ChEBINormalizer
	Disambiguator Disambiguator
	Contexts      ContextTextProvider
	Observer      PipelineObserver
	Logger        logging.Logger

	// Rename controls whether mapped mentions also get their display name
	// re-standardized from the final identifier record.
	Rename bool
}

// Mapper re-grounds text-extracted mentions against the curated grounding
// map, reconciles the result across namespaces, and applies the optional
// disambiguation hook.  A Mapper is immutable after construction and safe for
// concurrent use.
type Mapper struct {
	gm         grounding.GroundingMap
	agentMap   map[string]*agent.Agent
	reconciler *Reconciler
	namer      *Namer
	normalizer *ChEBINormalizer
	disamb     Disambiguator
	contexts   ContextTextProvider
	obs        PipelineObserver
	log        logging.Logger
	rename     bool
}

// NewMapper constructs a Mapper from params.
func NewMapper(params MapperParams) *Mapper {
	if params.Disambiguator == nil {
		params.Disambiguator = NewDisabledDisambiguator()
	}
	if params.Contexts == nil {
		params.Contexts = NewEvidenceTextProvider()
	}
	if params.Observer == nil {
		params.Observer = NewNopObserver()
	}
	if params.Logger == nil {
		params.Logger = logging.NewNopLogger()
	}
	return &Mapper{
		gm:         params.GroundingMap,
		agentMap:   params.AgentMap,
		reconciler: params.Reconciler,
		namer:      params.Namer,
		normalizer: params.Normalizer,
		disamb:     params.Disambiguator,
		contexts:   params.Contexts,
		obs:        params.Observer,
		log:        params.Logger.Named("mapper"),
		rename:     params.Rename,
	}
}

// MapAgent re-grounds a single mention.  The input is never mutated; the
// returned agent is always a fresh value.  drop reports that the mention's
// text is curated to the explicit no-grounding sentinel, in which case the
// returned agent is nil.
//
// Pipeline: agent-map shortcut → grounding-map lookup (+ reconciliation and
// chemical normalization) → disambiguation hook.  The hook runs after the
// curated lookup and may override it; a panicking or failing hook is isolated
// and the pre-hook result returned.
func (m *Mapper) MapAgent(ctx context.Context, a *agent.Agent, contexts []string) (mapped *agent.Agent, drop bool, err error) {
	if a == nil {
		return nil, false, nil
	}
	text := a.Text()
	if text == "" {
		// Nothing to look up; pass a copy through untouched.
		return a.Clone(), false, nil
	}

	if canonical, ok := m.agentMap[text]; ok {
		m.obs.AgentMapHit()
		mapped = canonical.Clone()
		if mapped.DBRefs == nil {
			mapped.DBRefs = grounding.DBRefs{}
		}
		mapped.DBRefs[grounding.NamespaceText] = text
	} else if refs, ok := m.gm[text]; ok {
		m.obs.GroundingMapHit()
		if refs == nil {
			return nil, true, nil
		}
		mapped = a.Clone()
		if err := m.applyCurated(ctx, mapped, text, refs); err != nil {
			return nil, false, err
		}
	} else {
		mapped = a.Clone()
	}

	mapped = m.disambiguate(ctx, mapped, text, contexts)
	return mapped, false, nil
}

// applyCurated replaces the mention's identifier record with the curated one,
// reconciles UP/HGNC, normalizes the chemical namespaces, and optionally
// re-standardizes the display name.
func (m *Mapper) applyCurated(ctx context.Context, a *agent.Agent, text string, curated grounding.DBRefs) error {
	refs := grounding.DBRefs{grounding.NamespaceText: text}
	for ns, id := range curated {
		if ns == grounding.NamespaceText {
			continue
		}
		refs[ns] = id
	}

	refs, err := m.reconciler.StandardizeRefs(refs)
	if err != nil {
		return err
	}
	m.normalizer.NormalizeRefs(ctx, refs)
	a.DBRefs = refs

	if m.rename {
		if name, ok := m.namer.StandardizeName(ctx, refs); ok {
			a.Name = name
		}
	}
	return nil
}

// disambiguate runs the hook for texts the model covers.  The returned agent
// is the override result when the model grounds the text, or the input agent
// otherwise.  Scores are attached as auxiliary metadata whenever the model
// ran, including ungrounded outcomes.
func (m *Mapper) disambiguate(ctx context.Context, a *agent.Agent, text string, contexts []string) (out *agent.Agent) {
	out = a
	if !m.disamb.Applicable(text) {
		return out
	}

	defer func() {
		if r := recover(); r != nil {
			m.log.Error("disambiguation hook panicked",
				logging.String("text", text), logging.Any("panic", r))
			m.obs.DisambiguationOutcome(DisambOutcomeFailed)
			out = a
		}
	}()

	result, err := m.disamb.Disambiguate(ctx, text, contexts)
	if err != nil {
		m.log.Warn("disambiguation hook failed",
			logging.String("text", text), logging.Err(err))
		m.obs.DisambiguationOutcome(DisambOutcomeFailed)
		return a
	}

	a.DisambiguationScores = result.Scores
	if result.IsUngrounded() {
		m.obs.DisambiguationOutcome(DisambOutcomeUngrounded)
		return a
	}

	ns, id, ok := splitGrounding(result.Grounding)
	if !ok {
		m.log.Warn("disambiguation returned unparseable grounding",
			logging.String("text", text), logging.String("grounding", result.Grounding))
		m.obs.DisambiguationOutcome(DisambOutcomeFailed)
		return a
	}
	m.obs.DisambiguationOutcome(DisambOutcomeGrounded)

	a.DBRefs = grounding.DBRefs{grounding.NamespaceText: text, ns: id}
	if ns == grounding.NamespaceHGNC {
		// Model groundings name genes by HGNC ID; fill UP via the UP-absent
		// reconciliation path.  The ID is already resolved, so this cannot
		// produce an integrity fault.
		if up, ok := m.reconciler.genes.UniProtForHGNCID(id); ok {
			a.DBRefs[grounding.NamespaceUniProt] = up
		}
	}
	if result.Name != "" {
		a.Name = result.Name
	} else if name, ok := m.namer.StandardizeName(ctx, a.DBRefs); ok {
		a.Name = name
	}
	return a
}

// splitGrounding parses a "NAMESPACE:id" pair.  ChEBI groundings keep their
// inner prefix ("CHEBI:CHEBI:42196" never occurs; models emit "CHEBI:42196"
// whose namespace segment is consumed here and whose ID is left bare).
func splitGrounding(s string) (grounding.Namespace, string, bool) {
	i := strings.Index(s, ":")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	ns, ok := grounding.ParseNamespace(s[:i])
	if !ok || ns == grounding.NamespaceText {
		return "", "", false
	}
	return ns, s[i+1:], true
}

// ─────────────────────────────────────────────────────────────────────────────
// Statement-level mapping
// ─────────────────────────────────────────────────────────────────────────────

// MapStatement maps every mention of a statement, bound conditions included.
// The input statement is never mutated.  drop reports that some mention maps
// to the no-grounding sentinel, in which case the whole statement is
// discarded.  Data-integrity faults from reconciliation propagate.
func (m *Mapper) MapStatement(ctx context.Context, stmt *agent.Statement) (*agent.Statement, bool, error) {
	if stmt == nil {
		return nil, false, nil
	}
	contexts := m.contexts.ContextTexts(ctx, stmt)

	out := stmt.Clone()
	for i, a := range out.Agents {
		if a == nil {
			continue // unfilled slots survive untouched
		}
		mapped, dropped, err := m.MapAgent(ctx, a, contexts)
		if err != nil {
			return nil, false, err
		}
		if dropped {
			return nil, true, nil
		}

		// Mapping replaces the mention wholesale.  The original binding
		// structure is carried over only when the replacement brought none of
		// its own: prebuilt canonical agents may come with bound state that
		// must survive the swap.  Either way each bound mention is re-grounded
		// in turn.
		if len(mapped.BoundConditions) == 0 {
			mapped.BoundConditions = a.BoundConditions
		}
		for _, bc := range mapped.BoundConditions {
			if bc == nil || bc.Agent == nil {
				continue
			}
			boundMapped, boundDropped, err := m.MapAgent(ctx, bc.Agent, contexts)
			if err != nil {
				return nil, false, err
			}
			if boundDropped {
				return nil, true, nil
			}
			bc.Agent = boundMapped
		}
		out.Agents[i] = mapped
	}
	return out, false, nil
}

// MapStatements maps a batch in input order, returning the surviving
// statements and the number dropped.  The input slice and its statements are
// never mutated.  The first data-integrity fault aborts the batch.
func (m *Mapper) MapStatements(ctx context.Context, stmts []*agent.Statement) ([]*agent.Statement, int, error) {
	out := make([]*agent.Statement, 0, len(stmts))
	dropped := 0
	for _, stmt := range stmts {
		mapped, drop, err := m.MapStatement(ctx, stmt)
		if err != nil {
			return nil, dropped, err
		}
		if drop {
			dropped++
			m.log.Debug("statement dropped by grounding map",
				logging.String("stmt_id", stmt.ID))
			continue
		}
		if mapped != nil {
			out = append(out, mapped)
		}
	}
	return out, dropped, nil
}

// RenameStatements returns a copy of stmts in which every mention's display
// name, bound conditions included, is re-standardized from its identifier
// record.  Mentions whose name lookup misses keep their current name.
func (m *Mapper) RenameStatements(ctx context.Context, stmts []*agent.Statement) []*agent.Statement {
	out := make([]*agent.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		cp := stmt.Clone()
		for _, a := range cp.Agents {
			m.renameAgent(ctx, a)
		}
		out = append(out, cp)
	}
	return out
}

func (m *Mapper) renameAgent(ctx context.Context, a *agent.Agent) {
	if a == nil {
		return
	}
	if name, ok := m.namer.StandardizeName(ctx, a.DBRefs); ok {
		a.Name = name
	}
	for _, bc := range a.BoundConditions {
		if bc != nil {
			m.renameAgent(ctx, bc.Agent)
		}
	}
}

//Personal.AI order the ending
