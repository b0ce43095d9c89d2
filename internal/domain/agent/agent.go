// Package agent defines the domain entities the grounding pipeline operates
// on: the Agent (a single entity mention extracted from text together with its
// identifier record), bound conditions, evidence, and the Statement that ties
// a set of agent slots to the sentence they were extracted from.
package agent

import (
	"github.com/google/uuid"

	"github.com/biotext/bioground/pkg/types/grounding"
)

// ─────────────────────────────────────────────────────────────────────────────
// Agent
// ─────────────────────────────────────────────────────────────────────────────

// Agent is one entity mention.  Name is the canonical display name; DBRefs is
// the identifier record keyed by namespace.  BoundConditions carries nested
// agents (e.g., a complex partner), each of which is itself re-grounded during
// statement mapping.
//
// DisambiguationScores is auxiliary metadata attached when a disambiguation
// model runs for the mention's text; it never participates in grounding
// decisions downstream.
type Agent struct {
	Name                 string             `json:"name"`
	DBRefs               grounding.DBRefs   `json:"db_refs"`
	BoundConditions      []*BoundCondition  `json:"bound_conditions,omitempty"`
	DisambiguationScores map[string]float64 `json:"disambiguation_scores,omitempty"`
}

// New constructs an Agent whose TEXT entry is initialised to text.
func New(name, text string) *Agent {
	return &Agent{
		Name:   name,
		DBRefs: grounding.DBRefs{grounding.NamespaceText: text},
	}
}

// Text returns the mention's original observed string, or "" when absent.
func (a *Agent) Text() string {
	if a == nil {
		return ""
	}
	return a.DBRefs.Text()
}

// Grounded reports whether the agent carries at least one identifier besides
// TEXT.
func (a *Agent) Grounded() bool {
	return a != nil && a.DBRefs.Grounded()
}

// Clone returns a deep copy of the agent: the identifier record, the score
// map, and every bound condition are copied so that mutation of the clone
// never leaks into the original.  Clone of nil is nil.
func (a *Agent) Clone() *Agent {
	if a == nil {
		return nil
	}
	out := &Agent{
		Name:   a.Name,
		DBRefs: a.DBRefs.Copy(),
	}
	if a.DisambiguationScores != nil {
		out.DisambiguationScores = make(map[string]float64, len(a.DisambiguationScores))
		for k, v := range a.DisambiguationScores {
			out.DisambiguationScores[k] = v
		}
	}
	if a.BoundConditions != nil {
		out.BoundConditions = make([]*BoundCondition, len(a.BoundConditions))
		for i, bc := range a.BoundConditions {
			out.BoundConditions[i] = bc.Clone()
		}
	}
	return out
}

// BoundCondition represents a binding constraint on an agent: the bound
// partner and whether the binding is asserted or negated.
type BoundCondition struct {
	Agent   *Agent `json:"agent"`
	IsBound bool   `json:"is_bound"`
}

// Clone returns a deep copy of the bound condition.
func (bc *BoundCondition) Clone() *BoundCondition {
	if bc == nil {
		return nil
	}
	return &BoundCondition{Agent: bc.Agent.Clone(), IsBound: bc.IsBound}
}

// ─────────────────────────────────────────────────────────────────────────────
// Evidence and Statement
// ─────────────────────────────────────────────────────────────────────────────

// Evidence records where a statement was extracted from.
type Evidence struct {
	ID     string `json:"id"`
	Text   string `json:"text,omitempty"`   // source sentence
	PMID   string `json:"pmid,omitempty"`   // PubMed ID when known
	Source string `json:"source,omitempty"` // extraction system name
}

// NewEvidence constructs an Evidence with a fresh UUID.
func NewEvidence(text, pmid, source string) *Evidence {
	return &Evidence{
		ID:     uuid.NewString(),
		Text:   text,
		PMID:   pmid,
		Source: source,
	}
}

// Clone returns a copy of the evidence.
func (e *Evidence) Clone() *Evidence {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// Statement is an extracted relation over an ordered list of agent slots.
// A slot may be nil (an unfilled argument position); slot order is semantic
// and must be preserved by every transformation.
type Statement struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Agents   []*Agent    `json:"agents"`
	Evidence []*Evidence `json:"evidence,omitempty"`
}

// NewStatement constructs a Statement with a fresh UUID.
func NewStatement(stmtType string, agents ...*Agent) *Statement {
	return &Statement{
		ID:     uuid.NewString(),
		Type:   stmtType,
		Agents: agents,
	}
}

// AgentList returns the statement's agent slots, nils included, in order.
func (s *Statement) AgentList() []*Agent {
	if s == nil {
		return nil
	}
	return s.Agents
}

// Clone returns a deep copy of the statement.  Evidence records are copied as
// well so that downstream annotation of the clone leaves the input intact.
func (s *Statement) Clone() *Statement {
	if s == nil {
		return nil
	}
	out := &Statement{ID: s.ID, Type: s.Type}
	if s.Agents != nil {
		out.Agents = make([]*Agent, len(s.Agents))
		for i, a := range s.Agents {
			out.Agents[i] = a.Clone()
		}
	}
	if s.Evidence != nil {
		out.Evidence = make([]*Evidence, len(s.Evidence))
		for i, ev := range s.Evidence {
			out.Evidence[i] = ev.Clone()
		}
	}
	return out
}

// SentenceTexts returns the evidence sentences attached to the statement.
func (s *Statement) SentenceTexts() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Evidence))
	for _, ev := range s.Evidence {
		if ev != nil && ev.Text != "" {
			out = append(out, ev.Text)
		}
	}
	return out
}

//Personal.AI order the ending
