// Package reporting produces curation-oriented views over statement corpora:
// grounding frequency tables, ungrounded mention lists, evidence sentence
// lookup, and candidate grounding-map rows derived from trusted protein
// groundings.  These tables are what curators review when extending the
// curated grounding map.
package reporting

import (
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"github.com/biotext/bioground/internal/domain/agent"
	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// ─────────────────────────────────────────────────────────────────────────────
// Report row types
// ─────────────────────────────────────────────────────────────────────────────

// GroundingCount is one row of the texts-with-grounding table: a mention text,
// the identifier record it resolved to (TEXT excluded), and how many mentions
// carried exactly that record.
type GroundingCount struct {
	Text  string           `json:"text"`
	Refs  grounding.DBRefs `json:"refs"`
	Count int              `json:"count"`
}

// TextCount is one row of the ungrounded-texts table.
type TextCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Sentence is one evidence sentence mentioning a given text.
type Sentence struct {
	StatementID string `json:"statement_id"`
	PMID        string `json:"pmid,omitempty"`
	Text        string `json:"text"`
}

// Service builds the reports.  The gene registry backs the protein-map
// derivation; the other reports are pure corpus traversals.
type Service struct {
	genes domaingrounding.GeneRegistry
	log   logging.Logger
}

// NewService constructs a Service.
func NewService(genes domaingrounding.GeneRegistry, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{genes: genes, log: log.Named("reporting")}
}

// ─────────────────────────────────────────────────────────────────────────────
// Corpus traversal
// ─────────────────────────────────────────────────────────────────────────────

// AllAgents flattens every non-nil agent in the corpus, bound-condition
// partners included, preserving statement and slot order.
func AllAgents(stmts []*agent.Statement) []*agent.Agent {
	var out []*agent.Agent
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		for _, a := range stmt.Agents {
			if a == nil {
				continue
			}
			out = append(out, a)
			for _, bc := range a.BoundConditions {
				if bc != nil && bc.Agent != nil {
					out = append(out, bc.Agent)
				}
			}
		}
	}
	return out
}

// groundingKey is a deterministic serialisation of a non-TEXT identifier
// record, used to bucket identical groundings.
func groundingKey(refs grounding.DBRefs) (string, grounding.DBRefs) {
	stripped := grounding.DBRefs{}
	keys := make([]string, 0, len(refs))
	for ns, id := range refs {
		if ns == grounding.NamespaceText {
			continue
		}
		stripped[ns] = id
		keys = append(keys, string(ns)+":"+id)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|"), stripped
}

// TextsWithGrounding tabulates, for every grounded mention text, the distinct
// identifier records it resolved to and their frequencies.  Rows are ordered
// by descending count, ties broken by text for stable output.
func (s *Service) TextsWithGrounding(stmts []*agent.Statement) []GroundingCount {
	type bucket struct {
		row GroundingCount
	}
	counts := map[string]*bucket{}
	for _, a := range AllAgents(stmts) {
		text := a.Text()
		if text == "" || !a.Grounded() {
			continue
		}
		key, stripped := groundingKey(a.DBRefs)
		full := text + "\x00" + key
		b, ok := counts[full]
		if !ok {
			b = &bucket{row: GroundingCount{Text: text, Refs: stripped}}
			counts[full] = b
		}
		b.row.Count++
	}

	out := make([]GroundingCount, 0, len(counts))
	for _, b := range counts {
		out = append(out, b.row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// UngroundedTexts tabulates mention texts that carry no identifier beyond
// TEXT, by descending frequency.
func (s *Service) UngroundedTexts(stmts []*agent.Statement) []TextCount {
	counts := map[string]int{}
	for _, a := range AllAgents(stmts) {
		text := a.Text()
		if text == "" || a.Grounded() {
			continue
		}
		counts[text]++
	}
	out := make([]TextCount, 0, len(counts))
	for text, n := range counts {
		out = append(out, TextCount{Text: text, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// SentencesForText collects up to max evidence sentences for statements that
// mention text.  max <= 0 means no limit.
func (s *Service) SentencesForText(text string, stmts []*agent.Statement, max int) []Sentence {
	var out []Sentence
	for _, stmt := range stmts {
		if stmt == nil || !mentionsText(stmt, text) {
			continue
		}
		for _, ev := range stmt.Evidence {
			if ev == nil || ev.Text == "" {
				continue
			}
			out = append(out, Sentence{StatementID: stmt.ID, PMID: ev.PMID, Text: ev.Text})
			if max > 0 && len(out) >= max {
				return out
			}
		}
	}
	return out
}

func mentionsText(stmt *agent.Statement, text string) bool {
	for _, a := range stmt.Agents {
		if a != nil && a.Text() == text {
			return true
		}
		if a == nil {
			continue
		}
		for _, bc := range a.BoundConditions {
			if bc != nil && bc.Agent != nil && bc.Agent.Text() == text {
				return true
			}
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Grounding-map candidates
// ─────────────────────────────────────────────────────────────────────────────

// ProteinMap derives candidate grounding-map entries from the corpus: texts
// whose only grounding is a human UniProt accession whose gene name equals
// the text itself.  Such mentions are trusted enough to promote into the
// curated map for review.
func (s *Service) ProteinMap(stmts []*agent.Statement) grounding.GroundingMap {
	out := grounding.GroundingMap{}
	for _, row := range s.TextsWithGrounding(stmts) {
		if len(row.Refs) != 1 {
			continue
		}
		up, ok := row.Refs[grounding.NamespaceUniProt]
		if !ok || !s.genes.IsHumanUniProt(up) {
			continue
		}
		name, ok := s.genes.GeneNameForUniProt(up)
		if !ok || name != row.Text {
			continue
		}
		if _, exists := out[row.Text]; exists {
			continue
		}
		refs := grounding.DBRefs{
			grounding.NamespaceText:    row.Text,
			grounding.NamespaceUniProt: up,
		}
		if id, ok := s.genes.HGNCIDForSymbol(name); ok {
			refs[grounding.NamespaceHGNC] = id
		}
		out[row.Text] = refs
	}
	s.log.Debug("derived protein map candidates", logging.Int("entries", len(out)))
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// CSV export
// ─────────────────────────────────────────────────────────────────────────────

// WriteBaseMap writes the texts-with-grounding table in the curated
// grounding-map CSV layout: text followed by alternating namespace and
// identifier columns, one row per (text, record) pair.
func WriteBaseMap(w io.Writer, rows []GroundingCount) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		record := []string{row.Text}
		keys := make([]string, 0, len(row.Refs))
		for ns := range row.Refs {
			keys = append(keys, string(ns))
		}
		sort.Strings(keys)
		for _, ns := range keys {
			record = append(record, ns, row.Refs[grounding.Namespace(ns)])
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to write base map row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to flush base map")
	}
	return nil
}

// WriteSentences writes evidence sentences as CSV rows of
// (statement_id, pmid, sentence).
func WriteSentences(w io.Writer, sentences []Sentence) error {
	cw := csv.NewWriter(w)
	for _, s := range sentences {
		if err := cw.Write([]string{s.StatementID, s.PMID, s.Text}); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to write sentence row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to flush sentences")
	}
	return nil
}

//Personal.AI order the ending
