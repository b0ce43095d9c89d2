// Package grounding defines the shared value types for identifier grounding:
// the closed namespace enumeration, the identifier record (db_refs) carried by
// every entity mention, and the curated grounding-map structures.  No behavior
// beyond cheap accessors and copies lives here — resolution logic belongs to
// internal/domain/grounding.
package grounding

import (
	"sort"
)

// ─────────────────────────────────────────────────────────────────────────────
// Namespace — the closed set of identifier systems
// ─────────────────────────────────────────────────────────────────────────────

// Namespace identifies one of the fixed identifier systems the platform
// grounds against.  The set is closed: grounding operates over exactly these
// namespaces and never learns new ones at runtime.
type Namespace string

const (
	// NamespaceText holds the original observed string of a mention.  It is
	// bookkeeping, never a grounding: a record whose only key is TEXT counts
	// as ungrounded.
	NamespaceText Namespace = "TEXT"

	NamespaceHGNC    Namespace = "HGNC"
	NamespaceUniProt Namespace = "UP"
	NamespaceFamPlex Namespace = "FPLX"
	NamespaceChEBI   Namespace = "CHEBI"
	NamespaceMeSH    Namespace = "MESH"
	NamespaceGO      Namespace = "GO"
	NamespacePubChem Namespace = "PUBCHEM"
	NamespaceChEMBL  Namespace = "CHEMBL"
	NamespaceCAS     Namespace = "CAS"
)

// AllNamespaces lists every valid namespace, TEXT included.
var AllNamespaces = []Namespace{
	NamespaceText, NamespaceHGNC, NamespaceUniProt, NamespaceFamPlex,
	NamespaceChEBI, NamespaceMeSH, NamespaceGO, NamespacePubChem,
	NamespaceChEMBL, NamespaceCAS,
}

// Valid reports whether ns is a member of the closed namespace set.
func (ns Namespace) Valid() bool {
	for _, n := range AllNamespaces {
		if ns == n {
			return true
		}
	}
	return false
}

// ParseNamespace converts a raw string to a Namespace, reporting whether the
// string names a member of the closed set.
func ParseNamespace(s string) (Namespace, bool) {
	ns := Namespace(s)
	return ns, ns.Valid()
}

// ─────────────────────────────────────────────────────────────────────────────
// DBRefs — the identifier record
// ─────────────────────────────────────────────────────────────────────────────

// DBRefs maps namespaces to identifier values for a single entity mention.
// Map semantics guarantee the invariant that each namespace appears at most
// once.  A nil DBRefs is treated as empty everywhere.
type DBRefs map[Namespace]string

// Text returns the original observed string, or "" when absent.
func (r DBRefs) Text() string {
	return r[NamespaceText]
}

// Grounded reports whether the record carries at least one entry besides TEXT.
func (r DBRefs) Grounded() bool {
	for ns := range r {
		if ns != NamespaceText {
			return true
		}
	}
	return false
}

// Copy returns an independent shallow copy of the record.  Copy(nil) == nil.
func (r DBRefs) Copy() DBRefs {
	if r == nil {
		return nil
	}
	out := make(DBRefs, len(r))
	for ns, id := range r {
		out[ns] = id
	}
	return out
}

// Namespaces returns the populated namespaces in deterministic (sorted) order.
func (r DBRefs) Namespaces() []Namespace {
	out := make([]Namespace, 0, len(r))
	for ns := range r {
		out = append(out, ns)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether two records hold exactly the same entries.
func (r DBRefs) Equal(other DBRefs) bool {
	if len(r) != len(other) {
		return false
	}
	for ns, id := range r {
		if other[ns] != id {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Curated grounding map
// ─────────────────────────────────────────────────────────────────────────────

// GroundingMap is the curated text → identifier-record table.  Keys are
// case-sensitive observed texts matched exactly.  A nil value is the explicit
// no-grounding sentinel: the text is known to be degenerate and any statement
// mentioning it must be dropped.  Absence of a key means "no mapping known",
// which is a different condition and leaves the mention untouched.
type GroundingMap map[string]DBRefs

// Drops reports whether text is present and curated to the drop sentinel.
func (m GroundingMap) Drops(text string) bool {
	refs, ok := m[text]
	return ok && refs == nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Disambiguation
// ─────────────────────────────────────────────────────────────────────────────

// Ungrounded is the grounding value a disambiguation model returns when none
// of its known senses fit the context.
const Ungrounded = "ungrounded"

// DisambiguationResult is the outcome of one acronym-disambiguation call.
// Grounding is either Ungrounded or a "NAMESPACE:id" pair; Scores carries the
// per-sense probabilities and is attached to the mention as auxiliary
// metadata, never merged into its identifier record.
type DisambiguationResult struct {
	Grounding string             `json:"grounding"`
	Name      string             `json:"name"`
	Scores    map[string]float64 `json:"scores,omitempty"`
}

// IsUngrounded reports whether the model declined to ground the text.
func (d DisambiguationResult) IsUngrounded() bool {
	return d.Grounding == Ungrounded || d.Grounding == ""
}

//Personal.AI order the ending
