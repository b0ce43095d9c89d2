// Package grounding implements the identifier-grounding engine: cross-
// reference registries, the ChEBI normalizer, most-specific-term selection
// over an is-a hierarchy, the UP/HGNC reconciler, canonical-name selection,
// and the statement-level grounding mapper.
//
// All lookup tables are injected through the registry interfaces below; the
// engine itself holds no global state and performs no I/O except through the
// optional remote-entry client.
package grounding

import (
	"context"

	"github.com/biotext/bioground/pkg/types/grounding"
)

// ─────────────────────────────────────────────────────────────────────────────
// Registry interfaces — read-only lookup tables
// ─────────────────────────────────────────────────────────────────────────────

// GeneRegistry answers gene-centric identifier lookups.  All methods follow
// the (value, ok) convention: a false ok is a soft miss, never an error.
// Implementations must be safe for concurrent use after construction.
type GeneRegistry interface {
	// HGNCIDForSymbol resolves an approved HGNC gene symbol to its numeric
	// HGNC ID (without the "HGNC:" prefix).
	HGNCIDForSymbol(symbol string) (string, bool)

	// SymbolForHGNCID resolves an HGNC ID to its approved gene symbol.
	SymbolForHGNCID(id string) (string, bool)

	// UniProtForHGNCID resolves an HGNC ID to its reviewed UniProt accession.
	UniProtForHGNCID(id string) (string, bool)

	// GeneNameForUniProt resolves a UniProt accession to its primary gene
	// name.  Only human, reviewed entries resolve.
	GeneNameForUniProt(accession string) (string, bool)

	// IsHumanUniProt reports whether the accession belongs to a human entry.
	IsHumanUniProt(accession string) bool
}

// ChemRegistry answers small-molecule identifier lookups.  ChEBI IDs are
// passed and returned in bare numeric form (no "CHEBI:" prefix).
// Implementations must be safe for concurrent use after construction.
type ChemRegistry interface {
	// PrimaryChEBI resolves a possibly-secondary ChEBI ID to its primary ID.
	// A primary ID resolves to itself.
	PrimaryChEBI(id string) (string, bool)

	// ChEBIName returns the ASCII name for a primary ChEBI ID.
	ChEBIName(id string) (string, bool)

	ChEBIForPubChem(cid string) (string, bool)
	PubChemForChEBI(id string) (string, bool)

	ChEBIForCAS(cas string) (string, bool)
	CASForChEBI(id string) (string, bool)

	ChEBIForChEMBL(chemblID string) (string, bool)
	ChEMBLForChEBI(id string) (string, bool)

	// ChEBIForHMDB resolves a Human Metabolome Database ID.  HMDB is not a
	// grounding namespace; the lookup exists for upstream table ingestion.
	ChEBIForHMDB(hmdbID string) (string, bool)
}

// TermRegistry answers controlled-vocabulary name lookups for the namespaces
// whose canonical names come straight from an ID→label table.
type TermRegistry interface {
	MeSHName(id string) (string, bool)
	GOName(id string) (string, bool)
}

// ─────────────────────────────────────────────────────────────────────────────
// HierarchyOracle — is-a reachability
// ─────────────────────────────────────────────────────────────────────────────

// HierarchyOracle answers transitive is-a queries over an ontology.
// IsA reports whether child is related to parent through one or more is-a
// edges; an identifier is not its own ancestor.  Identifiers are bare
// (prefix-free) within the given namespace.
type HierarchyOracle interface {
	IsA(ctx context.Context, ns grounding.Namespace, child, parent string) (bool, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Disambiguator — optional context-sensitive acronym resolution
// ─────────────────────────────────────────────────────────────────────────────

// Disambiguator resolves an ambiguous mention text against its surrounding
// context sentences.  Applicable reports whether the model has a sense
// inventory for the text at all, letting the mapper skip the (potentially
// expensive) Disambiguate call for texts the model knows nothing about.
//
// The mapper treats the disambiguator as untrusted: a panic or error from
// Disambiguate is isolated and logged, never propagated.
type Disambiguator interface {
	Applicable(text string) bool
	Disambiguate(ctx context.Context, text string, contexts []string) (grounding.DisambiguationResult, error)
}

// disabledDisambiguator is the no-model variant: applicable to nothing.
type disabledDisambiguator struct{}

func (disabledDisambiguator) Applicable(string) bool { return false }

func (disabledDisambiguator) Disambiguate(context.Context, string, []string) (grounding.DisambiguationResult, error) {
	return grounding.DisambiguationResult{Grounding: grounding.Ungrounded}, nil
}

// NewDisabledDisambiguator returns a Disambiguator that never applies.
func NewDisabledDisambiguator() Disambiguator { return disabledDisambiguator{} }

// ─────────────────────────────────────────────────────────────────────────────
// RemoteEntryClient — network fallback for ChEBI entries
// ─────────────────────────────────────────────────────────────────────────────

// ChEBIEntry is the subset of a remote ChEBI record the engine consumes.
// ID is the primary ChEBI ID in bare form, which lets a secondary-ID query
// double as a secondary→primary resolution.
type ChEBIEntry struct {
	ID       string
	Name     string
	InChIKey string
}

// RemoteEntryClient fetches a ChEBI entry from the EBI web service.
// A nil entry with a nil error means the ID does not resolve remotely;
// implementations map non-200 responses and malformed payloads to that
// not-found result rather than an error.  Errors are reserved for transport
// failures and context cancellation.
type RemoteEntryClient interface {
	FetchChEBIEntry(ctx context.Context, id string) (*ChEBIEntry, error)
}

// disabledRemoteClient answers every query with not-found, for deployments
// that must never perform network I/O.
type disabledRemoteClient struct{}

func (disabledRemoteClient) FetchChEBIEntry(context.Context, string) (*ChEBIEntry, error) {
	return nil, nil
}

// NewDisabledRemoteClient returns a RemoteEntryClient that never resolves.
func NewDisabledRemoteClient() RemoteEntryClient { return disabledRemoteClient{} }

//Personal.AI order the ending
