package grounding

import (
	"context"
	"strings"
	"sync"

	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// chebiPrefix is the namespace prefix tolerated (and stripped) on input.
const chebiPrefix = "CHEBI:"

// StripChEBIPrefix returns the bare numeric form of a ChEBI ID.  Inputs
// already in bare form pass through unchanged.
func StripChEBIPrefix(id string) string {
	return strings.TrimPrefix(id, chebiPrefix)
}

// ─────────────────────────────────────────────────────────────────────────────
// ChEBINormalizer
// ─────────────────────────────────────────────────────────────────────────────

// ChEBINormalizer canonicalises ChEBI identifiers: it strips the "CHEBI:"
// prefix, replaces retired secondary IDs with their primary ID using the local
// synonym table, and — when a remote client is supplied — falls back to the
// EBI web service for IDs the local table does not know.
//
// Remote results (including not-found) are memoised per ID, so each distinct
// unknown ID costs at most one network round trip for the lifetime of the
// normalizer.
type ChEBINormalizer struct {
	chem   ChemRegistry
	remote RemoteEntryClient
	log    logging.Logger

	mu     sync.Mutex
	looked map[string]*ChEBIEntry // nil value = remote said not found
}

// NewChEBINormalizer constructs a normalizer.  remote may be nil, in which
// case no network fallback is attempted.
func NewChEBINormalizer(chem ChemRegistry, remote RemoteEntryClient, log logging.Logger) *ChEBINormalizer {
	if remote == nil {
		remote = NewDisabledRemoteClient()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ChEBINormalizer{
		chem:   chem,
		remote: remote,
		log:    log.Named("chebi-normalizer"),
		looked: make(map[string]*ChEBIEntry),
	}
}

// Normalize returns the primary, prefix-free form of id.  Resolution order:
//
//  1. strip the "CHEBI:" prefix;
//  2. local secondary→primary table;
//  3. remote entry fetch (at most once per distinct ID).
//
// When nothing resolves, the stripped input is returned as-is with ok=false;
// callers decide whether an unresolved ID is acceptable.
func (n *ChEBINormalizer) Normalize(ctx context.Context, id string) (string, bool) {
	bare := StripChEBIPrefix(id)
	if bare == "" {
		return "", false
	}
	if primary, ok := n.chem.PrimaryChEBI(bare); ok {
		return primary, true
	}
	if entry := n.fetchOnce(ctx, bare); entry != nil && entry.ID != "" {
		return StripChEBIPrefix(entry.ID), true
	}
	return bare, false
}

// Name returns the canonical ASCII name for a ChEBI ID, consulting the local
// table first and the remote entry cache second.
func (n *ChEBINormalizer) Name(ctx context.Context, id string) (string, bool) {
	bare, _ := n.Normalize(ctx, id)
	if name, ok := n.chem.ChEBIName(bare); ok {
		return name, true
	}
	if entry := n.fetchOnce(ctx, bare); entry != nil && entry.Name != "" {
		return entry.Name, true
	}
	return "", false
}

// fetchOnce performs the remote lookup for id at most once, memoising both
// positive and negative results.  Transport errors are logged and memoised as
// not-found so a flapping endpoint cannot stall bulk mapping runs.
func (n *ChEBINormalizer) fetchOnce(ctx context.Context, id string) *ChEBIEntry {
	n.mu.Lock()
	entry, seen := n.looked[id]
	n.mu.Unlock()
	if seen {
		return entry
	}

	entry, err := n.remote.FetchChEBIEntry(ctx, id)
	if err != nil {
		n.log.Warn("remote ChEBI lookup failed",
			logging.String("chebi_id", id), logging.Err(err))
		entry = nil
	}

	n.mu.Lock()
	n.looked[id] = entry
	n.mu.Unlock()
	return entry
}

// NormalizeRefs canonicalises the chemical namespaces of an identifier record
// in place and cross-fills the ones derivable from the local tables:
//
//   - CHEBI is normalised to its primary, prefix-free form;
//   - a missing CHEBI entry is derived from PUBCHEM, CAS, or CHEMBL (first
//     hit in that order);
//   - PUBCHEM, CAS, and CHEMBL are filled from CHEBI when absent.
//
// Existing entries are never overwritten; curated values win.
func (n *ChEBINormalizer) NormalizeRefs(ctx context.Context, refs grounding.DBRefs) {
	if refs == nil {
		return
	}

	if id, ok := refs[grounding.NamespaceChEBI]; ok {
		if primary, ok := n.Normalize(ctx, id); ok {
			refs[grounding.NamespaceChEBI] = primary
		} else {
			refs[grounding.NamespaceChEBI] = StripChEBIPrefix(id)
		}
	} else {
		if cid, ok := refs[grounding.NamespacePubChem]; ok {
			if chebi, ok := n.chem.ChEBIForPubChem(cid); ok {
				refs[grounding.NamespaceChEBI] = chebi
			}
		}
		if _, ok := refs[grounding.NamespaceChEBI]; !ok {
			if cas, ok := refs[grounding.NamespaceCAS]; ok {
				if chebi, ok := n.chem.ChEBIForCAS(cas); ok {
					refs[grounding.NamespaceChEBI] = chebi
				}
			}
		}
		if _, ok := refs[grounding.NamespaceChEBI]; !ok {
			if chembl, ok := refs[grounding.NamespaceChEMBL]; ok {
				if chebi, ok := n.chem.ChEBIForChEMBL(chembl); ok {
					refs[grounding.NamespaceChEBI] = chebi
				}
			}
		}
	}

	chebi, ok := refs[grounding.NamespaceChEBI]
	if !ok {
		return
	}
	if _, has := refs[grounding.NamespacePubChem]; !has {
		if cid, ok := n.chem.PubChemForChEBI(chebi); ok {
			refs[grounding.NamespacePubChem] = cid
		}
	}
	if _, has := refs[grounding.NamespaceCAS]; !has {
		if cas, ok := n.chem.CASForChEBI(chebi); ok {
			refs[grounding.NamespaceCAS] = cas
		}
	}
	if _, has := refs[grounding.NamespaceChEMBL]; !has {
		if chembl, ok := n.chem.ChEMBLForChEBI(chebi); ok {
			refs[grounding.NamespaceChEMBL] = chembl
		}
	}
}

//Personal.AI order the ending
