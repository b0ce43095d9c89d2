package grounding

import (
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// Reconciler enforces cross-namespace consistency between the UniProt and
// HGNC entries of an identifier record.  Curated records carry HGNC gene
// symbols; the reconciler's output always carries HGNC IDs.
type Reconciler struct {
	genes GeneRegistry
	log   logging.Logger
}

// NewReconciler constructs a Reconciler over the given gene registry.
func NewReconciler(genes GeneRegistry, log logging.Logger) *Reconciler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Reconciler{genes: genes, log: log.Named("reconciler")}
}

// StandardizeRefs applies the UP/HGNC decision table to refs in place and
// returns it.  The four cases:
//
//	UP only       — best-effort enrichment: derive the gene name for the
//	                accession and, if an HGNC ID exists for it, add HGNC.
//	                Nothing here fails.
//	HGNC only     — the HGNC entry holds a curated gene symbol.  Resolve it
//	                to an HGNC ID (failure is a data-integrity fault), replace
//	                the symbol with the ID, then best-effort fill UP.
//	both          — derive the gene name for the UP accession; a missing gene
//	                name or a name that differs from the curated symbol is a
//	                data-integrity fault.  On agreement, replace the symbol
//	                with its HGNC ID; if that final resolution fails the
//	                inconsistency is logged and the symbol left in place, but
//	                no error is returned.
//	neither       — no-op.
//
// Data-integrity faults are *errors.AppError values with the codes
// ErrCodeUnknownGeneSymbol / ErrCodeGeneNameMismatch; they signal a broken
// curated table and are never swallowed by callers.
func (r *Reconciler) StandardizeRefs(refs grounding.DBRefs) (grounding.DBRefs, error) {
	if refs == nil {
		return nil, nil
	}

	upID, hasUP := refs[grounding.NamespaceUniProt]
	hgncSym, hasHGNC := refs[grounding.NamespaceHGNC]

	switch {
	case hasUP && !hasHGNC:
		geneName, ok := r.genes.GeneNameForUniProt(upID)
		if !ok {
			return refs, nil
		}
		if hgncID, ok := r.genes.HGNCIDForSymbol(geneName); ok {
			refs[grounding.NamespaceHGNC] = hgncID
		}

	case hasHGNC && !hasUP:
		hgncID, ok := r.genes.HGNCIDForSymbol(hgncSym)
		if !ok {
			return refs, apperrors.Newf(apperrors.ErrCodeUnknownGeneSymbol,
				"no HGNC ID corresponds to gene symbol %s", hgncSym)
		}
		refs[grounding.NamespaceHGNC] = hgncID
		if upID, ok := r.genes.UniProtForHGNCID(hgncID); ok {
			refs[grounding.NamespaceUniProt] = upID
		}

	case hasUP && hasHGNC:
		geneName, ok := r.genes.GeneNameForUniProt(upID)
		if !ok {
			return refs, apperrors.Newf(apperrors.ErrCodeGeneNameMismatch,
				"no gene name found for UniProt ID %s (expected %s)", upID, hgncSym)
		}
		if geneName != hgncSym {
			return refs, apperrors.Newf(apperrors.ErrCodeGeneNameMismatch,
				"gene name %s for UniProt ID %s does not match symbol %s",
				geneName, upID, hgncSym)
		}
		hgncID, ok := r.genes.HGNCIDForSymbol(hgncSym)
		if !ok {
			// The symbol round-trips through UniProt but has no HGNC ID of its
			// own; leave the symbol in place for a curator to inspect.
			r.log.Error("gene symbol resolves via UniProt but has no HGNC ID",
				logging.String("symbol", hgncSym),
				logging.String("uniprot", upID))
			return refs, nil
		}
		refs[grounding.NamespaceHGNC] = hgncID
	}

	return refs, nil
}

//Personal.AI order the ending
