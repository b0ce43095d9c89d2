package grounding

import (
	"context"

	"github.com/biotext/bioground/pkg/types/grounding"
)

// Namer selects the canonical display name for an identifier record.
type Namer struct {
	genes      GeneRegistry
	terms      TermRegistry
	normalizer *ChEBINormalizer
}

// NewNamer constructs a Namer over the given registries.
func NewNamer(genes GeneRegistry, terms TermRegistry, normalizer *ChEBINormalizer) *Namer {
	return &Namer{genes: genes, terms: terms, normalizer: normalizer}
}

// namePriority fixes the namespace precedence for canonical naming.
var namePriority = []grounding.Namespace{
	grounding.NamespaceFamPlex,
	grounding.NamespaceHGNC,
	grounding.NamespaceUniProt,
	grounding.NamespaceChEBI,
	grounding.NamespaceMeSH,
	grounding.NamespaceGO,
}

// StandardizeName resolves the canonical name for refs: the first namespace
// in the priority order that carries a value decides, with no fall-through —
// if its lookup misses, the result is ("", false) and the caller keeps the
// existing name.  FamPlex entries are their own names.
func (n *Namer) StandardizeName(ctx context.Context, refs grounding.DBRefs) (string, bool) {
	for _, ns := range namePriority {
		id, ok := refs[ns]
		if !ok || id == "" {
			continue
		}
		switch ns {
		case grounding.NamespaceFamPlex:
			return id, true
		case grounding.NamespaceHGNC:
			if sym, ok := n.genes.SymbolForHGNCID(id); ok {
				return sym, true
			}
		case grounding.NamespaceUniProt:
			if name, ok := n.genes.GeneNameForUniProt(id); ok {
				return name, true
			}
		case grounding.NamespaceChEBI:
			if name, ok := n.normalizer.Name(ctx, id); ok {
				return name, true
			}
		case grounding.NamespaceMeSH:
			if name, ok := n.terms.MeSHName(id); ok {
				return name, true
			}
		case grounding.NamespaceGO:
			if name, ok := n.terms.GOName(id); ok {
				return name, true
			}
		}
		// First populated namespace decides; a lookup miss does not cascade.
		return "", false
	}
	return "", false
}

//Personal.AI order the ending
