package grounding

import (
	"context"

	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// Selector picks the most specific identifier from a candidate set using an
// is-a hierarchy.  It never sorts the candidates: is-a reachability is a
// partial order, and only the reduction below is well-defined on it.
type Selector struct {
	oracle HierarchyOracle
}

// NewSelector constructs a Selector over the given hierarchy.
func NewSelector(oracle HierarchyOracle) *Selector {
	return &Selector{oracle: oracle}
}

// Reduce removes every candidate that is a strict ancestor of some other
// candidate, preserving the input order of the survivors.  ChEBI inputs may
// carry the "CHEBI:" prefix; comparison and output use the bare form.
//
// Incomparable candidates all survive; an empty input yields an empty result.
func (s *Selector) Reduce(ctx context.Context, ns grounding.Namespace, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	bare := make([]string, len(ids))
	for i, id := range ids {
		if ns == grounding.NamespaceChEBI {
			bare[i] = StripChEBIPrefix(id)
		} else {
			bare[i] = id
		}
	}

	out := make([]string, 0, len(bare))
	for i, cand := range bare {
		ancestor := false
		for j, other := range bare {
			if i == j || cand == other {
				continue
			}
			isa, err := s.oracle.IsA(ctx, ns, other, cand)
			if err != nil {
				return nil, apperrors.Wrap(err, apperrors.ErrCodeHierarchyQuery,
					"is-a query failed during most-specific reduction")
			}
			if isa {
				ancestor = true
				break
			}
		}
		if !ancestor {
			out = append(out, cand)
		}
	}
	return out, nil
}

// MostSpecific returns the first element of the reduction, which by the
// stable-order guarantee is deterministic for a given input order.  An empty
// input yields ("", nil).
func (s *Selector) MostSpecific(ctx context.Context, ns grounding.Namespace, ids []string) (string, error) {
	reduced, err := s.Reduce(ctx, ns, ids)
	if err != nil {
		return "", err
	}
	if len(reduced) == 0 {
		return "", nil
	}
	return reduced[0], nil
}

//Personal.AI order the ending
