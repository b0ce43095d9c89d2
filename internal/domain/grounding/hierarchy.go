package grounding

import (
	"context"
	"sync"

	"github.com/biotext/bioground/pkg/types/grounding"
)

// MemoryHierarchy is an in-memory HierarchyOracle over explicit is-a edges.
// It answers transitive reachability by depth-first walk; suitable for the
// ontology slices shipped as local relation tables and for single-process
// deployments that do not run the graph database.
type MemoryHierarchy struct {
	mu sync.RWMutex
	// parents[ns][child] = set of direct parents
	parents map[grounding.Namespace]map[string]map[string]struct{}
}

// NewMemoryHierarchy returns an empty hierarchy.
func NewMemoryHierarchy() *MemoryHierarchy {
	return &MemoryHierarchy{
		parents: make(map[grounding.Namespace]map[string]map[string]struct{}),
	}
}

// AddIsA records a direct is-a edge from child to parent.  ChEBI identifiers
// are stored prefix-free.
func (h *MemoryHierarchy) AddIsA(ns grounding.Namespace, child, parent string) {
	if ns == grounding.NamespaceChEBI {
		child = StripChEBIPrefix(child)
		parent = StripChEBIPrefix(parent)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	byChild, ok := h.parents[ns]
	if !ok {
		byChild = make(map[string]map[string]struct{})
		h.parents[ns] = byChild
	}
	set, ok := byChild[child]
	if !ok {
		set = make(map[string]struct{})
		byChild[child] = set
	}
	set[parent] = struct{}{}
}

// IsA reports whether child reaches parent through one or more is-a edges.
// An identifier never reaches itself through zero edges.
func (h *MemoryHierarchy) IsA(ctx context.Context, ns grounding.Namespace, child, parent string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if ns == grounding.NamespaceChEBI {
		child = StripChEBIPrefix(child)
		parent = StripChEBIPrefix(parent)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	byChild := h.parents[ns]
	if byChild == nil {
		return false, nil
	}

	seen := map[string]struct{}{}
	stack := []string{child}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for p := range byChild[cur] {
			if p == parent {
				return true, nil
			}
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				stack = append(stack, p)
			}
		}
	}
	return false, nil
}

//Personal.AI order the ending
