package grounding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// testHierarchy builds the chain child is-a mid is-a root.
func testHierarchy() *MemoryHierarchy {
	h := NewMemoryHierarchy()
	h.AddIsA(grounding.NamespaceChEBI, "child", "mid")
	h.AddIsA(grounding.NamespaceChEBI, "mid", "root")
	return h
}

func TestReduceRemovesStrictAncestors(t *testing.T) {
	s := NewSelector(testHierarchy())
	ctx := context.Background()

	out, err := s.Reduce(ctx, grounding.NamespaceChEBI, []string{"root", "child", "mid"})
	require.NoError(t, err)
	assert.Equal(t, []string{"child"}, out)
}

func TestReduceKeepsIncomparableInInputOrder(t *testing.T) {
	h := testHierarchy()
	h.AddIsA(grounding.NamespaceChEBI, "loner", "elsewhere")
	s := NewSelector(h)
	ctx := context.Background()

	out, err := s.Reduce(ctx, grounding.NamespaceChEBI, []string{"loner", "root", "child"})
	require.NoError(t, err)
	assert.Equal(t, []string{"loner", "child"}, out)

	out, err = s.Reduce(ctx, grounding.NamespaceChEBI, []string{"child", "loner"})
	require.NoError(t, err)
	assert.Equal(t, []string{"child", "loner"}, out, "stable input order among incomparable")
}

func TestReduceNormalizesChEBIPrefix(t *testing.T) {
	s := NewSelector(testHierarchy())
	out, err := s.Reduce(context.Background(), grounding.NamespaceChEBI,
		[]string{"CHEBI:root", "CHEBI:child"})
	require.NoError(t, err)
	assert.Equal(t, []string{"child"}, out)
}

func TestMostSpecific(t *testing.T) {
	s := NewSelector(testHierarchy())
	ctx := context.Background()

	id, err := s.MostSpecific(ctx, grounding.NamespaceChEBI, []string{"root", "mid"})
	require.NoError(t, err)
	assert.Equal(t, "mid", id)

	id, err = s.MostSpecific(ctx, grounding.NamespaceChEBI, nil)
	require.NoError(t, err)
	assert.Equal(t, "", id, "empty input is empty output, not an error")
}

type failingOracle struct{}

func (failingOracle) IsA(context.Context, grounding.Namespace, string, string) (bool, error) {
	return false, errors.New("neo4j unavailable")
}

func TestReduceWrapsOracleErrors(t *testing.T) {
	s := NewSelector(failingOracle{})
	_, err := s.Reduce(context.Background(), grounding.NamespaceChEBI, []string{"a", "b"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeHierarchyQuery))
}

func TestMemoryHierarchyIsA(t *testing.T) {
	h := testHierarchy()
	ctx := context.Background()

	isa, err := h.IsA(ctx, grounding.NamespaceChEBI, "child", "root")
	require.NoError(t, err)
	assert.True(t, isa, "transitive reachability")

	isa, err = h.IsA(ctx, grounding.NamespaceChEBI, "root", "child")
	require.NoError(t, err)
	assert.False(t, isa)

	isa, err = h.IsA(ctx, grounding.NamespaceChEBI, "child", "child")
	require.NoError(t, err)
	assert.False(t, isa, "an identifier is not its own ancestor")

	isa, err = h.IsA(ctx, grounding.NamespaceGO, "child", "root")
	require.NoError(t, err)
	assert.False(t, isa, "namespaces are independent")
}

//Personal.AI order the ending
