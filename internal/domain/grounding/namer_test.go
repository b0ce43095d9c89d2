package grounding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biotext/bioground/pkg/types/grounding"
)

func newTestNamer() *Namer {
	return NewNamer(newFakeGenes(), newFakeTerms(), newTestNormalizer(nil))
}

func TestStandardizeNamePriority(t *testing.T) {
	n := newTestNamer()
	ctx := context.Background()

	t.Run("FPLX entry is its own name and outranks everything", func(t *testing.T) {
		name, ok := n.StandardizeName(ctx, grounding.DBRefs{
			grounding.NamespaceFamPlex: "ERK",
			grounding.NamespaceHGNC:    "1097",
		})
		assert.True(t, ok)
		assert.Equal(t, "ERK", name)
	})

	t.Run("HGNC outranks UP", func(t *testing.T) {
		name, ok := n.StandardizeName(ctx, grounding.DBRefs{
			grounding.NamespaceHGNC:    "1097",
			grounding.NamespaceUniProt: "P04049",
		})
		assert.True(t, ok)
		assert.Equal(t, "BRAF", name)
	})

	t.Run("UP gene name", func(t *testing.T) {
		name, ok := n.StandardizeName(ctx, grounding.DBRefs{grounding.NamespaceUniProt: "P28482"})
		assert.True(t, ok)
		assert.Equal(t, "MAPK1", name)
	})

	t.Run("CHEBI name with secondary resolution", func(t *testing.T) {
		name, ok := n.StandardizeName(ctx, grounding.DBRefs{grounding.NamespaceChEBI: "CHEBI:73778"})
		assert.True(t, ok)
		assert.Equal(t, "GTP", name)
	})

	t.Run("MESH and GO labels", func(t *testing.T) {
		name, ok := n.StandardizeName(ctx, grounding.DBRefs{grounding.NamespaceMeSH: "D000255"})
		assert.True(t, ok)
		assert.Equal(t, "Adenosine Triphosphate", name)

		name, ok = n.StandardizeName(ctx, grounding.DBRefs{grounding.NamespaceGO: "GO:0006915"})
		assert.True(t, ok)
		assert.Equal(t, "apoptotic process", name)
	})
}

func TestStandardizeNameMissDoesNotCascade(t *testing.T) {
	n := newTestNamer()
	ctx := context.Background()

	// HGNC is the first populated namespace; its miss must not fall through to
	// the valid MESH entry.
	_, ok := n.StandardizeName(ctx, grounding.DBRefs{
		grounding.NamespaceHGNC: "424242",
		grounding.NamespaceMeSH: "D000255",
	})
	assert.False(t, ok)
}

func TestStandardizeNameUngroundedRecord(t *testing.T) {
	n := newTestNamer()
	_, ok := n.StandardizeName(context.Background(), grounding.DBRefs{grounding.NamespaceText: "ERK"})
	assert.False(t, ok)

	_, ok = n.StandardizeName(context.Background(), nil)
	assert.False(t, ok)
}

//Personal.AI order the ending
