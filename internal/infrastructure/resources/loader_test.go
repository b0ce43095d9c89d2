package resources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// writeResources populates a temp dir with the given file contents and
// returns a loader over it.
func writeResources(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return NewLoader(NewFSStore(dir), nil)
}

func TestLoadGeneTable(t *testing.T) {
	l := writeResources(t, map[string]string{
		FileHGNCEntries: "hgnc_id\tsymbol\tuniprot_id\n" +
			"1097\tBRAF\tP15056\n" +
			"6840\tMAP2K1\t\n",
		FileUniProtEntries: "accession\tgene_name\torganism\n" +
			"P15056\tBRAF\thuman\n" +
			"P00000\tXyz\tmouse\n",
	})

	gt, err := l.LoadGeneTable(context.Background())
	require.NoError(t, err)

	id, ok := gt.HGNCIDForSymbol("BRAF")
	assert.True(t, ok)
	assert.Equal(t, "1097", id)

	up, ok := gt.UniProtForHGNCID("1097")
	assert.True(t, ok)
	assert.Equal(t, "P15056", up)

	_, ok = gt.UniProtForHGNCID("6840")
	assert.False(t, ok, "empty uniprot column stays unmapped")

	name, ok := gt.GeneNameForUniProt("P15056")
	assert.True(t, ok)
	assert.Equal(t, "BRAF", name)

	assert.True(t, gt.IsHumanUniProt("P15056"))
	assert.False(t, gt.IsHumanUniProt("P00000"))
}

func TestLoadGeneTableMissingRequiredFile(t *testing.T) {
	l := writeResources(t, map[string]string{})
	_, err := l.LoadGeneTable(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLoadChemTableInChIKeyTieBreak(t *testing.T) {
	l := writeResources(t, map[string]string{
		FileChEBIEntries: "chebi_id\tname\n" +
			"CHEBI:15996\tGTP\n" +
			"17761\tceramide\n",
		FileChEBIPubChem: "chebi_id\tpubchem_id\tik_match\n" +
			"15996\t6830\t\n" + // first, unflagged
			"17761\t6830\tY\n" + // flagged row steals the key
			"15996\t111\tY\n" + // flagged mapping for 15996
			"15996\t222\tY\n", // later flagged row does not displace it
	})

	ct, err := l.LoadChemTable(context.Background())
	require.NoError(t, err)

	chebi, ok := ct.ChEBIForPubChem("6830")
	assert.True(t, ok)
	assert.Equal(t, "17761", chebi, "InChIKey-matched row outranks first-seen")

	pc, ok := ct.PubChemForChEBI("15996")
	assert.True(t, ok)
	assert.Equal(t, "111", pc, "first flagged row wins among flagged")

	// Prefix stripped during load.
	primary, ok := ct.PrimaryChEBI("15996")
	assert.True(t, ok)
	assert.Equal(t, "15996", primary)
}

func TestLoadChemTableSecondariesAndCASExtras(t *testing.T) {
	l := writeResources(t, map[string]string{
		FileChEBIEntries:   "chebi_id\tname\n15996\tGTP\n",
		FileChEBISecondary: "secondary_id\tprimary_id\nCHEBI:73778\t15996\n",
		FileChEBICAS:       "cas\tchebi_id\n86-01-1\t15996\n24696-26-2\t99999\n",
	})

	ct, err := l.LoadChemTable(context.Background())
	require.NoError(t, err)

	primary, ok := ct.PrimaryChEBI("73778")
	assert.True(t, ok)
	assert.Equal(t, "15996", primary)

	chebi, ok := ct.ChEBIForCAS("86-01-1")
	assert.True(t, ok)
	assert.Equal(t, "15996", chebi)

	// Manual extras fill gaps but never overwrite file rows.
	chebi, ok = ct.ChEBIForCAS("23261-20-3")
	assert.True(t, ok)
	assert.Equal(t, "18035", chebi)

	chebi, _ = ct.ChEBIForCAS("24696-26-2")
	assert.Equal(t, "99999", chebi, "file row beats the manual extra")
}

func TestLoadTermTableAndHierarchy(t *testing.T) {
	l := writeResources(t, map[string]string{
		FileMeSHLabels:     "id\tlabel\nD000255\tAdenosine Triphosphate\n",
		FileGOLabels:       "id\tlabel\nGO:0006915\tapoptotic process\n",
		FileChEBIRelations: "child\tparent\nCHEBI:17761\tCHEBI:33521\n",
	})

	tt, err := l.LoadTermTable(context.Background())
	require.NoError(t, err)
	name, ok := tt.MeSHName("D000255")
	assert.True(t, ok)
	assert.Equal(t, "Adenosine Triphosphate", name)

	h, err := l.LoadHierarchy(context.Background())
	require.NoError(t, err)
	isa, err := h.IsA(context.Background(), grounding.NamespaceChEBI, "17761", "33521")
	require.NoError(t, err)
	assert.True(t, isa)
}

func TestOptionalTablesMayBeAbsent(t *testing.T) {
	l := writeResources(t, map[string]string{
		FileChEBIEntries: "chebi_id\tname\n15996\tGTP\n",
	})

	ct, err := l.LoadChemTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ct.Size())

	tt, err := l.LoadTermTable(context.Background())
	require.NoError(t, err)
	_, ok := tt.MeSHName("D000255")
	assert.False(t, ok)
}

//Personal.AI order the ending
