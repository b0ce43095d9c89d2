package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biotext/bioground/internal/config"
	"github.com/biotext/bioground/internal/testutil"
	"github.com/biotext/bioground/pkg/types/grounding"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "hgnc_entries.tsv",
		"hgnc_id\tsymbol\tuniprot_id\n1097\tBRAF\tP15056\n")
	writeFile(t, dir, "uniprot_entries.tsv",
		"accession\tgene_name\torganism\nP15056\tBRAF\thuman\n")
	writeFile(t, dir, "chebi_entries.tsv",
		"chebi_id\tname\n15996\tGTP\n")
	writeFile(t, dir, "mesh_id_label_mappings.tsv",
		"mesh_id\tlabel\nD000255\tAdenosine Triphosphate\n")
	writeFile(t, dir, "go_id_label_mappings.tsv",
		"go_id\tlabel\nGO:0006915\tapoptotic process\n")
	gmPath := writeFile(t, dir, "grounding_map.csv",
		"BRAF,HGNC,BRAF\nXXX\nGTP,CHEBI,CHEBI:15996\n")

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Resources.Dir = dir
	cfg.Resources.GroundingMapPath = gmPath
	return cfg
}

func TestNewAssemblesEngineFromFiles(t *testing.T) {
	cfg := testConfig(t)
	log := testutil.NewRecordingLogger()

	comps, err := New(context.Background(), cfg, log, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, comps.Genes.Size())
	assert.Equal(t, 1, comps.Chems.Size())
	assert.Len(t, comps.GroundingMap, 3)
	assert.Nil(t, comps.Watcher)

	res, err := comps.Mapping.Ground(context.Background(), "BRAF")
	require.NoError(t, err)
	assert.Equal(t, "1097", res.DBRefs[grounding.NamespaceHGNC])
	assert.Equal(t, "P15056", res.DBRefs[grounding.NamespaceUniProt])

	res, err = comps.Mapping.Ground(context.Background(), "GTP")
	require.NoError(t, err)
	assert.Equal(t, "15996", res.DBRefs[grounding.NamespaceChEBI])
	assert.Equal(t, "GTP", res.Name)

	// Single-column rows are curated drop sentinels.
	res, err = comps.Mapping.Ground(context.Background(), "XXX")
	require.NoError(t, err)
	assert.True(t, res.Dropped)
}

func TestNewBuildsWatcherWhenEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Resources.Watch = true

	comps, err := New(context.Background(), cfg, testutil.NewRecordingLogger(), Options{})
	require.NoError(t, err)
	require.NotNil(t, comps.Watcher)
	require.NoError(t, comps.Watcher.Close())
}

func TestCloseReleasesSelfBuiltRemoteClient(t *testing.T) {
	cfg := testConfig(t)
	cfg.Remote.Enabled = true
	cfg.Remote.ChEBIBaseURL = "http://localhost:0"

	comps, err := New(context.Background(), cfg, testutil.NewRecordingLogger(), Options{})
	require.NoError(t, err)
	require.Len(t, comps.closers, 1, "self-built remote client registers its teardown")

	// Close is idempotent from the caller's view: the closer list drains once.
	comps.Close()
	comps.Close()
	assert.Empty(t, comps.closers)
}

func TestNewFailsOnMissingRequiredTable(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(filepath.Join(cfg.Resources.Dir, "hgnc_entries.tsv")))

	_, err := New(context.Background(), cfg, testutil.NewRecordingLogger(), Options{})
	require.Error(t, err)
}

//Personal.AI order the ending
