// Package resources loads the bulk lookup tables and curated maps the
// grounding engine is built from: gene/chemical/term cross-reference TSVs,
// ontology relation tables, the curated grounding-map CSV with its companion
// ignore and misgrounding files, and the prebuilt agent-map JSON.
//
// Tables are read through the ResourceStore abstraction so the same loader
// serves local directories and object storage.
package resources

import (
	"context"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/biotext/bioground/pkg/errors"
)

// Canonical resource file names, resolved relative to the configured
// resource directory (or object-key prefix).
const (
	FileHGNCEntries     = "hgnc_entries.tsv"
	FileUniProtEntries  = "uniprot_entries.tsv"
	FileChEBIEntries    = "chebi_entries.tsv"
	FileChEBISecondary  = "chebi_secondaries.tsv"
	FileChEBIPubChem    = "chebi_to_pubchem.tsv"
	FileChEBICAS        = "chebi_to_cas.tsv"
	FileChEBIChEMBL     = "chebi_to_chembl.tsv"
	FileHMDBChEBI       = "hmdb_to_chebi.tsv"
	FileMeSHLabels      = "mesh_id_label_mappings.tsv"
	FileGOLabels        = "go_id_label_mappings.tsv"
	FileChEBIRelations  = "chebi_relations.tsv"
	FileGORelations     = "go_relations.tsv"
	FileMeSHRelations   = "mesh_relations.tsv"
)

// ResourceStore opens a named resource for reading.  Implementations:
// FSStore (local directory) and the MinIO-backed store in
// infrastructure/storage/minio.
type ResourceStore interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FSStore reads resources from a local directory.
type FSStore struct {
	dir string
}

// NewFSStore returns a store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Open opens dir/name.  A missing file maps to a CodeNotFound AppError so
// callers can distinguish optional tables from read failures.
func (s *FSStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("resource file not found").WithDetail(name)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDataSourceParseError, "failed to open resource file").WithDetail(name)
	}
	return f, nil
}

//Personal.AI order the ending
