package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	"github.com/biotext/bioground/internal/infrastructure/resources"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// XrefRepository serves the cross-reference tables from PostgreSQL.  Like the
// file loader it materialises the tables into memory at startup — per-lookup
// round trips would put the database on the hot path of every mention.
type XrefRepository struct {
	pool *pgxpool.Pool
	log  logging.Logger
}

// NewXrefRepository constructs a repository over pool.
func NewXrefRepository(pool *pgxpool.Pool, log logging.Logger) *XrefRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &XrefRepository{pool: pool, log: log.Named("xref-repo")}
}

func (r *XrefRepository) each(ctx context.Context, query string, fn func(row pgx.Rows) error) error {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "xref query failed").WithDetail(query)
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "xref row scan failed")
	}
	return nil
}

// LoadGeneTable builds the gene registry from hgnc_entries and
// uniprot_entries.
func (r *XrefRepository) LoadGeneTable(ctx context.Context) (*resources.GeneTable, error) {
	t := resources.NewGeneTable()

	err := r.each(ctx,
		`SELECT hgnc_id, symbol, COALESCE(uniprot_id, '') FROM hgnc_entries`,
		func(rows pgx.Rows) error {
			var id, symbol, up string
			if err := rows.Scan(&id, &symbol, &up); err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan hgnc entry")
			}
			t.AddHGNC(id, symbol, up)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = r.each(ctx,
		`SELECT accession, gene_name, is_human FROM uniprot_entries`,
		func(rows pgx.Rows) error {
			var accession, geneName string
			var human bool
			if err := rows.Scan(&accession, &geneName, &human); err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan uniprot entry")
			}
			t.AddUniProt(accession, geneName, human)
			return nil
		})
	if err != nil {
		return nil, err
	}

	r.log.Info("gene table loaded from database", logging.Int("hgnc_entries", t.Size()))
	return t, nil
}

// LoadChemTable builds the chemical registry from chebi_entries,
// chebi_secondaries, and chebi_xrefs.  The xref table stores one row per
// (chebi_id, namespace, xref_id) with the InChIKey-match flag already
// resolved by the ingestion job, so first-row-wins is sufficient here;
// the ORDER BY makes the winner deterministic.
func (r *XrefRepository) LoadChemTable(ctx context.Context) (*resources.ChemTable, error) {
	t := resources.NewChemTable()

	err := r.each(ctx,
		`SELECT chebi_id, COALESCE(name, '') FROM chebi_entries`,
		func(rows pgx.Rows) error {
			var id, name string
			if err := rows.Scan(&id, &name); err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan chebi entry")
			}
			t.AddChEBI(id, name)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = r.each(ctx,
		`SELECT secondary_id, primary_id FROM chebi_secondaries`,
		func(rows pgx.Rows) error {
			var secondary, primary string
			if err := rows.Scan(&secondary, &primary); err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan chebi secondary")
			}
			t.AddSecondary(secondary, primary)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = r.each(ctx,
		`SELECT chebi_id, namespace, xref_id FROM chebi_xrefs
		 ORDER BY ik_match DESC, chebi_id, xref_id`,
		func(rows pgx.Rows) error {
			var chebi, ns, xref string
			if err := rows.Scan(&chebi, &ns, &xref); err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan chebi xref")
			}
			t.AddXref(ns, chebi, xref)
			return nil
		})
	if err != nil {
		return nil, err
	}

	r.log.Info("chem table loaded from database", logging.Int("chebi_entries", t.Size()))
	return t, nil
}

// LoadTermTable builds the MeSH/GO label registry from term_labels.
func (r *XrefRepository) LoadTermTable(ctx context.Context) (*resources.TermTable, error) {
	t := resources.NewTermTable()

	err := r.each(ctx,
		`SELECT namespace, term_id, label FROM term_labels`,
		func(rows pgx.Rows) error {
			var ns, id, label string
			if err := rows.Scan(&ns, &id, &label); err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan term label")
			}
			switch ns {
			case "MESH":
				t.AddMeSH(id, label)
			case "GO":
				t.AddGO(id, label)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return t, nil
}

//Personal.AI order the ending
