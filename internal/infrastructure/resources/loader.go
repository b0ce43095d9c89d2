package resources

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// casExtraEntries are CAS→ChEBI mappings missing from the bulk export; they
// are merged after the file load and never overwrite file-supplied rows.
var casExtraEntries = map[string]string{
	"24696-26-2":  "17761",
	"23261-20-3":  "18035",
	"165689-82-7": "16618",
}

// Loader builds the in-memory tables from a ResourceStore.
type Loader struct {
	store ResourceStore
	log   logging.Logger
}

// NewLoader constructs a Loader over store.
func NewLoader(store ResourceStore, log logging.Logger) *Loader {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Loader{store: store, log: log.Named("resources")}
}

// readTSV opens name and streams its rows (tab-separated, first row is a
// header and is skipped) to fn.  Ragged rows are passed through; fn decides
// how many columns it needs.
func (l *Loader) readTSV(ctx context.Context, name string, fn func(row []string)) error {
	rc, err := l.store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeDataSourceParseError,
				"failed to parse resource table").WithDetail(name)
		}
		if header {
			header = false
			continue
		}
		fn(row)
	}
}

// readOptionalTSV is readTSV for tables that may be absent; a missing file is
// logged and skipped.
func (l *Loader) readOptionalTSV(ctx context.Context, name string, fn func(row []string)) error {
	err := l.readTSV(ctx, name, fn)
	if apperrors.IsNotFound(err) {
		l.log.Debug("optional resource table absent", logging.String("file", name))
		return nil
	}
	return err
}

// LoadGeneTable builds the gene registry from the HGNC and UniProt tables.
//
// hgnc_entries.tsv:    hgnc_id, symbol, uniprot_id (may be empty)
// uniprot_entries.tsv: accession, gene_name, organism
func (l *Loader) LoadGeneTable(ctx context.Context) (*GeneTable, error) {
	t := NewGeneTable()

	err := l.readTSV(ctx, FileHGNCEntries, func(row []string) {
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			return
		}
		up := ""
		if len(row) > 2 {
			up = row[2]
		}
		t.AddHGNC(row[0], row[1], up)
	})
	if err != nil {
		return nil, err
	}

	err = l.readTSV(ctx, FileUniProtEntries, func(row []string) {
		if len(row) < 2 || row[0] == "" {
			return
		}
		human := len(row) > 2 && strings.EqualFold(row[2], "human")
		t.AddUniProt(row[0], row[1], human)
	})
	if err != nil {
		return nil, err
	}

	l.log.Info("gene table loaded", logging.Int("hgnc_entries", t.Size()))
	return t, nil
}

// LoadChemTable builds the chemical registry from the ChEBI tables.
//
// The PubChem cross-reference carries an InChIKey-match flag; when several
// rows compete for the same key, a flagged row beats an unflagged one and
// otherwise the first row wins.
func (l *Loader) LoadChemTable(ctx context.Context) (*ChemTable, error) {
	t := NewChemTable()

	err := l.readTSV(ctx, FileChEBIEntries, func(row []string) {
		if len(row) < 1 || row[0] == "" {
			return
		}
		name := ""
		if len(row) > 1 {
			name = row[1]
		}
		t.AddChEBI(domaingrounding.StripChEBIPrefix(row[0]), name)
	})
	if err != nil {
		return nil, err
	}

	err = l.readOptionalTSV(ctx, FileChEBISecondary, func(row []string) {
		if len(row) < 2 {
			return
		}
		t.AddSecondary(domaingrounding.StripChEBIPrefix(row[0]), domaingrounding.StripChEBIPrefix(row[1]))
	})
	if err != nil {
		return nil, err
	}

	// chebi_to_pubchem.tsv: chebi_id, pubchem_id, ik_match ("Y" when the
	// InChIKeys of the two records agree).
	ikChToPc := map[string]bool{}
	ikPcToCh := map[string]bool{}
	err = l.readOptionalTSV(ctx, FileChEBIPubChem, func(row []string) {
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			return
		}
		chebi := domaingrounding.StripChEBIPrefix(row[0])
		pc := row[1]
		ik := len(row) > 2 && row[2] == "Y"

		if _, seen := t.chToPc[chebi]; !seen || (ik && !ikChToPc[chebi]) {
			t.chToPc[chebi] = pc
			ikChToPc[chebi] = ik
		}
		if _, seen := t.pcToCh[pc]; !seen || (ik && !ikPcToCh[pc]) {
			t.pcToCh[pc] = chebi
			ikPcToCh[pc] = ik
		}
	})
	if err != nil {
		return nil, err
	}

	// chebi_to_cas.tsv: cas, chebi_id.  First row wins on duplicates.
	err = l.readOptionalTSV(ctx, FileChEBICAS, func(row []string) {
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			return
		}
		chebi := domaingrounding.StripChEBIPrefix(row[1])
		if _, seen := t.casToCh[row[0]]; !seen {
			t.casToCh[row[0]] = chebi
		}
		if _, seen := t.chToCas[chebi]; !seen {
			t.chToCas[chebi] = row[0]
		}
	})
	if err != nil {
		return nil, err
	}
	for cas, chebi := range casExtraEntries {
		if _, seen := t.casToCh[cas]; !seen {
			t.casToCh[cas] = chebi
		}
		if _, seen := t.chToCas[chebi]; !seen {
			t.chToCas[chebi] = cas
		}
	}

	// chebi_to_chembl.tsv: chebi_id, chembl_id.
	err = l.readOptionalTSV(ctx, FileChEBIChEMBL, func(row []string) {
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			return
		}
		chebi := domaingrounding.StripChEBIPrefix(row[0])
		if _, seen := t.chToEmbl[chebi]; !seen {
			t.chToEmbl[chebi] = row[1]
		}
		if _, seen := t.emblToCh[row[1]]; !seen {
			t.emblToCh[row[1]] = chebi
		}
	})
	if err != nil {
		return nil, err
	}

	// hmdb_to_chebi.tsv: hmdb_id, chebi_id.
	err = l.readOptionalTSV(ctx, FileHMDBChEBI, func(row []string) {
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			return
		}
		if _, seen := t.hmdbToCh[row[0]]; !seen {
			t.hmdbToCh[row[0]] = domaingrounding.StripChEBIPrefix(row[1])
		}
	})
	if err != nil {
		return nil, err
	}

	l.log.Info("chem table loaded", logging.Int("chebi_entries", t.Size()))
	return t, nil
}

// LoadTermTable builds the MeSH/GO label registry.
func (l *Loader) LoadTermTable(ctx context.Context) (*TermTable, error) {
	t := NewTermTable()

	err := l.readOptionalTSV(ctx, FileMeSHLabels, func(row []string) {
		if len(row) >= 2 && row[0] != "" {
			t.AddMeSH(row[0], row[1])
		}
	})
	if err != nil {
		return nil, err
	}

	err = l.readOptionalTSV(ctx, FileGOLabels, func(row []string) {
		if len(row) >= 2 && row[0] != "" {
			t.AddGO(row[0], row[1])
		}
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// LoadHierarchy builds an in-memory is-a oracle from the per-namespace
// relation tables (child, parent per row).  All relation tables are optional;
// clustered deployments use the Neo4j oracle instead.
func (l *Loader) LoadHierarchy(ctx context.Context) (*domaingrounding.MemoryHierarchy, error) {
	h := domaingrounding.NewMemoryHierarchy()
	files := map[grounding.Namespace]string{
		grounding.NamespaceChEBI: FileChEBIRelations,
		grounding.NamespaceGO:    FileGORelations,
		grounding.NamespaceMeSH:  FileMeSHRelations,
	}
	for ns, name := range files {
		ns := ns
		err := l.readOptionalTSV(ctx, name, func(row []string) {
			if len(row) >= 2 && row[0] != "" && row[1] != "" {
				h.AddIsA(ns, row[0], row[1])
			}
		})
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

//Personal.AI order the ending
