package resources

// In-memory lookup tables backing the domain registry interfaces.  Tables are
// populated once by the Loader and never mutated afterwards, which makes them
// safe for concurrent readers without locking.

// GeneTable implements grounding.GeneRegistry.
type GeneTable struct {
	symbolToID map[string]string
	idToSymbol map[string]string
	idToUP     map[string]string
	upToGene   map[string]string
	human      map[string]struct{}
}

// NewGeneTable returns an empty table; exported for tests and for callers
// that assemble registries from non-file sources.
func NewGeneTable() *GeneTable {
	return &GeneTable{
		symbolToID: map[string]string{},
		idToSymbol: map[string]string{},
		idToUP:     map[string]string{},
		upToGene:   map[string]string{},
		human:      map[string]struct{}{},
	}
}

// AddHGNC records one HGNC entry.  uniprotID may be empty.
func (t *GeneTable) AddHGNC(id, symbol, uniprotID string) {
	t.symbolToID[symbol] = id
	t.idToSymbol[id] = symbol
	if uniprotID != "" {
		t.idToUP[id] = uniprotID
	}
}

// AddUniProt records one UniProt entry.
func (t *GeneTable) AddUniProt(accession, geneName string, human bool) {
	if geneName != "" {
		t.upToGene[accession] = geneName
	}
	if human {
		t.human[accession] = struct{}{}
	}
}

func (t *GeneTable) HGNCIDForSymbol(s string) (string, bool)    { v, ok := t.symbolToID[s]; return v, ok }
func (t *GeneTable) SymbolForHGNCID(id string) (string, bool)   { v, ok := t.idToSymbol[id]; return v, ok }
func (t *GeneTable) UniProtForHGNCID(id string) (string, bool)  { v, ok := t.idToUP[id]; return v, ok }
func (t *GeneTable) GeneNameForUniProt(a string) (string, bool) { v, ok := t.upToGene[a]; return v, ok }
func (t *GeneTable) IsHumanUniProt(a string) bool               { _, ok := t.human[a]; return ok }

// Size returns the number of HGNC entries, for startup logging.
func (t *GeneTable) Size() int { return len(t.idToSymbol) }

// ChemTable implements grounding.ChemRegistry.  All ChEBI IDs are stored in
// bare numeric form.
type ChemTable struct {
	primary  map[string]string // secondary (and primary) → primary
	names    map[string]string
	pcToCh   map[string]string
	chToPc   map[string]string
	casToCh  map[string]string
	chToCas  map[string]string
	emblToCh map[string]string
	chToEmbl map[string]string
	hmdbToCh map[string]string
}

// NewChemTable returns an empty table.
func NewChemTable() *ChemTable {
	return &ChemTable{
		primary:  map[string]string{},
		names:    map[string]string{},
		pcToCh:   map[string]string{},
		chToPc:   map[string]string{},
		casToCh:  map[string]string{},
		chToCas:  map[string]string{},
		emblToCh: map[string]string{},
		chToEmbl: map[string]string{},
		hmdbToCh: map[string]string{},
	}
}

// AddChEBI records a primary entry: the ID resolves to itself.
func (t *ChemTable) AddChEBI(id, name string) {
	t.primary[id] = id
	if name != "" {
		t.names[id] = name
	}
}

// AddSecondary records a retired ID and its primary replacement.
func (t *ChemTable) AddSecondary(secondary, primary string) {
	t.primary[secondary] = primary
}

// AddXref records a cross-reference between a ChEBI ID and another namespace
// ("PUBCHEM", "CAS", "CHEMBL", "HMDB").  First registration wins in each
// direction, so callers control precedence through insertion order.
func (t *ChemTable) AddXref(ns, chebiID, xrefID string) {
	switch ns {
	case "PUBCHEM":
		if _, seen := t.chToPc[chebiID]; !seen {
			t.chToPc[chebiID] = xrefID
		}
		if _, seen := t.pcToCh[xrefID]; !seen {
			t.pcToCh[xrefID] = chebiID
		}
	case "CAS":
		if _, seen := t.chToCas[chebiID]; !seen {
			t.chToCas[chebiID] = xrefID
		}
		if _, seen := t.casToCh[xrefID]; !seen {
			t.casToCh[xrefID] = chebiID
		}
	case "CHEMBL":
		if _, seen := t.chToEmbl[chebiID]; !seen {
			t.chToEmbl[chebiID] = xrefID
		}
		if _, seen := t.emblToCh[xrefID]; !seen {
			t.emblToCh[xrefID] = chebiID
		}
	case "HMDB":
		if _, seen := t.hmdbToCh[xrefID]; !seen {
			t.hmdbToCh[xrefID] = chebiID
		}
	}
}

func (t *ChemTable) PrimaryChEBI(id string) (string, bool)     { v, ok := t.primary[id]; return v, ok }
func (t *ChemTable) ChEBIName(id string) (string, bool)        { v, ok := t.names[id]; return v, ok }
func (t *ChemTable) ChEBIForPubChem(c string) (string, bool)   { v, ok := t.pcToCh[c]; return v, ok }
func (t *ChemTable) PubChemForChEBI(id string) (string, bool)  { v, ok := t.chToPc[id]; return v, ok }
func (t *ChemTable) ChEBIForCAS(c string) (string, bool)       { v, ok := t.casToCh[c]; return v, ok }
func (t *ChemTable) CASForChEBI(id string) (string, bool)      { v, ok := t.chToCas[id]; return v, ok }
func (t *ChemTable) ChEBIForChEMBL(c string) (string, bool)    { v, ok := t.emblToCh[c]; return v, ok }
func (t *ChemTable) ChEMBLForChEBI(id string) (string, bool)   { v, ok := t.chToEmbl[id]; return v, ok }
func (t *ChemTable) ChEBIForHMDB(h string) (string, bool)      { v, ok := t.hmdbToCh[h]; return v, ok }

// Size returns the number of primary entries, for startup logging.
func (t *ChemTable) Size() int { return len(t.names) }

// TermTable implements grounding.TermRegistry.
type TermTable struct {
	mesh map[string]string
	gos  map[string]string
}

// NewTermTable returns an empty table.
func NewTermTable() *TermTable {
	return &TermTable{mesh: map[string]string{}, gos: map[string]string{}}
}

// AddMeSH records a MeSH ID → label pair.
func (t *TermTable) AddMeSH(id, label string) { t.mesh[id] = label }

// AddGO records a GO ID → label pair.
func (t *TermTable) AddGO(id, label string) { t.gos[id] = label }

func (t *TermTable) MeSHName(id string) (string, bool) { v, ok := t.mesh[id]; return v, ok }
func (t *TermTable) GOName(id string) (string, bool)   { v, ok := t.gos[id]; return v, ok }

//Personal.AI order the ending
