package grounding

import (
	"context"
	"sync"

	"github.com/biotext/bioground/pkg/types/grounding"
)

// fakeGenes is a map-backed GeneRegistry for unit tests.
type fakeGenes struct {
	symbolToID map[string]string
	idToSymbol map[string]string
	idToUP     map[string]string
	upToGene   map[string]string
	human      map[string]bool
}

func newFakeGenes() *fakeGenes {
	return &fakeGenes{
		symbolToID: map[string]string{
			"BRAF":   "1097",
			"RAF1":   "9829",
			"MAPK1":  "6871",
			"MAP2K1": "6840",
			"INSR":   "6091",
		},
		idToSymbol: map[string]string{
			"1097": "BRAF",
			"9829": "RAF1",
			"6871": "MAPK1",
			"6840": "MAP2K1",
			"6091": "INSR",
		},
		idToUP: map[string]string{
			"1097": "P15056",
			"9829": "P04049",
			"6871": "P28482",
			"6091": "P06213",
		},
		upToGene: map[string]string{
			"P15056": "BRAF",
			"P04049": "RAF1",
			"P28482": "MAPK1",
			"P06213": "INSR",
		},
		human: map[string]bool{
			"P15056": true, "P04049": true, "P28482": true, "P06213": true,
		},
	}
}

func (f *fakeGenes) HGNCIDForSymbol(s string) (string, bool)    { v, ok := f.symbolToID[s]; return v, ok }
func (f *fakeGenes) SymbolForHGNCID(id string) (string, bool)   { v, ok := f.idToSymbol[id]; return v, ok }
func (f *fakeGenes) UniProtForHGNCID(id string) (string, bool)  { v, ok := f.idToUP[id]; return v, ok }
func (f *fakeGenes) GeneNameForUniProt(a string) (string, bool) { v, ok := f.upToGene[a]; return v, ok }
func (f *fakeGenes) IsHumanUniProt(a string) bool               { return f.human[a] }

// fakeChem is a map-backed ChemRegistry for unit tests.
type fakeChem struct {
	primary   map[string]string
	names     map[string]string
	pubchem   map[string]string // pubchem → chebi
	pubchemBy map[string]string // chebi → pubchem
	cas       map[string]string
	casBy     map[string]string
	chembl    map[string]string
	chemblBy  map[string]string
	hmdb      map[string]string
}

func newFakeChem() *fakeChem {
	return &fakeChem{
		primary: map[string]string{
			"15996": "15996", // GTP
			"17761": "17761", // ceramide
			"73778": "15996", // retired secondary for GTP
		},
		names: map[string]string{
			"15996": "GTP",
			"17761": "ceramide",
		},
		pubchem:   map[string]string{"6830": "15996"},
		pubchemBy: map[string]string{"15996": "6830"},
		cas:       map[string]string{"86-01-1": "15996"},
		casBy:     map[string]string{"15996": "86-01-1"},
		chembl:    map[string]string{"CHEMBL1233147": "15996"},
		chemblBy:  map[string]string{"15996": "CHEMBL1233147"},
		hmdb:      map[string]string{"HMDB0001273": "15996"},
	}
}

func (f *fakeChem) PrimaryChEBI(id string) (string, bool)       { v, ok := f.primary[id]; return v, ok }
func (f *fakeChem) ChEBIName(id string) (string, bool)          { v, ok := f.names[id]; return v, ok }
func (f *fakeChem) ChEBIForPubChem(cid string) (string, bool)   { v, ok := f.pubchem[cid]; return v, ok }
func (f *fakeChem) PubChemForChEBI(id string) (string, bool)    { v, ok := f.pubchemBy[id]; return v, ok }
func (f *fakeChem) ChEBIForCAS(cas string) (string, bool)       { v, ok := f.cas[cas]; return v, ok }
func (f *fakeChem) CASForChEBI(id string) (string, bool)        { v, ok := f.casBy[id]; return v, ok }
func (f *fakeChem) ChEBIForChEMBL(id string) (string, bool)     { v, ok := f.chembl[id]; return v, ok }
func (f *fakeChem) ChEMBLForChEBI(id string) (string, bool)     { v, ok := f.chemblBy[id]; return v, ok }
func (f *fakeChem) ChEBIForHMDB(hmdbID string) (string, bool)   { v, ok := f.hmdb[hmdbID]; return v, ok }

// fakeTerms is a map-backed TermRegistry for unit tests.
type fakeTerms struct {
	mesh map[string]string
	gos  map[string]string
}

func newFakeTerms() *fakeTerms {
	return &fakeTerms{
		mesh: map[string]string{"D000255": "Adenosine Triphosphate"},
		gos:  map[string]string{"GO:0006915": "apoptotic process"},
	}
}

func (f *fakeTerms) MeSHName(id string) (string, bool) { v, ok := f.mesh[id]; return v, ok }
func (f *fakeTerms) GOName(id string) (string, bool)   { v, ok := f.gos[id]; return v, ok }

// stubRemote is a RemoteEntryClient that serves canned entries and counts
// calls per ID.
type stubRemote struct {
	mu      sync.Mutex
	entries map[string]*ChEBIEntry
	err     error
	calls   map[string]int
}

func newStubRemote() *stubRemote {
	return &stubRemote{entries: map[string]*ChEBIEntry{}, calls: map[string]int{}}
}

func (s *stubRemote) FetchChEBIEntry(_ context.Context, id string) (*ChEBIEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[id]++
	if s.err != nil {
		return nil, s.err
	}
	return s.entries[id], nil
}

func (s *stubRemote) callCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

// stubDisamb is a scriptable Disambiguator.
type stubDisamb struct {
	applicable map[string]bool
	result     grounding.DisambiguationResult
	err        error
	panicWith  interface{}
}

func (s *stubDisamb) Applicable(text string) bool { return s.applicable[text] }

func (s *stubDisamb) Disambiguate(context.Context, string, []string) (grounding.DisambiguationResult, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.result, s.err
}

// newTestNormalizer wires a normalizer over the standard fakes.
func newTestNormalizer(remote RemoteEntryClient) *ChEBINormalizer {
	return NewChEBINormalizer(newFakeChem(), remote, nil)
}

//Personal.AI order the ending
