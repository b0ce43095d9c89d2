package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biotext/bioground/internal/domain/agent"
	"github.com/biotext/bioground/internal/infrastructure/resources"
	"github.com/biotext/bioground/pkg/types/grounding"
)

func groundedAgent(text string, refs grounding.DBRefs) *agent.Agent {
	a := agent.New(text, text)
	for ns, id := range refs {
		a.DBRefs[ns] = id
	}
	return a
}

func testCorpus() []*agent.Statement {
	braf := grounding.DBRefs{grounding.NamespaceHGNC: "1097", grounding.NamespaceUniProt: "P15056"}

	s1 := agent.NewStatement("Phosphorylation",
		groundedAgent("BRAF", braf),
		agent.New("unknown thing", "unknown thing"))
	s1.Evidence = []*agent.Evidence{agent.NewEvidence("BRAF phosphorylates MEK.", "12345", "reach")}

	s2 := agent.NewStatement("Activation",
		groundedAgent("BRAF", braf),
		nil)
	s2.Evidence = []*agent.Evidence{agent.NewEvidence("BRAF activates the pathway.", "67890", "reach")}

	bound := groundedAgent("INSR", grounding.DBRefs{grounding.NamespaceUniProt: "P06213"})
	carrier := agent.New("unknown thing", "unknown thing")
	carrier.BoundConditions = []*agent.BoundCondition{{Agent: bound, IsBound: true}}
	s3 := agent.NewStatement("Complex", carrier)

	return []*agent.Statement{s1, s2, s3}
}

func testGenes() *resources.GeneTable {
	g := resources.NewGeneTable()
	g.AddHGNC("1097", "BRAF", "P15056")
	g.AddUniProt("P15056", "BRAF", true)
	g.AddHGNC("6091", "INSR", "P06213")
	g.AddUniProt("P06213", "INSR", true)
	return g
}

func TestAllAgentsIncludesBoundPartners(t *testing.T) {
	agents := AllAgents(testCorpus())
	texts := make([]string, len(agents))
	for i, a := range agents {
		texts[i] = a.Text()
	}
	assert.Equal(t, []string{"BRAF", "unknown thing", "BRAF", "unknown thing", "INSR"}, texts)
}

func TestTextsWithGrounding(t *testing.T) {
	svc := NewService(testGenes(), nil)
	rows := svc.TextsWithGrounding(testCorpus())

	require.Len(t, rows, 2)
	assert.Equal(t, "BRAF", rows[0].Text)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, grounding.DBRefs{
		grounding.NamespaceHGNC:    "1097",
		grounding.NamespaceUniProt: "P15056",
	}, rows[0].Refs)
	assert.NotContains(t, rows[0].Refs, grounding.NamespaceText)

	assert.Equal(t, "INSR", rows[1].Text)
	assert.Equal(t, 1, rows[1].Count)
}

func TestUngroundedTexts(t *testing.T) {
	svc := NewService(testGenes(), nil)
	rows := svc.UngroundedTexts(testCorpus())

	require.Len(t, rows, 1)
	assert.Equal(t, TextCount{Text: "unknown thing", Count: 2}, rows[0])
}

func TestSentencesForText(t *testing.T) {
	svc := NewService(testGenes(), nil)
	corpus := testCorpus()

	got := svc.SentencesForText("BRAF", corpus, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "BRAF phosphorylates MEK.", got[0].Text)
	assert.Equal(t, "12345", got[0].PMID)
	assert.Equal(t, corpus[0].ID, got[0].StatementID)

	// Bound-condition mentions count as mentions of the statement.
	assert.Empty(t, svc.SentencesForText("INSR", corpus, 0)) // s3 has no evidence

	limited := svc.SentencesForText("BRAF", corpus, 1)
	assert.Len(t, limited, 1)
}

func TestProteinMap(t *testing.T) {
	svc := NewService(testGenes(), nil)

	ins := groundedAgent("INSR", grounding.DBRefs{grounding.NamespaceUniProt: "P06213"})
	// Text differs from the gene name, so this one must not be promoted.
	alias := groundedAgent("insulin receptor", grounding.DBRefs{grounding.NamespaceUniProt: "P06213"})
	// Multi-namespace groundings are skipped: only sole-UP records qualify.
	braf := groundedAgent("BRAF", grounding.DBRefs{
		grounding.NamespaceUniProt: "P15056",
		grounding.NamespaceHGNC:    "1097",
	})
	stmts := []*agent.Statement{agent.NewStatement("Activation", ins, alias, braf)}

	pm := svc.ProteinMap(stmts)
	require.Len(t, pm, 1)
	assert.Equal(t, grounding.DBRefs{
		grounding.NamespaceText:    "INSR",
		grounding.NamespaceUniProt: "P06213",
		grounding.NamespaceHGNC:    "6091",
	}, pm["INSR"])
}

func TestWriteBaseMap(t *testing.T) {
	rows := []GroundingCount{
		{Text: "BRAF", Refs: grounding.DBRefs{
			grounding.NamespaceHGNC:    "1097",
			grounding.NamespaceUniProt: "P15056",
		}, Count: 2},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteBaseMap(&buf, rows))
	assert.Equal(t, "BRAF,HGNC,1097,UP,P15056\n", buf.String())
}

func TestWriteSentences(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSentences(&buf, []Sentence{
		{StatementID: "s1", PMID: "12345", Text: "BRAF phosphorylates MEK."},
	}))
	assert.Equal(t, "s1,12345,BRAF phosphorylates MEK.\n", buf.String())
}

//Personal.AI order the ending
