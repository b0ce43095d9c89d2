package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biotext/bioground/pkg/types/grounding"
)

func TestNewAgent(t *testing.T) {
	a := New("ERK", "ERK")

	assert.Equal(t, "ERK", a.Name)
	assert.Equal(t, "ERK", a.Text())
	assert.False(t, a.Grounded())

	a.DBRefs[grounding.NamespaceFamPlex] = "ERK"
	assert.True(t, a.Grounded())
}

func TestAgentCloneIsDeep(t *testing.T) {
	partner := New("RAF1", "Raf-1")
	partner.DBRefs[grounding.NamespaceHGNC] = "9829"

	a := New("BRAF", "B-raf")
	a.DBRefs[grounding.NamespaceHGNC] = "1097"
	a.DisambiguationScores = map[string]float64{"HGNC:1097": 0.93}
	a.BoundConditions = []*BoundCondition{{Agent: partner, IsBound: true}}

	cp := a.Clone()
	cp.DBRefs[grounding.NamespaceUniProt] = "P15056"
	cp.DisambiguationScores["ungrounded"] = 0.07
	cp.BoundConditions[0].Agent.Name = "mutated"

	assert.False(t, a.DBRefs.Equal(cp.DBRefs))
	assert.Len(t, a.DisambiguationScores, 1)
	assert.Equal(t, "RAF1", a.BoundConditions[0].Agent.Name)

	var nilAgent *Agent
	assert.Nil(t, nilAgent.Clone())
	assert.Equal(t, "", nilAgent.Text())
	assert.False(t, nilAgent.Grounded())
}

func TestStatementClone(t *testing.T) {
	s := NewStatement("Phosphorylation",
		New("MAP2K1", "MEK1"),
		nil, // unfilled slot must survive transformation
		New("MAPK1", "ERK2"),
	)
	s.Evidence = append(s.Evidence, NewEvidence("MEK1 phosphorylates ERK2.", "12345", "reach"))

	cp := s.Clone()
	require.Len(t, cp.Agents, 3)
	assert.Nil(t, cp.Agents[1])
	assert.Equal(t, s.ID, cp.ID)

	cp.Agents[0].Name = "mutated"
	cp.Evidence[0].Text = "mutated"
	assert.Equal(t, "MAP2K1", s.Agents[0].Name)
	assert.Equal(t, "MEK1 phosphorylates ERK2.", s.Evidence[0].Text)
}

func TestStatementSentenceTexts(t *testing.T) {
	s := NewStatement("Activation", New("A", "A"))
	s.Evidence = []*Evidence{
		NewEvidence("A activates B.", "1", "reach"),
		{ID: "x"}, // no text
		nil,
	}
	assert.Equal(t, []string{"A activates B."}, s.SentenceTexts())
}

func TestEvidenceIDsAreUnique(t *testing.T) {
	e1 := NewEvidence("s", "", "reach")
	e2 := NewEvidence("s", "", "reach")
	assert.NotEqual(t, e1.ID, e2.ID)
}

//Personal.AI order the ending
