package conceptmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStarGraph(t *testing.T) {
	g := Build("Photosynthesis", []string{"A", "B", "C"})

	nodes := g.Nodes()
	require.Len(t, nodes, 4)

	centers := 0
	for _, n := range nodes {
		if n.Center {
			centers++
			assert.Equal(t, "Photosynthesis", n.Label)
		}
	}
	assert.Equal(t, 1, centers)

	edges := g.Edges()
	require.Len(t, edges, 3)
	for _, e := range edges {
		if e.From == e.To {
			t.Errorf("self-loop on %q", e.From)
		}
		assert.Equal(t, "Photosynthesis", e.From)
	}
	assert.Equal(t, []string{"A", "B", "C"}, g.Leaves())
	assert.Equal(t, 3, g.Degree("Photosynthesis"))
	assert.Equal(t, 1, g.Degree("B"))
}

func TestBuildCollapsesDuplicates(t *testing.T) {
	g := Build("Cells", []string{"Nucleus", "Membrane", "Nucleus"})

	assert.Len(t, g.Nodes(), 3)
	assert.Len(t, g.Edges(), 2)
	assert.Equal(t, []string{"Nucleus", "Membrane"}, g.Leaves())
}

func TestBuildSkipsSelfLoop(t *testing.T) {
	g := Build("Energy", []string{"Energy", "Heat"})

	assert.Len(t, g.Nodes(), 2)
	require.Len(t, g.Edges(), 1)
	assert.Equal(t, Edge{From: "Energy", To: "Heat"}, g.Edges()[0])
}

func TestBuildNoSubtopics(t *testing.T) {
	g := Build("Alone", nil)
	assert.Len(t, g.Nodes(), 1)
	assert.Empty(t, g.Edges())
	assert.Empty(t, g.Leaves())
	assert.True(t, g.HasNode("Alone"))
	assert.False(t, g.HasNode("Other"))
}

func TestParseSubtopics(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"A, B, C", []string{"A", "B", "C"}},
		{" light ,, water , ", []string{"light", "water"}},
		{"x,x", []string{"x", "x"}},
		{"", nil},
		{" , ,", nil},
		{"Chlorophyll", []string{"Chlorophyll"}},
	}
	for _, tt := range tests {
		got := ParseSubtopics(tt.in)
		assert.Equal(t, tt.want, got, "ParseSubtopics(%q)", tt.in)
	}
}
