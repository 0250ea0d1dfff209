package genome

import (
	"testing"

	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/randsrc"
	"github.com/stretchr/testify/assert"
)

// Property 5: mate(G, G) preserves the set of innovations and node ids.
func TestMateIdempotentOnIdenticalParents(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	g := New(2, reg, rng)
	g.Fitness = 1.0

	offspring := Mate(g, g, 0.25)

	gotInnovs := make(map[uint16]bool)
	for innov := range g.Connections {
		gotInnovs[innov] = true
	}
	offInnovs := make(map[uint16]bool)
	for innov := range offspring.Connections {
		offInnovs[innov] = true
	}
	assert.Equal(t, gotInnovs, offInnovs)

	gotNodes := make(map[uint16]bool)
	for id := range g.Nodes {
		gotNodes[id] = true
	}
	offNodes := make(map[uint16]bool)
	for id := range offspring.Nodes {
		offNodes[id] = true
	}
	assert.Equal(t, gotNodes, offNodes)
}

// S3: two empty-identical genomes with different fitness produce by
// crossover a genome equal to the fitter parent in connection set.
func TestMateScenarioS3(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	a := New(2, reg, rng)
	b := a.Clone()
	a.Fitness = 5.0
	b.Fitness = 1.0 // b is fitter

	offspring := Mate(a, b, 0.25)

	assert.Equal(t, len(b.Connections), len(offspring.Connections))
	for innov, bc := range b.Connections {
		oc, ok := offspring.Connections[innov]
		assert.True(t, ok)
		assert.Equal(t, bc.From, oc.From)
		assert.Equal(t, bc.To, oc.To)
		assert.Equal(t, bc.Enabled, oc.Enabled)
	}
}

func TestMateOffspringGetsFreshID(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	a := New(2, reg, rng)
	b := a.Clone()
	offspring := Mate(a, b, 0.25)
	assert.NotEqual(t, a.ID, offspring.ID)
	assert.NotEqual(t, b.ID, offspring.ID)
}

func TestMateExcessDisjointInheritedFromFitterOnly(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	a := New(2, reg, rng)
	b := a.Clone()
	a.Fitness = 1.0 // a is fitter
	b.Fitness = 5.0

	a.MutateAddNode() // adds genes b doesn't have

	offspring := Mate(a, b, 0.25)
	for innov := range a.Connections {
		_, ok := offspring.Connections[innov]
		assert.True(t, ok, "offspring missing fitter-only innovation %d", innov)
	}
}
