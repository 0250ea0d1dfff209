package genome

import (
	"testing"

	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/randsrc"
	"github.com/stretchr/testify/assert"
)

// Boundary behavior: compatibility(G, G) = 0.
func TestCompatibilitySelfIsZero(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	g := New(2, reg, rng)
	assert.Equal(t, 0.0, Compatibility(g, g, 1.0, 1.0, 0.4))
}

// S6: compatibility of a genome against a copy with every weight shifted
// by +0.5 equals c3*0.5 (E=D=0, N>=1).
func TestCompatibilityScenarioS6(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	a := New(2, reg, rng)
	b := a.Clone()
	for _, c := range b.Connections {
		c.Weight += 0.5
	}
	got := Compatibility(a, b, 1.0, 1.0, 0.4)
	assert.InDelta(t, 0.4*0.5, got, 1e-9)
}

func TestCompatibilityExcessOnlyOnLongerGenome(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	a := New(2, reg, rng)
	b := a.Clone()
	a.MutateAddNode() // adds 2 new connections beyond b's innovation range

	got := Compatibility(a, b, 1.0, 1.0, 0.0)
	n := len(a.Connections)
	assert.InDelta(t, 2.0/float64(n), got, 1e-9)
}

func TestCompatibilityIsSymmetric(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	a := New(2, reg, rng)
	b := a.Clone()
	a.MutateAddNode()
	for _, c := range b.Connections {
		c.Weight += 1.0
	}
	ab := Compatibility(a, b, 1.0, 1.0, 0.4)
	ba := Compatibility(b, a, 1.0, 1.0, 0.4)
	assert.InDelta(t, ab, ba, 1e-9)
}
