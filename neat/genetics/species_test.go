package genetics

import (
	"testing"

	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/randsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSpecies(n int, seed int64) (*Species, *randsrc.Source) {
	reg := innovation.New()
	rng := randsrc.New(seed)
	sp := &Species{ID: 1}
	for i := 0; i < n; i++ {
		g := genome.New(2, reg, rng)
		g.Fitness = float64(n - i)
		sp.Genomes = append(sp.Genomes, g)
	}
	return sp, rng
}

func defaultParams() MutationParams {
	return MutationParams{
		PMutateAddNode:   0.1,
		PMutateAddConn:   0.1,
		PMutateWeights:   0.5,
		PPerturbOrNew:    0.9,
		PInheritDisabled: 0.75,
		PMutateOnly:      0.25,
		PMateOnly:        0.2,
	}
}

// Boundary behavior: a species with a single genome still produces
// target_size offspring; its champion is among them. The target stays
// within the min(target, 2*size) clamp, which is 2 for one genome.
func TestReproduceSingleGenomeProducesTargetSize(t *testing.T) {
	sp, rng := seedSpecies(1, 1)
	champion := sp.Genomes[0]
	offspring := sp.Reproduce(2, rng, defaultParams())
	require.Len(t, offspring, 2)
	assert.Equal(t, champion.ID, offspring[0].ID)
}

func TestReproduceClampsToDoubleSize(t *testing.T) {
	sp, rng := seedSpecies(2, 2)
	offspring := sp.Reproduce(100, rng, defaultParams())
	assert.Len(t, offspring, 4) // min(100, 2*2)
}

func TestReproduceAlwaysIncludesChampionFirst(t *testing.T) {
	sp, rng := seedSpecies(3, 3)
	sp.SortByFitness()
	champion := sp.Champion()
	offspring := sp.Reproduce(6, rng, defaultParams())
	assert.Equal(t, champion.ID, offspring[0].ID)
}

func TestCullToSurvivorsKeepsAtLeastChampion(t *testing.T) {
	sp, _ := seedSpecies(3, 4)
	sp.CullToSurvivors(1.0)
	assert.GreaterOrEqual(t, len(sp.Genomes), 1)
}

func TestCullToSurvivorsDropsBottomFraction(t *testing.T) {
	sp, _ := seedSpecies(4, 5)
	sp.CullToSurvivors(0.5)
	assert.Len(t, sp.Genomes, 2)
}

// Pins the drop direction with an asymmetric threshold: 0.20 on a
// species of 10 drops the worst 2, keeping 8 — not the reverse.
func TestCullToSurvivorsDropsAsymmetricFraction(t *testing.T) {
	sp, _ := seedSpecies(10, 6)
	sp.CullToSurvivors(0.20)
	require.Len(t, sp.Genomes, 8)
	for _, g := range sp.Genomes {
		assert.LessOrEqual(t, g.Fitness, 8.0)
	}
}
