package genetics

import (
	"testing"

	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/randsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenomeWithFitness(reg *innovation.Registry, rng *randsrc.Source, fitness float64) *genome.Genome {
	g := genome.New(2, reg, rng)
	g.Fitness = fitness
	return g
}

// Universal property 1 & 7: champion.fitness <= best_fitness, and
// best_fitness is monotonically non-increasing across generations.
func TestUpdateStatsChampionInvariant(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	p := NewPopulation([]*genome.Genome{
		newGenomeWithFitness(reg, rng, 5.0),
		newGenomeWithFitness(reg, rng, 2.0),
	}, 3.0)

	p.UpdateStats(0)
	require.NotNil(t, p.BestSpecies)
	champ := p.BestSpecies.Champion()
	assert.LessOrEqual(t, champ.Fitness, p.BestFitness)
	assert.Equal(t, 2.0, p.BestFitness)

	// Degrade every genome's fitness; best_fitness must not increase.
	for _, g := range p.AllGenomes() {
		g.Fitness += 10
	}
	prevBest := p.BestFitness
	p.UpdateStats(1)
	assert.LessOrEqual(t, p.BestFitness, prevBest+1e-9)
}

func TestKillStagnatedDropsSmallUnimprovedSpecies(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	p := &Population{}
	stagnant := &Species{ID: 1, Genomes: []*genome.Genome{newGenomeWithFitness(reg, rng, 5.0)}, LastImprovementGeneration: 0}
	healthy := &Species{ID: 2, Genomes: []*genome.Genome{newGenomeWithFitness(reg, rng, 1.0)}, LastImprovementGeneration: 9}
	p.Species = []*Species{stagnant, healthy}
	p.BestSpecies = healthy

	p.ApplyStagnationPolicies(10, 5, 3)
	require.Len(t, p.Species, 1)
	assert.Equal(t, uint64(2), p.Species[0].ID)
}

func TestRefocusStagnatedPrunesToTopTwo(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	g1 := newGenomeWithFitness(reg, rng, 1.0)
	g2 := newGenomeWithFitness(reg, rng, 2.0)
	g3 := newGenomeWithFitness(reg, rng, 3.0)
	sp := &Species{ID: 1, Genomes: []*genome.Genome{g3, g1, g2}, LastImprovementGeneration: 0}
	p := &Population{Species: []*Species{sp}}
	p.BestSpecies = nil

	p.ApplyStagnationPolicies(10, 100, 3)
	assert.Len(t, sp.Genomes, 2)
	assert.Equal(t, g1.ID, sp.Genomes[0].ID)
	assert.Equal(t, 10, sp.LastRefocusGeneration)
}

func TestSpeciateFirstMatchCreatesNewSpeciesWhenNoneCompatible(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	successor := NewPopulation(nil, 3.0)
	child := genome.New(2, reg, rng)

	Speciate([]*genome.Genome{child}, successor, 3.0, 1.0, 1.0, 0.4, false)
	require.Len(t, successor.Species, 1)
	assert.Equal(t, child.ID, successor.Species[0].Genomes[0].ID)
}

func TestSpeciateFirstMatchJoinsCompatibleSpecies(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	champion := genome.New(2, reg, rng)
	successor := NewPopulation(nil, 3.0)
	successor.Species = append(successor.Species, &Species{ID: 99, Genomes: []*genome.Genome{champion}})

	child := champion.Clone()
	Speciate([]*genome.Genome{child}, successor, 3.0, 1.0, 1.0, 0.4, false)

	require.Len(t, successor.Species, 1)
	assert.Len(t, successor.Species[0].Genomes, 2)
}

func TestSnapshotChampionsOrderMatchesSpeciesOrder(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	sp1 := &Species{ID: 1, Genomes: []*genome.Genome{newGenomeWithFitness(reg, rng, 1.0)}}
	sp2 := &Species{ID: 2, Genomes: []*genome.Genome{newGenomeWithFitness(reg, rng, 2.0)}}
	p := &Population{Species: []*Species{sp1, sp2}}

	champs := p.SnapshotChampions()
	require.Len(t, champs, 2)
	assert.Equal(t, sp1.Genomes[0].ID, champs[0].ID)
	assert.Equal(t, sp2.Genomes[0].ID, champs[1].ID)
}
