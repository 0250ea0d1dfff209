// Package genetics implements the species and population levels of the
// NEAT core: compatibility-based grouping, stagnation policy, and
// fitness-sharing reproduction quotas.
package genetics

import (
	"sort"

	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/randsrc"
)

// Species is a maximal set of genomes mutually within the compatibility
// threshold of a shared champion.
type Species struct {
	ID uint64

	Genomes []*genome.Genome

	BestFitness              float64
	LastImprovementGeneration int
	LastRefocusGeneration     int
	CreatedGeneration         int
}

// byFitnessAscending sorts genomes by ascending fitness (lower is
// fitter — this domain minimizes prediction error).
type byFitnessAscending []*genome.Genome

func (s byFitnessAscending) Len() int           { return len(s) }
func (s byFitnessAscending) Less(i, j int) bool { return s[i].Fitness < s[j].Fitness }
func (s byFitnessAscending) Swap(i, j int)       { s[i], s[j] = s[j], s[i] }

// SortByFitness sorts this species' genomes ascending by fitness, so
// index 0 is always the champion.
func (sp *Species) SortByFitness() {
	sort.Stable(byFitnessAscending(sp.Genomes))
}

// Champion returns the fittest genome in the species. Callers must sort
// first (SortByFitness or the equivalent within the generation driver).
func (sp *Species) Champion() *genome.Genome {
	if len(sp.Genomes) == 0 {
		return nil
	}
	return sp.Genomes[0]
}

// CullToSurvivors sorts ascending by fitness and drops the bottom
// floor(survivalThreshold*size) genomes, always keeping at least the
// champion. survivalThreshold names the fraction dropped, not kept
// (e.g. 0.20 drops the worst 20%, keeping 80%).
func (sp *Species) CullToSurvivors(survivalThreshold float64) {
	sp.SortByFitness()
	drop := int(survivalThreshold * float64(len(sp.Genomes)))
	keep := len(sp.Genomes) - drop
	if keep < 1 {
		keep = 1
	}
	sp.Genomes = sp.Genomes[:keep]
}

// Reproduce produces up to targetSize offspring (clamped to
// min(targetSize, 2*currentSize)) for this species. The
// current champion (sorted-first genome) is always copied verbatim
// first (elitism).
//
// A single-genome species clones it and applies at most one mutation in
// priority order: add-node, else add-connection, else perturb-weights.
//
// Otherwise parents are iterated in fitness order (wrapping) until the
// target is reached: with probability pMutateOnly the current parent is
// cloned and mutated; otherwise a second parent is chosen uniformly from
// the species and MateGenomes produces the child, with probability
// 1-pMateOnly additionally mutated.
func (sp *Species) Reproduce(targetSize int, rng *randsrc.Source, p MutationParams) []*genome.Genome {
	if len(sp.Genomes) == 0 || targetSize <= 0 {
		return nil
	}
	maxSize := 2 * len(sp.Genomes)
	if targetSize > maxSize {
		targetSize = maxSize
	}

	sp.SortByFitness()
	champion := sp.Champion()
	offspring := make([]*genome.Genome, 0, targetSize)
	elite := champion.Clone()
	elite.ID = champion.ID
	offspring = append(offspring, elite)

	if len(sp.Genomes) == 1 {
		for len(offspring) < targetSize {
			child := champion.Clone()
			applyPriorityMutation(child, rng, p)
			offspring = append(offspring, child)
		}
		return offspring
	}

	parentIdx := 0
	for len(offspring) < targetSize {
		parent := sp.Genomes[parentIdx%len(sp.Genomes)]
		parentIdx++

		var child *genome.Genome
		if rng.Bernoulli(p.PMutateOnly) {
			child = parent.Clone()
			applyMutationCascade(child, rng, p)
		} else {
			second := sp.Genomes[rng.Intn(len(sp.Genomes))]
			child = genome.Mate(parent, second, p.PInheritDisabled)
			if rng.Bernoulli(1 - p.PMateOnly) {
				applyMutationCascade(child, rng, p)
			}
		}
		offspring = append(offspring, child)
	}
	return offspring
}

// MutationParams bundles the mutation probabilities the species level
// needs to reproduce (field names match config.Options).
type MutationParams struct {
	PMutateAddNode   float64
	PMutateAddConn   float64
	PMutateWeights   float64
	PPerturbOrNew    float64
	PInheritDisabled float64
	PMutateOnly      float64
	PMateOnly        float64
}

// applyPriorityMutation implements the single-genome species path: apply
// at most one mutation, in priority order add-node, add-connection,
// perturb-weights.
func applyPriorityMutation(g *genome.Genome, rng *randsrc.Source, p MutationParams) {
	switch {
	case rng.Bernoulli(p.PMutateAddNode):
		g.MutateAddNode()
	case rng.Bernoulli(p.PMutateAddConn):
		g.MutateAddConnection()
	case rng.Bernoulli(p.PMutateWeights):
		g.MutatePerturbWeights(p.PPerturbOrNew)
	}
}

// applyMutationCascade applies every structural/weight mutation
// independently, each gated by its own probability, matching the
// cascade the multi-genome reproduction path uses.
func applyMutationCascade(g *genome.Genome, rng *randsrc.Source, p MutationParams) {
	if rng.Bernoulli(p.PMutateAddNode) {
		g.MutateAddNode()
	}
	if rng.Bernoulli(p.PMutateAddConn) {
		g.MutateAddConnection()
	}
	if rng.Bernoulli(p.PMutateWeights) {
		g.MutatePerturbWeights(p.PPerturbOrNew)
	}
}
