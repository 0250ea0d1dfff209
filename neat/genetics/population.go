package genetics

import (
	"math"

	"github.com/abreis/neatrsu/neat/genome"
)

// Population is the full set of species evolving together: speciation,
// population-wide statistics, and stagnation policy, keeping the
// species list separate from the aggregate best-fitness/best-species/
// super-champion tracking.
type Population struct {
	Species []*Species

	nextSpeciesID uint64

	BestFitness               float64
	BestSpecies               *Species
	SuperChampion             *genome.Genome
	EpochsSinceBestImprovement int

	CompatThreshold float64
}

// NewPopulation seeds a population with a single species containing the
// given genomes.
func NewPopulation(genomes []*genome.Genome, compatThreshold float64) *Population {
	p := &Population{CompatThreshold: compatThreshold, nextSpeciesID: 1, BestFitness: math.MaxFloat64}
	if len(genomes) == 0 {
		return p
	}
	sp := &Species{ID: p.nextSpeciesID, Genomes: genomes, BestFitness: math.MaxFloat64}
	p.nextSpeciesID++
	p.Species = append(p.Species, sp)
	return p
}

// AllGenomes flattens every species' genomes into one slice, in species
// insertion order — the order fitness evaluation and reproduction both
// rely on for determinism.
func (p *Population) AllGenomes() []*genome.Genome {
	var all []*genome.Genome
	for _, sp := range p.Species {
		all = append(all, sp.Genomes...)
	}
	return all
}

// SeedSuccessor builds successor's species list from a prior
// generation's champion snapshot: one species per champion, each
// containing only that champion. It must run before Speciate so
// offspring can be matched against these carried-over champions, and
// before reproduction has a chance to invalidate the old population's
// storage.
func (p *Population) SeedSuccessor(champions []*genome.Genome) {
	for _, champ := range champions {
		p.Species = append(p.Species, &Species{
			ID:          p.nextSpeciesID,
			Genomes:     []*genome.Genome{champ},
			BestFitness: math.MaxFloat64,
		})
		p.nextSpeciesID++
	}
}

// Speciate assigns offspring into successor according to the policy
// (best-match or first-match), creating new species (with offspring as
// their own champion) as needed. successor
// must already be seeded with the prior generation's champions (see
// SeedSuccessor) so offspring are matched against them in the order
// they were snapshotted.
func Speciate(offspring []*genome.Genome, successor *Population, compatThreshold, c1, c2, c3 float64, bestCompat bool) {
	for _, child := range offspring {
		var target *Species
		if bestCompat {
			target = speciateBestMatch(child, successor, compatThreshold, c1, c2, c3)
		} else {
			target = speciateFirstMatch(child, successor, compatThreshold, c1, c2, c3)
		}
		if target == nil {
			target = &Species{ID: successor.nextSpeciesID, BestFitness: math.MaxFloat64}
			successor.nextSpeciesID++
			successor.Species = append(successor.Species, target)
		}
		target.Genomes = append(target.Genomes, child)
	}
}

// speciateFirstMatch places child in the first successor species whose
// champion distance is below threshold.
func speciateFirstMatch(child *genome.Genome, successor *Population, threshold, c1, c2, c3 float64) *Species {
	for _, sp := range successor.Species {
		champ := sp.Champion()
		if champ == nil {
			continue
		}
		if genome.Compatibility(child, champ, c1, c2, c3) < threshold {
			return sp
		}
	}
	return nil
}

// speciateBestMatch assigns child to the argmin-distance species if that
// minimum is below threshold. Zero distance (self) is skipped.
func speciateBestMatch(child *genome.Genome, successor *Population, threshold, c1, c2, c3 float64) *Species {
	var best *Species
	bestDist := threshold
	for _, sp := range successor.Species {
		champ := sp.Champion()
		if champ == nil {
			continue
		}
		d := genome.Compatibility(child, champ, c1, c2, c3)
		if d == 0 {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = sp
		}
	}
	return best
}

// UpdateStats recomputes each species' champion, bumps
// last_improvement_generation on a strict
// fitness improvement, then selects the best species/super-champion
// across the whole population. The population's BestFitness only moves
// on a strict decrease. generation is the current generation counter,
// used to stamp improvements.
func (p *Population) UpdateStats(generation int) {
	for _, sp := range p.Species {
		sp.SortByFitness()
		champ := sp.Champion()
		if champ == nil {
			continue
		}
		if champ.Fitness < sp.BestFitness {
			sp.BestFitness = champ.Fitness
			sp.LastImprovementGeneration = generation
		}
	}

	var best *Species
	for _, sp := range p.Species {
		champ := sp.Champion()
		if champ == nil {
			continue
		}
		if best == nil || champ.Fitness < best.Champion().Fitness {
			best = sp
		}
	}
	if best != nil {
		p.BestSpecies = best
		champ := best.Champion()
		if p.SuperChampion == nil || champ.Fitness < p.BestFitness {
			p.EpochsSinceBestImprovement = 0
			p.BestFitness = champ.Fitness
		} else {
			p.EpochsSinceBestImprovement++
		}
		p.SuperChampion = champ
	}
}

// ApplyStagnationPolicies applies the kill-stagnated and
// refocus-stagnated policies: a species with no improvement for killAfter
// generations, size <= 3, and not the best species is dropped entirely;
// one with no improvement for refocusAfter generations (< killAfter),
// size > 2, and not the best species is pruned to its top 2 genomes and
// stamped with the current generation as its last refocus.
func (p *Population) ApplyStagnationPolicies(generation, killAfter, refocusAfter int) {
	kept := p.Species[:0]
	for _, sp := range p.Species {
		age := generation - sp.LastImprovementGeneration
		isBest := sp == p.BestSpecies

		if !isBest && killAfter > 0 && age > killAfter && len(sp.Genomes) <= 3 {
			continue // drop
		}
		if !isBest && refocusAfter > 0 && age > refocusAfter &&
			generation-sp.LastRefocusGeneration > refocusAfter && len(sp.Genomes) > 2 {
			sp.SortByFitness()
			sp.Genomes = sp.Genomes[:2]
			sp.LastRefocusGeneration = generation
		}
		kept = append(kept, sp)
	}
	p.Species = kept
}

// SnapshotChampions returns the current champion of every species, in
// species order. Must be taken before reproduction invalidates the old
// population's storage.
func (p *Population) SnapshotChampions() []*genome.Genome {
	champs := make([]*genome.Genome, 0, len(p.Species))
	for _, sp := range p.Species {
		if c := sp.Champion(); c != nil {
			champs = append(champs, c)
		}
	}
	return champs
}

// AdjustThreshold implements the optional self-tuning compatibility
// threshold: once the species count has exceeded target at least once,
// nudge the threshold by delta per generation to keep the count within
// [0.8*target, 1.2*target], never going below delta itself.
func (p *Population) AdjustThreshold(target int, delta float64, everExceeded *bool) {
	if target <= 0 {
		return
	}
	count := len(p.Species)
	if count > target {
		*everExceeded = true
	}
	if !*everExceeded {
		return
	}
	low := 0.8 * float64(target)
	high := 1.2 * float64(target)
	switch {
	case float64(count) > high:
		p.CompatThreshold += delta
	case float64(count) < low:
		p.CompatThreshold -= delta
	}
	if p.CompatThreshold < delta {
		p.CompatThreshold = delta
	}
}
