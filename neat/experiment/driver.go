// Package experiment implements the generation driver: a fixed ten-step
// sequence per generation (Gaussian sigma, self-tuning compatibility
// threshold, threaded fitness evaluation, culling, stats, stagnation
// policy, champion snapshot, adjusted-fitness quotas, reproduction,
// speciation, population swap), including a per-species parallel
// fitness-evaluation worker pool joined by a sync.WaitGroup, with every
// other step single-threaded.
package experiment

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/abreis/neatrsu/neat/genetics"
	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/log"
	"github.com/abreis/neatrsu/neat/randsrc"
)

// Params bundles the per-run tunables the driver consults, a subset of
// config.Options translated into the primitives this package needs
// directly (kept separate from config.Options so this package doesn't
// import the CLI-facing config format).
type Params struct {
	PopulationSize    int
	C1, C2, C3        float64
	SurvivalThreshold float64
	Mutation          genetics.MutationParams

	PerturbStdev *float64 // nil means AUTO (constant 1.0 sigma)

	KillStagnated    int
	RefocusStagnated int
	TargetSpecies    int // 0 means unset/disabled
	ThresholdDelta   float64
	BestCompat       bool

	Threads int
}

// Evaluator runs a genome's fitness against whatever dataset the caller
// has bound.
type Evaluator interface {
	Evaluate(g *genome.Genome) float64
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(g *genome.Genome) float64

func (f EvaluatorFunc) Evaluate(g *genome.Genome) float64 { return f(g) }

// Driver runs the generation loop against one population.
type Driver struct {
	Params Params
	Rng    *randsrc.Source
	Eval   Evaluator
	Stats  Sink

	everExceededTarget bool
}

// Run executes up to maxGenerations generations of p, checking ctx for
// cancellation only at the generation boundary: an in-progress
// generation always completes. Returns the generation count actually
// completed.
func (d *Driver) Run(ctx context.Context, p *genetics.Population, maxGenerations int) (int, error) {
	completed := 0
	for gen := 0; gen < maxGenerations; gen++ {
		select {
		case <-ctx.Done():
			return completed, ctx.Err()
		default:
		}

		next, err := d.step(p, gen)
		if err != nil {
			return completed, err
		}
		*p = *next
		completed++

		if d.Stats != nil {
			d.Stats.Emit(d.summarize(p, gen))
		}
	}
	return completed, nil
}

// step executes the ten-step generation sequence once and returns the
// successor population (steps 6-10 build it; step 10's swap is the
// caller's *p = *next above).
func (d *Driver) step(p *genetics.Population, generation int) (*genetics.Population, error) {
	// 1. Set Gaussian sigma.
	if d.Params.PerturbStdev != nil {
		d.Rng.SetSigma(*d.Params.PerturbStdev)
	} else {
		d.Rng.SetSigma(1.0)
	}

	// 2. Update compatibility threshold toward the target species count.
	p.AdjustThreshold(d.Params.TargetSpecies, d.Params.ThresholdDelta, &d.everExceededTarget)

	// 3. Evaluate fitness of every genome, parallel per species.
	d.evaluateParallel(p)

	// 4. Cull each species to its survivors.
	for _, sp := range p.Species {
		sp.CullToSurvivors(d.Params.SurvivalThreshold)
	}

	// 5. Update stats, apply stagnation policies.
	p.UpdateStats(generation)
	p.ApplyStagnationPolicies(generation, d.Params.KillStagnated, d.Params.RefocusStagnated)

	// 6. Snapshot champions into a fresh successor population, one
	// species per surviving species, before reproduction can invalidate
	// the old population's storage.
	champions := p.SnapshotChampions()
	successor := genetics.NewPopulation(nil, p.CompatThreshold)
	successor.SeedSuccessor(champions)

	// 7. Adjusted fitness and offspring quotas.
	quotas := d.offspringQuotas(p)

	// 8. Reproduce each species of the old population (insertion order).
	var allOffspring []*genome.Genome
	for i, sp := range p.Species {
		offspring := sp.Reproduce(quotas[i], d.Rng, d.Params.Mutation)
		allOffspring = append(allOffspring, offspring...)
	}

	// 9. Speciate every offspring into successor (champions are already
	// present as each seeded species' sole, and thus champion, genome).
	genetics.Speciate(allOffspring, successor, p.CompatThreshold, d.Params.C1, d.Params.C2, d.Params.C3, d.Params.BestCompat)

	// 10 (stats half). Offspring haven't been evaluated yet, but every
	// seeded species still carries its real champion, so recomputing
	// stats here already reflects this generation's true best fitness;
	// the live swap itself happens in the caller.
	successor.UpdateStats(generation)

	return successor, nil
}

// evaluateParallel runs fitness evaluation with a fixed pool of Threads
// workers that claim species via an atomic per-species processing flag
// and evaluate every genome in the species they claim. All other steps
// stay single-threaded; the WaitGroup join below is the barrier.
func (d *Driver) evaluateParallel(p *genetics.Population) {
	threads := d.Params.Threads
	if threads < 1 {
		threads = 1
	}

	var claimed []int32
	claimed = make([]int32, len(p.Species))

	var wg sync.WaitGroup
	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, sp := range p.Species {
				if !atomic.CompareAndSwapInt32(&claimed[i], 0, 1) {
					continue
				}
				for _, g := range sp.Genomes {
					g.Fitness = d.Eval.Evaluate(g)
				}
			}
		}()
	}
	wg.Wait()
}

// offspringQuotas computes each species' share of the next generation's
// population: adjusted fitness per genome is fitness/species_size,
// summed per species; each species' quota is
// species_sum/total_sum * population_cap.
func (d *Driver) offspringQuotas(p *genetics.Population) []int {
	sums := make([]float64, len(p.Species))
	total := 0.0
	for i, sp := range p.Species {
		size := float64(len(sp.Genomes))
		sum := 0.0
		for _, g := range sp.Genomes {
			adjusted := g.Fitness / size
			g.AdjustedFitness = adjusted
			sum += adjusted
		}
		sums[i] = sum
		total += sum
	}

	quotas := make([]int, len(p.Species))
	if total == 0 {
		divisor := len(p.Species)
		if divisor < 1 {
			divisor = 1
		}
		for i := range quotas {
			quotas[i] = d.Params.PopulationSize / divisor
		}
		return quotas
	}
	for i, sum := range sums {
		quotas[i] = int(sum / total * float64(d.Params.PopulationSize))
	}
	return quotas
}

func (d *Driver) summarize(p *genetics.Population, generation int) GenerationSummary {
	fitnesses := make(Floats, 0, len(p.AllGenomes()))
	sizes := make([]int, len(p.Species))
	for i, sp := range p.Species {
		sizes[i] = len(sp.Genomes)
		for _, g := range sp.Genomes {
			fitnesses = append(fitnesses, g.Fitness)
		}
	}
	log.Debugf("generation %d: %d species, best fitness %.4f", generation, len(p.Species), p.BestFitness)
	return GenerationSummary{
		Generation:    generation,
		BestFitness:   p.BestFitness,
		MeanFitness:   fitnesses.Mean(),
		StdDevFitness: fitnesses.StdDev(),
		SpeciesCount:  len(p.Species),
		SpeciesSizes:  sizes,
	}
}
