package genome

// Mate produces an offspring from two parents with up-to-date fitness.
// Lower fitness is fitter; ties are
// broken deterministically by genome ID so that mate(a, b) and mate(b, a)
// agree on which parent is "A".
//
// Iterating the fitter parent A's connections in innovation order:
//   - if B shares that innovation (a matching gene): both enabled copies
//     one of the two 50/50; both disabled copies A's; otherwise (exactly
//     one disabled) copies one of the two 50/50 and then independently
//     decides the offspring gene's enabled state by a Bernoulli draw with
//     probability pInheritDisabled (true means enabled).
//   - if B lacks it (excess or disjoint from the fitter parent): copy
//     from A even if disabled.
//
// Genes unique to the less fit parent B are discarded. The offspring's
// nodes are copied wholesale from A, which guarantees every connection
// endpoint exists. The offspring receives a fresh random ID.
func Mate(a, b *Genome, pInheritDisabled float64) *Genome {
	fit, unfit := a, b
	if b.Fitness < a.Fitness || (b.Fitness == a.Fitness && b.ID < a.ID) {
		fit, unfit = b, a
	}

	offspring := fit.blank()
	for id, n := range fit.Nodes {
		offspring.Nodes[id] = n.Clone()
	}

	for _, innov := range fit.order {
		fitGene := fit.Connections[innov]
		unfitGene, sharedByBoth := unfit.Connections[innov]

		var child ConnectionGene
		switch {
		case !sharedByBoth:
			// Excess/disjoint from the fitter parent: always inherited.
			child = *fitGene
		case !fitGene.Enabled && !unfitGene.Enabled:
			child = *fitGene
		default:
			if fit.rng.Bernoulli(0.5) {
				child = *fitGene
			} else {
				child = *unfitGene
			}
			if !fitGene.Enabled || !unfitGene.Enabled {
				child.Enabled = fit.rng.Bernoulli(pInheritDisabled)
			}
		}
		offspring.Connections[innov] = &child
	}
	offspring.rebuildOrder()
	return offspring
}
