package genome

// MutatePerturbWeights perturbs every connection's weight: for each
// connection, draw a Bernoulli with probability pPerturbOrNew. On
// success, add a
// Gaussian(0,sigma) sample to the weight; on failure, replace the weight
// with a fresh Gaussian(0,sigma) sample. Sigma is whatever the random
// source is currently configured with (set by the generation driver).
func (g *Genome) MutatePerturbWeights(pPerturbOrNew float64) {
	for _, c := range g.Connections {
		if g.rng.Bernoulli(pPerturbOrNew) {
			c.Weight += g.rng.Gaussian()
		} else {
			c.Weight = g.rng.Gaussian()
		}
	}
}

// MutateAddConnection is a no-op if the genome has no hidden nodes.
// Otherwise it draws a source node uniformly from all nodes and a
// destination uniformly from {hidden nodes} ∪ {output}, and calls
// AddConnection with a fresh Gaussian weight. Retries up to
// bias*(|nodes|-bias) times on failure, where bias is the BIAS node's
// ID.
func (g *Genome) MutateAddConnection() bool {
	if g.maxNodeID() < g.FirstHiddenNodeID() {
		return false
	}

	allNodes := g.nodeIDsSorted()
	candidates := make([]uint16, 0, len(allNodes))
	for _, id := range allNodes {
		if id == g.OutputNodeID() || g.Nodes[id].Kind == Hidden {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return false
	}

	bias := int(g.BiasNodeID())
	maxTries := bias * (len(allNodes) - bias)
	if maxTries <= 0 {
		maxTries = 1
	}

	for try := 0; try < maxTries; try++ {
		src := allNodes[g.rng.Intn(len(allNodes))]
		dst := candidates[g.rng.Intn(len(candidates))]
		weight := g.rng.Gaussian()
		if g.AddConnection(src, dst, true, &weight) {
			return true
		}
	}
	return false
}

// MutateAddNode picks a random enabled connection, disables it, creates
// a new HIDDEN node, and adds two replacement connections — src->new
// with weight 1.0, and new->dst with the disabled connection's original
// weight. Both acquire innovation numbers through the registry. This
// weight-1/weight-original split is what minimizes the initial
// functional perturbation of the topology change.
func (g *Genome) MutateAddNode() bool {
	enabled := make([]*ConnectionGene, 0, len(g.Connections))
	for _, innov := range g.order {
		if c := g.Connections[innov]; c.Enabled {
			enabled = append(enabled, c)
		}
	}
	if len(enabled) == 0 {
		return false
	}

	chosen := enabled[g.rng.Intn(len(enabled))]
	chosen.Enabled = false

	newID, err := g.AddNode(Hidden, nil)
	if err != nil {
		// maxNodeID()+1 is always free; this cannot happen.
		return false
	}

	one := 1.0
	g.AddConnection(chosen.From, newID, true, &one)
	g.AddConnection(newID, chosen.To, false, &chosen.Weight)
	return true
}

// nodeIDsSorted returns every node ID in ascending order, used wherever a
// mutation needs a stable, index-addressable view of the node set.
func (g *Genome) nodeIDsSorted() []uint16 {
	ids := make([]uint16, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	// insertion sort is fine here: genomes stay small (tens of nodes)
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}
