package genome

import "math"

// sigmoidSteepened is the activation function applied to HIDDEN nodes.
// It is steepened (slope 4.9 instead of 1) to stay close to linear across
// its steepest ascent between -0.5 and 0.5, giving more fine-tuning
// headroom at extreme activations. Ported verbatim from the original
// C++'s ActivationSigmoid.
func sigmoidSteepened(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-4.9*x))
}

// ResetNodes wipes every node's activation memory, restoring BIAS to its
// constant 1.0 in both slots.
func (g *Genome) ResetNodes() {
	for _, n := range g.Nodes {
		n.Last, n.Now = 0, 0
	}
	bias := g.Nodes[g.BiasNodeID()]
	bias.Last, bias.Now = 1.0, 1.0
}

// Activate runs one time-step of this (possibly recurrent) network and
// returns the OUTPUT node's resulting value:
//
//  1. writes input into SENSOR nodes' Now,
//  2. shifts every node's Now into Last and zeroes Now (re-pinning BIAS),
//  3. accumulates weighted Last values into destination Now along every
//     enabled connection in innovation order — reading Last is what gives
//     recurrent edges their one-step memory,
//  4. applies the steepened sigmoid to every HIDDEN node's Now,
//  5. applies the identity transfer to the OUTPUT node,
//  6. returns the OUTPUT node's Now.
//
// inputs must be in the same fixed order the genome's SENSOR nodes were
// created in (ids 1..NInputs).
func (g *Genome) Activate(inputs []float64) float64 {
	for i, v := range inputs {
		id := uint16(i + 1)
		if n, ok := g.Nodes[id]; ok {
			n.Now = v
		}
	}

	for _, n := range g.Nodes {
		n.Last = n.Now
		n.Now = 0
	}
	bias := g.Nodes[g.BiasNodeID()]
	bias.Now, bias.Last = 1.0, 1.0

	for _, innov := range g.order {
		c := g.Connections[innov]
		if !c.Enabled {
			continue
		}
		from := g.Nodes[c.From]
		to := g.Nodes[c.To]
		to.Now += from.Last * c.Weight
	}

	for _, n := range g.Nodes {
		if n.Kind == Hidden {
			n.Now = sigmoidSteepened(n.Now)
		}
	}

	out := g.Nodes[g.OutputNodeID()]
	// Output transfer is the identity; nothing to apply.
	return out.Now
}
