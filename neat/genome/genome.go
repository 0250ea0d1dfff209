// Package genome implements the genetic representation at the heart of
// the NEAT core: the node/connection genes, their structural and weight
// mutations, recurrent activation, crossover, and compatibility distance.
// It is grounded on github.com/yaricom/goNEAT's neat/genetics package,
// generalized away from that library's trait/MIMO machinery down to the
// single-hidden-activation, single-output network this spec calls for,
// and on the original abreis/neatRSU C++ genome.cpp/genetic.h this spec
// was distilled from.
package genome

import (
	"math"
	"sort"

	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/neaterr"
	"github.com/abreis/neatrsu/neat/randsrc"
)

// Genome is a graph of node and connection genes plus the bookkeeping a
// single organism needs across its lifetime: fitness, adjusted fitness,
// and a random 64-bit identity used for logging.
type Genome struct {
	ID uint64

	Nodes       map[uint16]*NodeGene
	Connections map[uint16]*ConnectionGene // keyed by innovation number

	Fitness         float64
	AdjustedFitness float64

	// NInputs is the number of SENSOR nodes this genome was seeded with;
	// it fixes the OUTPUT, BIAS and first-HIDDEN node IDs.
	NInputs uint16

	// order caches Connections' keys in ascending innovation order; it is
	// rebuilt whenever a connection is added (never on enable/disable or
	// weight changes, which don't change the key set). Iterating this
	// slice instead of ranging the map is what gives crossover and
	// compatibility their required monotone-innovation iteration order.
	order []uint16

	registry *innovation.Registry
	rng      *randsrc.Source
}

// OutputNodeID returns the fixed ID of this genome's single OUTPUT node.
func (g *Genome) OutputNodeID() uint16 { return g.NInputs + 1 }

// BiasNodeID returns the fixed ID of this genome's single BIAS node.
func (g *Genome) BiasNodeID() uint16 { return g.NInputs + 2 }

// FirstHiddenNodeID returns the smallest ID a HIDDEN node may have.
func (g *Genome) FirstHiddenNodeID() uint16 { return g.NInputs + 3 }

// New builds a seed genome with nInputs SENSOR nodes (IDs 1..nInputs), one
// OUTPUT node (nInputs+1), one BIAS node (nInputs+2), and one enabled
// connection of weight 1.0 from each sensor to the output. Connections
// are assigned innovation numbers through reg, so repeated seed
// construction within one process yields stable innovation numbers.
func New(nInputs uint16, reg *innovation.Registry, rng *randsrc.Source) *Genome {
	g := &Genome{
		ID:          rng.Uint64(),
		Nodes:       make(map[uint16]*NodeGene),
		Connections: make(map[uint16]*ConnectionGene),
		NInputs:     nInputs,
		registry:    reg,
		rng:         rng,
		Fitness:     math.MaxFloat64,
	}
	g.Nodes[g.OutputNodeID()] = newNodeGene(g.OutputNodeID(), Output)
	g.Nodes[g.BiasNodeID()] = newNodeGene(g.BiasNodeID(), Bias)
	for n := uint16(1); n <= nInputs; n++ {
		g.Nodes[n] = newNodeGene(n, Sensor)
		g.AddConnection(n, g.OutputNodeID(), false, nil)
	}
	return g
}

// blank returns an empty genome sharing this genome's registry, rng and
// NInputs, used internally by cloning and crossover.
func (g *Genome) blank() *Genome {
	return &Genome{
		ID:          g.rng.Uint64(),
		Nodes:       make(map[uint16]*NodeGene),
		Connections: make(map[uint16]*ConnectionGene),
		NInputs:     g.NInputs,
		registry:    g.registry,
		rng:         g.rng,
		Fitness:     math.MaxFloat64,
	}
}

// Clone returns a deep copy of g with a fresh random ID.
func (g *Genome) Clone() *Genome {
	c := g.blank()
	for id, n := range g.Nodes {
		c.Nodes[id] = n.Clone()
	}
	for innov, conn := range g.Connections {
		c.Connections[innov] = conn.Clone()
	}
	c.order = append([]uint16(nil), g.order...)
	c.Fitness = g.Fitness
	c.AdjustedFitness = g.AdjustedFitness
	return c
}

// OrderedConnections returns the genome's connections in ascending
// innovation order.
func (g *Genome) OrderedConnections() []*ConnectionGene {
	out := make([]*ConnectionGene, 0, len(g.order))
	for _, innov := range g.order {
		out = append(out, g.Connections[innov])
	}
	return out
}

func (g *Genome) rebuildOrder() {
	g.order = g.order[:0]
	for innov := range g.Connections {
		g.order = append(g.order, innov)
	}
	sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })
}

// maxNodeID returns the largest node ID currently present in the genome.
func (g *Genome) maxNodeID() uint16 {
	var max uint16
	for id := range g.Nodes {
		if id > max {
			max = id
		}
	}
	return max
}

// AddNode adds a new node to the genome. If id is nil, the next free ID
// (max existing + 1) is used. If id is non-nil and already present,
// AddNode returns a DuplicateNode error and the genome is left
// unchanged — a programming error that should abort the run.
func (g *Genome) AddNode(kind Kind, id *uint16) (uint16, error) {
	var newID uint16
	if id != nil {
		if _, exists := g.Nodes[*id]; exists {
			return 0, neaterr.DuplicateNode(*id)
		}
		newID = *id
	} else {
		newID = g.maxNodeID() + 1
	}
	g.Nodes[newID] = newNodeGene(newID, kind)
	return newID, nil
}

// findConnection returns the connection gene for the (from,to) edge that
// currently exists in this genome's Connections, and whether one was
// found. The edge is located through the innovation number the registry
// has on file for it.
func (g *Genome) findConnection(from, to uint16) (*ConnectionGene, bool) {
	if innov, ok := g.registry.Lookup(from, to); ok {
		if conn, ok := g.Connections[innov]; ok {
			return conn, true
		}
	}
	return nil, false
}

// AddConnection adds or re-enables an edge:
//   - if (from,to) already exists in this genome and is enabled: no-op,
//     returns false.
//   - if it exists and is disabled: when reenable, re-enable it (and
//     overwrite the weight if one was provided) and return true;
//     otherwise no-op, return false.
//   - if it does not exist in this genome: allocate or reuse the
//     innovation via the registry, insert with weight 1.0 (or the
//     provided weight), enabled, return true.
func (g *Genome) AddConnection(from, to uint16, reenable bool, weight *float64) bool {
	if conn, exists := g.findConnection(from, to); exists {
		if conn.Enabled {
			return false
		}
		if !reenable {
			return false
		}
		conn.Enabled = true
		if weight != nil {
			conn.Weight = *weight
		}
		return true
	}

	innov := g.registry.LookupOrAssign(from, to)
	w := 1.0
	if weight != nil {
		w = *weight
	}
	g.Connections[innov] = &ConnectionGene{From: from, To: to, Weight: w, Enabled: true, Innovation: innov}
	g.rebuildOrder()
	return true
}

// CountEnabled returns the number of enabled connection genes.
func (g *Genome) CountEnabled() int {
	count := 0
	for _, c := range g.Connections {
		if c.Enabled {
			count++
		}
	}
	return count
}

// CheckInvariants validates the structural invariants that must hold
// after every public mutation. It is intended for use in tests and
// debug assertions, not on the hot path.
func (g *Genome) CheckInvariants() error {
	seenPairs := make(map[[2]uint16]bool, len(g.Connections))
	for _, c := range g.Connections {
		if _, ok := g.Nodes[c.From]; !ok {
			return neaterr.InvalidConfigf("connection %d->%d references missing node %d", c.From, c.To, c.From)
		}
		if _, ok := g.Nodes[c.To]; !ok {
			return neaterr.InvalidConfigf("connection %d->%d references missing node %d", c.From, c.To, c.To)
		}
		pair := [2]uint16{c.From, c.To}
		if seenPairs[pair] {
			return neaterr.InvalidConfigf("connection pair %d->%d appears more than once", c.From, c.To)
		}
		seenPairs[pair] = true
	}
	prev := uint16(0)
	first := true
	for _, innov := range g.order {
		if !first && innov < prev {
			return neaterr.InvalidConfigf("connection order is not monotone at innovation %d", innov)
		}
		prev = innov
		first = false
	}
	return nil
}
