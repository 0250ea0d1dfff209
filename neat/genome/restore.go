package genome

import (
	"math"

	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/randsrc"
)

// Restore builds an empty genome with a caller-supplied ID, for use by
// neat/genome/format when reading a genome file back off disk: the file
// already carries the node and connection records, so none of New's seed
// topology should be created. Use RestoreNode/RestoreConnection to
// populate it.
func Restore(id uint64, nInputs uint16, reg *innovation.Registry, rng *randsrc.Source) *Genome {
	return &Genome{
		ID:          id,
		Nodes:       make(map[uint16]*NodeGene),
		Connections: make(map[uint16]*ConnectionGene),
		NInputs:     nInputs,
		registry:    reg,
		rng:         rng,
		Fitness:     math.MaxFloat64,
	}
}

// RestoreNode inserts a node record read from a genome file.
func (g *Genome) RestoreNode(n *NodeGene) { g.Nodes[n.ID] = n }

// RestoreConnection inserts a connection record read from a genome file
// and refreshes the cached innovation-ascending order.
func (g *Genome) RestoreConnection(c *ConnectionGene) {
	g.Connections[c.Innovation] = c
	g.rebuildOrder()
}
