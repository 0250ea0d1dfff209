// Package format implements two on-disk representations of a genome:
// a self-contained line-oriented file format, and a clustered Graphviz
// digraph for visualization. The file format uses three record kinds
// (id/node/link), written by WriteGenome and parsed by ReadGenome through
// bufio.
package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/neaterr"
	"github.com/abreis/neatrsu/neat/randsrc"
)

func kindToCode(k genome.Kind) string {
	switch k {
	case genome.Sensor:
		return "Sen"
	case genome.Output:
		return "Out"
	case genome.Bias:
		return "Bia"
	default:
		return "Hid"
	}
}

func codeToKind(code string) (genome.Kind, error) {
	switch code {
	case "Sen":
		return genome.Sensor, nil
	case "Out":
		return genome.Output, nil
	case "Bia":
		return genome.Bias, nil
	case "Hid":
		return genome.Hidden, nil
	default:
		return 0, neaterr.MalformedRecord(fmt.Errorf("unknown node kind %q", code), "parsing genome file")
	}
}

// WriteGenome writes g in the line-oriented format: an id line, one
// node line per node, one link line per connection in ascending
// innovation order.
func WriteGenome(w io.Writer, g *genome.Genome) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "id,%x\n", g.ID); err != nil {
		return neaterr.IO(err, "writing genome id")
	}

	ids := make([]uint16, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	for _, id := range ids {
		n := g.Nodes[id]
		if _, err := fmt.Fprintf(bw, "node,%d,%s\n", n.ID, kindToCode(n.Kind)); err != nil {
			return neaterr.IO(err, "writing node record")
		}
	}

	for _, c := range g.OrderedConnections() {
		enabled := 0
		if c.Enabled {
			enabled = 1
		}
		if _, err := fmt.Fprintf(bw, "link,%d,%d,%g,%d,%d\n", c.From, c.To, c.Weight, enabled, c.Innovation); err != nil {
			return neaterr.IO(err, "writing link record")
		}
	}

	if err := bw.Flush(); err != nil {
		return neaterr.IO(err, "flushing genome file")
	}
	return nil
}

// ReadGenome parses the line-oriented format WriteGenome produces.
// nInputs must match the network's input count (it is not recorded in
// the file). If seedRegistry is true, every link's (from,to)->innovation
// pair is installed into reg, letting a loaded seed genome's topology
// participate in future innovation lookups.
func ReadGenome(r io.Reader, nInputs uint16, reg *innovation.Registry, rng *randsrc.Source, seedRegistry bool) (*genome.Genome, error) {
	scanner := bufio.NewScanner(r)
	var g *genome.Genome

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")

		switch fields[0] {
		case "id":
			if len(fields) != 2 {
				return nil, neaterr.MalformedRecord(fmt.Errorf("malformed id line %q", line), "parsing genome file")
			}
			id, err := strconv.ParseUint(fields[1], 16, 64)
			if err != nil {
				return nil, neaterr.MalformedRecord(err, "parsing genome id")
			}
			g = genome.Restore(id, nInputs, reg, rng)

		case "node":
			if g == nil || len(fields) != 3 {
				return nil, neaterr.MalformedRecord(fmt.Errorf("node record before id, or malformed: %q", line), "parsing genome file")
			}
			nodeID, err := strconv.ParseUint(fields[1], 10, 16)
			if err != nil {
				return nil, neaterr.MalformedRecord(err, "parsing node id")
			}
			kind, err := codeToKind(fields[2])
			if err != nil {
				return nil, err
			}
			g.RestoreNode(&genome.NodeGene{ID: uint16(nodeID), Kind: kind})

		case "link":
			if g == nil || len(fields) != 6 {
				return nil, neaterr.MalformedRecord(fmt.Errorf("link record before id, or malformed: %q", line), "parsing genome file")
			}
			from, err := strconv.ParseUint(fields[1], 10, 16)
			if err != nil {
				return nil, neaterr.MalformedRecord(err, "parsing link from")
			}
			to, err := strconv.ParseUint(fields[2], 10, 16)
			if err != nil {
				return nil, neaterr.MalformedRecord(err, "parsing link to")
			}
			weight, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, neaterr.MalformedRecord(err, "parsing link weight")
			}
			enabledFlag, err := strconv.ParseUint(fields[4], 10, 8)
			if err != nil {
				return nil, neaterr.MalformedRecord(err, "parsing link enabled flag")
			}
			innov, err := strconv.ParseUint(fields[5], 10, 16)
			if err != nil {
				return nil, neaterr.MalformedRecord(err, "parsing link innovation")
			}
			if seedRegistry {
				reg.Seed(uint16(from), uint16(to), uint16(innov))
			}
			g.RestoreConnection(&genome.ConnectionGene{
				From:       uint16(from),
				To:         uint16(to),
				Weight:     weight,
				Enabled:    enabledFlag != 0,
				Innovation: uint16(innov),
			})

		default:
			return nil, neaterr.MalformedRecord(fmt.Errorf("unknown record kind %q", fields[0]), "parsing genome file")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, neaterr.IO(err, "reading genome file")
	}
	if g == nil {
		return nil, neaterr.MalformedRecord(fmt.Errorf("genome file had no id line"), "parsing genome file")
	}
	return g, nil
}
