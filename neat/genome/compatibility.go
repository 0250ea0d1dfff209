package genome

import "math"

// Compatibility computes the NEAT compatibility distance:
//
//	c1*E/N + c2*D/N + c3*W
//
// where E is the excess gene count, D is the disjoint gene count, W is the
// mean weight difference across matching genes, and N normalizes for
// genome size (the larger parent's gene count, floored at 1 for small
// genomes).
//
// Two independent cursors walk a's and b's connections in ascending
// innovation order, each advancing only over its own genome's gene list,
// so a disjoint gene is never mistaken for an excess one.
func Compatibility(a, b *Genome, c1, c2, c3 float64) float64 {
	i, j := 0, 0
	var disjoint, excess int
	var matching int
	var weightDiffSum float64

	for i < len(a.order) && j < len(b.order) {
		ai, bj := a.order[i], b.order[j]
		switch {
		case ai == bj:
			matching++
			weightDiffSum += math.Abs(a.Connections[ai].Weight - b.Connections[bj].Weight)
			i++
			j++
		case ai < bj:
			disjoint++
			i++
		default:
			disjoint++
			j++
		}
	}
	excess = (len(a.order) - i) + (len(b.order) - j)

	n := len(a.order)
	if len(b.order) > n {
		n = len(b.order)
	}
	if n < 1 {
		n = 1
	}

	avgWeightDiff := 0.0
	if matching > 0 {
		avgWeightDiff = weightDiffSum / float64(matching)
	}

	return c1*float64(excess)/float64(n) + c2*float64(disjoint)/float64(n) + c3*avgWeightDiff
}
