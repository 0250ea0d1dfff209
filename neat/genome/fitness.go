package genome

import "math"

// Row is the minimal shape the fitness evaluator needs from a dataset
// record: the feature vector fed to the SENSOR nodes, in fixed input
// order, and the target value the OUTPUT node is scored against. CSV
// ingestion and the concrete record type live outside this package (see
// rsu/dataset).
type Row interface {
	Features() []float64
	Target() float64
}

// PredictionStorer is optionally implemented by a Row to receive the
// genome's prediction for it.
type PredictionStorer interface {
	SetPrediction(float64)
}

// GetFitness resets node state, then activates the genome once per row
// in order, accumulating squared error against each row's target. Order
// matters because of recurrence — callers must pre-sort the dataset by
// (node id, time). If store is true, each row's prediction is written back via
// PredictionStorer when the row implements it. The sum is clamped to the
// largest finite float64 if it would otherwise be non-finite, so
// downstream sorts stay total.
func (g *Genome) GetFitness(rows []Row, store bool) float64 {
	g.ResetNodes()

	sum := 0.0
	for _, row := range rows {
		prediction := g.Activate(row.Features())
		diff := prediction - row.Target()
		sum += diff * diff
		if store {
			if storer, ok := row.(PredictionStorer); ok {
				storer.SetPrediction(prediction)
			}
		}
	}

	if math.IsInf(sum, 0) || math.IsNaN(sum) {
		return math.MaxFloat64
	}
	return sum
}
