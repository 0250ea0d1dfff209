// Package dataset loads the CSV dataset the fitness evaluator runs
// genomes against: vehicle telemetry tuples labeled with their contact
// time against a roadside unit. Column layout and semantics are
// grounded on original_source/include/neatRSU.h's DataEntry, parsed
// with github.com/gocarina/gocsv the way pthm-soup/telemetry uses `csv`
// struct tags for its own record types.
package dataset

// Record is one row of vehicle telemetry: the six numeric features the
// genome's SENSOR nodes consume (NodeID, RelativeTime, Latitude,
// Longitude, Speed, Heading) plus the label (ContactTime) the genome is
// scored against. RSUID is parsed but discarded, matching the original
// C++'s commented-out field.
type Record struct {
	NodeID       uint16  `csv:"node_id"`
	RelativeTime uint32  `csv:"relative_time"`
	Latitude     float32 `csv:"latitude"`
	Longitude    float32 `csv:"longitude"`
	Speed        uint16  `csv:"speed"`
	Heading      uint16  `csv:"heading"`
	RSUID        uint16  `csv:"rsu_id"`
	ContactTime  uint32  `csv:"contact_time"`

	// Prediction is a scratch field the fitness evaluator writes to when
	// asked to store predictions.
	Prediction uint32 `csv:"-"`
}

// Features returns the six numeric inputs in the fixed order the genome
// was seeded with, satisfying genome.Row.
func (r *Record) Features() []float64 {
	return []float64{
		float64(r.NodeID),
		float64(r.RelativeTime),
		float64(r.Latitude),
		float64(r.Longitude),
		float64(r.Speed),
		float64(r.Heading),
	}
}

// Target returns the contact time the genome's output is scored
// against, satisfying genome.Row.
func (r *Record) Target() float64 { return float64(r.ContactTime) }

// SetPrediction stores the genome's prediction for this row, satisfying
// genome.PredictionStorer.
func (r *Record) SetPrediction(p float64) { r.Prediction = uint32(p) }
