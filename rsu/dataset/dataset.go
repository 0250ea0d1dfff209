package dataset

import (
	"io"
	"sort"

	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/neaterr"
	"github.com/gocarina/gocsv"
)

// Dataset is a typed slice of Records that can be fed directly to
// Genome.GetFitness via Rows.
type Dataset []*Record

// Load reads a CSV dataset from r via gocsv, matching the column layout
// Record declares.
func Load(r io.Reader) (Dataset, error) {
	var records []*Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, neaterr.MalformedRecord(err, "parsing dataset csv")
	}
	return Dataset(records), nil
}

// SortByNodeThenTime orders records by ascending NodeID, then ascending
// RelativeTime within each node. Required before any fitness run, since
// genome activation is recurrent and therefore order-sensitive.
func (d Dataset) SortByNodeThenTime() {
	sort.SliceStable(d, func(i, j int) bool {
		if d[i].NodeID != d[j].NodeID {
			return d[i].NodeID < d[j].NodeID
		}
		return d[i].RelativeTime < d[j].RelativeTime
	})
}

// Rows adapts Dataset to []genome.Row for Genome.GetFitness.
func (d Dataset) Rows() []genome.Row {
	rows := make([]genome.Row, len(d))
	for i, r := range d {
		rows[i] = r
	}
	return rows
}
