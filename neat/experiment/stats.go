package experiment

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Floats is a slice of sample values with the descriptive statistics the
// per-generation summary reports.
type Floats []float64

// Min returns the smallest value, or 0 if empty.
func (x Floats) Min() float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Min(x)
}

// Max returns the greatest value, or 0 if empty.
func (x Floats) Max() float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Max(x)
}

// Sum returns the sum of all values.
func (x Floats) Sum() float64 { return floats.Sum(x) }

// Mean returns the unweighted average, or 0 if empty.
func (x Floats) Mean() float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// StdDev returns the sample standard deviation, or 0 if fewer than two
// values.
func (x Floats) StdDev() float64 {
	if len(x) < 2 {
		return 0
	}
	_, variance := stat.MeanVariance(x, nil)
	return math.Sqrt(variance)
}

// Median returns the 50th percentile via a sorted copy.
func (x Floats) Median() float64 { return x.quantile(0.5) }

// Q25 returns the 25th percentile.
func (x Floats) Q25() float64 { return x.quantile(0.25) }

// Q75 returns the 75th percentile.
func (x Floats) Q75() float64 { return x.quantile(0.75) }

func (x Floats) quantile(q float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append(Floats(nil), x...)
	sort.Float64s(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}

// GenerationSummary is the per-generation statistic snapshot an optional
// stats sink consumes: fitness distribution plus the per-species size
// breakdown.
type GenerationSummary struct {
	Generation   int
	BestFitness  float64
	MeanFitness  float64
	StdDevFitness float64
	SpeciesCount int
	SpeciesSizes []int
}

// Sink receives one GenerationSummary per completed generation. Driver
// callers that don't want statistics pass a nil Sink.
type Sink interface {
	Emit(GenerationSummary)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(GenerationSummary)

func (f SinkFunc) Emit(s GenerationSummary) { f(s) }
