package swarm

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the population at the end of a sweep.
type Stats struct {
	// MeanVal and StdVal describe the evaluated fitnesses across particles.
	MeanVal float64
	StdVal  float64
	// Spread is the mean euclidean distance of particle positions from the
	// global best.
	Spread float64
}

// Stats computes population diagnostics against the current global best.
func (it *Iterator) Stats() Stats {
	vals := make([]float64, len(it.Pop))
	dists := make([]float64, len(it.Pop))
	bestpos := it.best.Pos()
	for i, p := range it.Pop {
		vals[i] = p.Val
		dists[i] = floats.Distance(p.Pos, bestpos, 2)
	}
	return Stats{
		MeanVal: stat.Mean(vals, nil),
		StdVal:  stat.StdDev(vals, nil),
		Spread:  stat.Mean(dists, nil),
	}
}
