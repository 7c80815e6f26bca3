// Package pso provides the core types for running particle swarm
// optimization over box-bounded, real-valued search spaces.
package pso

import (
	"math"
	"math/rand"
)

// Rand is the random source used by population initialization and by swarm
// iterators that were not given an explicit source.  Reassign it (e.g. with a
// seeded rand.New) to make runs reproducible.
var Rand Rng = rand.New(rand.NewSource(1))

type Rng interface {
	Float64() float64
}

func RandFloat() float64 { return Rand.Float64() }

type Point struct {
	pos []float64
	Val float64
}

func NewPoint(pos []float64, val float64) Point {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	return Point{pos: cpos, Val: val}
}

func (p Point) At(i int) float64 { return p.pos[i] }

func (p Point) Len() int { return len(p.pos) }

func (p Point) Pos() []float64 {
	pos := make([]float64, len(p.pos))
	copy(pos, p.pos)
	return pos
}

type Iterator interface {
	// Iterate runs a single sweep of a solver and reports the best point
	// found so far and the number of function evaluations n.
	Iterate(obj Objectiver) (best Point, n int, err error)
}

type Objectiver interface {
	// Objective evaluates the variables in v and returns the objective
	// function value.  The objective must be framed so that lower values are
	// better.  If the evaluation fails, positive infinity should be returned
	// along with an error.
	Objective(v []float64) (float64, error)
}

type Func func([]float64) float64

func (f Func) Objective(v []float64) (float64, error) { return f(v), nil }

// Recorder consumes one progress record per sweep.  Implementations live
// outside the optimization core and must never feed back into it.
type Recorder interface {
	Record(iter int, best Point) error
}

// RandPop generates n randomly positioned points in the boxed bounds defined by
// low and up.  The number of dimensions is equal to len(low).  Returned
// points have their values initialized to +infinity.
func RandPop(n int, low, up []float64) []Point {
	if len(low) != len(up) {
		panic("low and up vectors are not same length")
	}

	ndims := len(low)

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		pos := make([]float64, ndims)
		for j := range pos {
			pos[j] = low[j] + RandFloat()*(up[j]-low[j])
		}
		points[i] = NewPoint(pos, math.Inf(1))
	}
	return points
}
