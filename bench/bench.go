// Package bench provides the benchmark objective the swarm is tested
// against: the Rastrigin function, a highly multimodal standard test
// function with a global minimum of zero at the origin.
package bench

import (
	"fmt"
	"math"

	pso "github.com/RodrigoJC20/PSO-Rastrigin"
)

var (
	cos = math.Cos
	abs = math.Abs
)

type Func interface {
	Eval(v []float64) float64
	Bounds() (low, up []float64)
	Optima() []pso.Point
	Name() string
}

type Rastrigin struct {
	NDim int
}

func (fn Rastrigin) Name() string { return fmt.Sprintf("Rastrigin_%vD", fn.NDim) }

// Eval returns 10*d + sum(x_i^2 - 10*cos(2*pi*x_i)) for the d variables in v.
// It is defined for any finite input, including positions outside Bounds -
// enforcing bounds is the caller's concern, not the function's.
func (fn Rastrigin) Eval(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x*x - 10*cos(2*math.Pi*x)
	}
	return 10*float64(len(v)) + sum
}

func (fn Rastrigin) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -5.12
		up[i] = 5.12
	}
	return low, up
}

func (fn Rastrigin) Optima() []pso.Point {
	return []pso.Point{
		pso.NewPoint(make([]float64, fn.NDim), 0),
	}
}

// Benchmark runs solv to completion and reports whether the best point it
// found came within tol of fn's known optimum.
func Benchmark(solv *pso.Solver, fn Func, tol float64) (ok bool, err error) {
	optimum := fn.Optima()[0].Val
	thresh := tol * abs(optimum)
	if 0.001 > thresh {
		thresh = 0.001
	}

	if err := solv.Run(); err != nil {
		return false, err
	}
	return abs(solv.Best().Val-optimum) < thresh, nil
}

func InsideBounds(p []float64, fn Func) bool {
	low, up := fn.Bounds()
	for i := range p {
		if p[i] < low[i] || p[i] > up[i] {
			return false
		}
	}
	return true
}
