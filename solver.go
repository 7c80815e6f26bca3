package pso

import "fmt"

// Solver drives an Iterator for a fixed number of sweeps, forwarding one
// progress record per sweep to Rec (if any).  The run has no convergence
// criterion: it stops after MaxIter sweeps or on the first error.
type Solver struct {
	Iter    Iterator
	Obj     Objectiver
	MaxIter int
	// Rec receives (sweep index, best point) after every sweep.  Sweep
	// indexes start at zero.  A Record error aborts the run; the swarm state
	// held by Iter stays valid.
	Rec Recorder

	best  Point
	neval int
	niter int
	err   error
}

func (s *Solver) Best() Point { return s.best }
func (s *Solver) Niter() int  { return s.niter }
func (s *Solver) Neval() int  { return s.neval }
func (s *Solver) Err() error  { return s.err }

// Next runs one sweep and reports whether the solver can continue.
func (s *Solver) Next() bool {
	if s.err != nil || s.niter >= s.MaxIter {
		return false
	}

	var n int
	s.best, n, s.err = s.Iter.Iterate(s.Obj)
	s.neval += n
	if s.err != nil {
		s.err = fmt.Errorf("sweep %v: %w", s.niter, s.err)
		return false
	}
	s.niter++

	if s.Rec != nil {
		if err := s.Rec.Record(s.niter-1, s.best); err != nil {
			s.err = fmt.Errorf("recording sweep %v: %w", s.niter-1, err)
			return false
		}
	}
	return s.niter < s.MaxIter
}

// Run drives Next until the iteration budget is spent and returns the first
// error encountered, if any.
func (s *Solver) Run() error {
	for s.Next() {
	}
	return s.err
}
