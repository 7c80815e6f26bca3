package swarm

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	pso "github.com/RodrigoJC20/PSO-Rastrigin"
)

// Default coefficients for the velocity update and boundary penalty.
const (
	DefaultCognition   = 1.3
	DefaultSocial      = 1.1
	DefaultInertia     = 0.9
	DefaultPenalty     = 10000
	DefaultArchiveSize = 10
)

// Constriction calculates the constriction coefficient for the given c1 and
// c2 for the particle velocity equation:
//
//    v_next = k(v_curr + c1*rand*(p_personal-x) + c2*rand*(p_glob-x))
//
// c1+c2 should usually be greater than (but close to) 4.  Using the result
// as the inertia with c1 and c2 multiplied through gives the deterministic
// parameter set described in:
//
//     Clerc and M.  “The swarm and the queen: towards a deterministic and
//     adaptive particle swarm optimization” Proc. 1999 Congress on
//     Evolutionary Computation, pp. 1951-1957
func Constriction(c1, c2 float64) float64 {
	phi := c1 + c2
	return 2 / math.Abs(2-phi-math.Sqrt(phi*phi-4*phi))
}

type Particle struct {
	Id  int
	Pos []float64
	Vel []float64
	// Val is the evaluated fitness at Pos from the most recent sweep,
	// including any boundary penalty.
	Val  float64
	Best pso.Point
}

// Move applies one velocity and position update pulling p toward its
// personal best and gbest, then clamps the particle inside the box described
// by low and up, zeroing the velocity of every clamped dimension.  The
// cognitive and social pulls share a single random draw each across all
// dimensions of this update.  Move reports whether any dimension was
// clamped.
func (p *Particle) Move(gbest pso.Point, low, up []float64, inertia, cognition, social float64, rng pso.Rng) bool {
	r1 := rng.Float64()
	r2 := rng.Float64()

	penalized := false
	for i, currv := range p.Vel {
		p.Vel[i] = inertia*currv +
			cognition*r1*(p.Best.At(i)-p.Pos[i]) +
			social*r2*(gbest.At(i)-p.Pos[i])
		p.Pos[i] += p.Vel[i]
		if p.Pos[i] < low[i] {
			p.Pos[i] = low[i]
			p.Vel[i] = 0
			penalized = true
		} else if p.Pos[i] > up[i] {
			p.Pos[i] = up[i]
			p.Vel[i] = 0
			penalized = true
		}
	}
	return penalized
}

type Population []*Particle

// NewPopulation initializes a population of particles at the given points.
// Velocities are drawn uniformly from the box bounds described by low and
// up, the same range positions are drawn from.
func NewPopulation(points []pso.Point, low, up []float64) Population {
	pop := make(Population, len(points))
	for i, p := range points {
		pop[i] = &Particle{
			Id:   i,
			Pos:  p.Pos(),
			Vel:  make([]float64, p.Len()),
			Val:  p.Val,
			Best: p,
		}
		for j := range pop[i].Vel {
			pop[i].Vel[j] = low[j] + pso.RandFloat()*(up[j]-low[j])
		}
	}
	return pop
}

// NewPopulationRand creates a population of n particles with positions and
// velocities distributed uniformly in the box bounds described by low and up.
func NewPopulationRand(n int, low, up []float64) Population {
	return NewPopulation(pso.RandPop(n, low, up), low, up)
}

// Best returns the particle whose personal best has the lowest fitness.
// Ties go to the earliest particle.
func (pop Population) Best() *Particle {
	if len(pop) == 0 {
		return nil
	}

	best := pop[0]
	for _, p := range pop[1:] {
		if p.Best.Val < best.Best.Val {
			best = p
		}
	}
	return best
}

type Option func(*Iterator)

// LearnFactors sets the cognitive (c1) and social (c2) acceleration
// constants for the velocity update.
func LearnFactors(cognition, social float64) Option {
	return func(it *Iterator) {
		it.Cognition = cognition
		it.Social = social
	}
}

// Inertia sets the weight on retained velocity.
func Inertia(w float64) Option {
	return func(it *Iterator) {
		it.Inertia = w
	}
}

// PenaltyFactor sets the fitness inflation applied to particles that had to
// be clamped back inside the bounds.
func PenaltyFactor(p float64) Option {
	return func(it *Iterator) {
		it.Penalty = p
	}
}

// Rng sets the random source used for the per-particle draws of each sweep.
func Rng(rng pso.Rng) Option {
	return func(it *Iterator) {
		it.Rng = rng
	}
}

func DB(db *sql.DB) Option {
	return func(it *Iterator) {
		it.Db = db
	}
}

// ArchiveSize caps how many global-best improvements the run archives.
func ArchiveSize(k int) Option {
	return func(it *Iterator) {
		it.Archive = NewArchive(k)
	}
}

type Iterator struct {
	Pop       Population
	Cognition float64
	Social    float64
	Inertia   float64
	// Penalty is added to the evaluated fitness of any particle that was
	// clamped back inside the bounds during a sweep.
	Penalty float64
	Rng     pso.Rng
	// Db, when non-nil, receives per-sweep particle and best rows.
	Db *sql.DB
	// Archive accumulates the best global-best improvements of the run.
	Archive *Archive

	low   []float64
	up    []float64
	count int
	best  pso.Point
}

// NewIterator evaluates the initial personal bests of pop with obj, seeds
// the global best from the lowest of them, and returns an iterator ready to
// sweep the box bounds described by low and up.  Particles whose personal
// best already has a finite value are not re-evaluated.
func NewIterator(obj pso.Objectiver, pop Population, low, up []float64, opts ...Option) (*Iterator, error) {
	if len(pop) == 0 {
		return nil, errors.New("swarm: population is empty")
	}

	it := &Iterator{
		Pop:       pop,
		Cognition: DefaultCognition,
		Social:    DefaultSocial,
		Inertia:   DefaultInertia,
		Penalty:   DefaultPenalty,
		Rng:       pso.Rand,
		Archive:   NewArchive(DefaultArchiveSize),
		low:       append([]float64{}, low...),
		up:        append([]float64{}, up...),
	}

	for _, opt := range opts {
		opt(it)
	}

	for _, p := range it.Pop {
		if !math.IsInf(p.Best.Val, 1) {
			continue
		}
		val, err := obj.Objective(p.Pos)
		if err != nil {
			return nil, fmt.Errorf("evaluating initial particle %v: %w", p.Id, err)
		}
		p.Val = val
		p.Best = pso.NewPoint(p.Pos, val)
	}
	it.best = it.Pop.Best().Best

	if err := it.initdb(); err != nil {
		return nil, err
	}
	return it, nil
}

// Iterate runs one update sweep over the population in slice order.  Each
// particle moves, is evaluated at its clamped position (plus the boundary
// penalty when clamped), and updates the personal and global bests before
// the next particle moves - particles later in the sweep chase a global
// best that may have improved earlier in the same sweep.
func (it *Iterator) Iterate(obj pso.Objectiver) (best pso.Point, neval int, err error) {
	it.count++

	for _, p := range it.Pop {
		penalized := p.Move(it.best, it.low, it.up, it.Inertia, it.Cognition, it.Social, it.Rng)

		val, err := obj.Objective(p.Pos)
		if err != nil {
			return it.best, neval, fmt.Errorf("evaluating particle %v: %w", p.Id, err)
		}
		neval++
		if penalized {
			val += it.Penalty
		}
		p.Val = val

		if val < p.Best.Val {
			p.Best = pso.NewPoint(p.Pos, val)
		}
		if val < it.best.Val {
			it.best = pso.NewPoint(p.Pos, val)
			it.Archive.Add(it.count-1, it.best)
		}
	}

	if err := it.updateDb(); err != nil {
		return it.best, neval, err
	}
	return it.best, neval, nil
}
