package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gonum.org/v1/gonum/floats"

	pso "github.com/RodrigoJC20/PSO-Rastrigin"
	"github.com/RodrigoJC20/PSO-Rastrigin/bench"
	"github.com/RodrigoJC20/PSO-Rastrigin/config"
	"github.com/RodrigoJC20/PSO-Rastrigin/report"
	"github.com/RodrigoJC20/PSO-Rastrigin/swarm"
)

// run executes one full experiment: seed, init swarm, sweep, report.
func run(cfg config.Config, w io.Writer) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pso.Rand = rand.New(rand.NewSource(seed))

	printParams(w, cfg)

	fn := bench.Rastrigin{NDim: cfg.Dims}
	low, up := cfg.Bounds()

	opts := []swarm.Option{
		swarm.LearnFactors(cfg.Cognition, cfg.Social),
		swarm.Inertia(cfg.Inertia),
		swarm.PenaltyFactor(cfg.Penalty),
		swarm.ArchiveSize(cfg.TopK),
	}

	var db *sql.DB
	if cfg.DBPath != "" {
		var err error
		db, err = sql.Open("sqlite3", cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening swarm history db: %w", err)
		}
		defer db.Close()
		opts = append(opts, swarm.DB(db))
	}

	pop := swarm.NewPopulationRand(cfg.Particles, low, up)
	it, err := swarm.NewIterator(pso.Func(fn.Eval), pop, low, up, opts...)
	if err != nil {
		return err
	}

	csv, err := report.NewCSV(cfg.CSVPath)
	if err != nil {
		return err
	}
	defer csv.Close()

	rec := report.Multi{report.NewConsole(w, cfg.LogEvery), csv}
	var pl *report.Plot
	if cfg.PlotPath != "" {
		pl = report.NewPlot(cfg.PlotPath)
		rec = append(rec, pl)
	}

	solv := &pso.Solver{
		Iter:    it,
		Obj:     pso.Func(fn.Eval),
		MaxIter: cfg.Iterations,
		Rec:     rec,
	}
	if err := solv.Run(); err != nil {
		return err
	}

	printSummary(w, solv, it, fn)

	if pl != nil {
		if err := pl.Close(); err != nil {
			return err
		}
		slog.Info("wrote convergence plot", "path", cfg.PlotPath)
	}
	return nil
}

func printParams(w io.Writer, cfg config.Config) {
	fmt.Fprintln(w, "Rastrigin using Particle Swarm Optimization")
	fmt.Fprintln(w, "===========================================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parameters:")
	fmt.Fprintf(w, "  Number of particles: %v\n", cfg.Particles)
	fmt.Fprintf(w, "  Number of iterations: %v\n", cfg.Iterations)
	fmt.Fprintf(w, "  Inertia weight: %v\n", cfg.Inertia)
	fmt.Fprintf(w, "  Cognitive weight: %v\n", cfg.Cognition)
	fmt.Fprintf(w, "  Social weight: %v\n", cfg.Social)
	fmt.Fprintf(w, "  Lower and Upper bounds: [%v, %v]\n", cfg.LowerBound, cfg.UpperBound)
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, solv *pso.Solver, it *swarm.Iterator, fn bench.Rastrigin) {
	best := solv.Best()
	fmt.Fprintf(w, "Best solution found at: fitness = %v\n", best.Val)
	for i := 0; i < best.Len(); i++ {
		fmt.Fprintf(w, "x%v: %v\n", i+1, best.At(i))
	}

	stats := it.Stats()
	opt := fn.Optima()[0]
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sweeps: %v, function evaluations: %v\n", solv.Niter(), solv.Neval())
	fmt.Fprintf(w, "Distance from known optimum: %v\n", floats.Distance(best.Pos(), opt.Pos(), 2))
	fmt.Fprintf(w, "Swarm fitness mean %v (stddev %v), mean distance from best %v\n",
		stats.MeanVal, stats.StdVal, stats.Spread)

	if it.Archive.Len() > 0 {
		fmt.Fprintf(w, "Top %v improvements:\n", it.Archive.Len())
		it.Archive.Walk(func(iter int, p pso.Point) {
			fmt.Fprintf(w, "  sweep %v: %v\n", iter, p.Val)
		})
	}
}
