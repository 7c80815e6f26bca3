// Command pso-rastrigin minimizes the Rastrigin benchmark function with
// particle swarm optimization, appending per-sweep progress to a CSV log.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RodrigoJC20/PSO-Rastrigin/config"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "err", err)
		os.Exit(1)
	}

	if err := newRootCmd(&cfg).Execute(); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pso-rastrigin",
		Short: "Minimize the Rastrigin function with a particle swarm",
		Long: `pso-rastrigin runs particle swarm optimization against the Rastrigin
benchmark function and appends per-sweep progress to a CSV log.

Parameters come from built-in defaults, then PSO_* environment variables,
then flags.  Repeated runs against the same CSV path accumulate rows.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(*cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.PersistentFlags()
	f.IntVar(&cfg.Particles, "particles", cfg.Particles, "number of particles in the swarm")
	f.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "number of update sweeps to run")
	f.IntVar(&cfg.Dims, "dimensions", cfg.Dims, "dimensionality of the search space")
	f.Float64Var(&cfg.Inertia, "inertia", cfg.Inertia, "inertia weight W")
	f.Float64Var(&cfg.Cognition, "cognition", cfg.Cognition, "cognitive acceleration constant C1")
	f.Float64Var(&cfg.Social, "social", cfg.Social, "social acceleration constant C2")
	f.Float64Var(&cfg.LowerBound, "lower", cfg.LowerBound, "lower bound of the search space")
	f.Float64Var(&cfg.UpperBound, "upper", cfg.UpperBound, "upper bound of the search space")
	f.Float64Var(&cfg.Penalty, "penalty", cfg.Penalty, "fitness penalty for leaving the bounds")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 seeds from the clock)")
	f.IntVar(&cfg.LogEvery, "log-every", cfg.LogEvery, "sweeps between console progress lines")
	f.StringVar(&cfg.CSVPath, "csv", cfg.CSVPath, "progress log to append to")
	f.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite file for per-sweep swarm history (empty disables)")
	f.StringVar(&cfg.PlotPath, "plot", cfg.PlotPath, "PNG convergence chart to write (empty disables)")
	f.IntVar(&cfg.TopK, "top-k", cfg.TopK, "best improvements kept for the closing summary")

	cmd.AddCommand(newSuiteCmd(cfg))
	return cmd
}

func newSuiteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "suite <file>",
		Short: "Run every experiment in a YAML suite file",
		Long: `suite runs each named experiment of a YAML file in order.  Every run
starts from the base configuration (defaults, environment, flags) and
overrides only the fields it sets; progress goes to <name>.csv unless the
run names its own csv path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := config.LoadSuite(args[0], *cfg)
			if err != nil {
				return err
			}
			for _, r := range runs {
				slog.Info("starting run",
					"name", r.Name,
					"particles", r.Particles,
					"iterations", r.Iterations,
					"dimensions", r.Dims,
				)
				if err := run(r.Config, cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("run %v: %w", r.Name, err)
				}
			}
			return nil
		},
	}
}
