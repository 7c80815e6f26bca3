// Package config carries the runtime parameters of a swarm run: particle
// and sweep counts, the velocity-update coefficients, search bounds, seed,
// and output paths.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds every knob of a run.  Defaults come from Default; PSO_*
// environment variables and command-line flags override them.
type Config struct {
	Particles  int     `env:"PARTICLES" yaml:"particles" validate:"gt=0"`
	Iterations int     `env:"ITERATIONS" yaml:"iterations" validate:"gt=0"`
	Dims       int     `env:"DIMENSIONS" yaml:"dimensions" validate:"gt=0"`
	Inertia    float64 `env:"INERTIA" yaml:"inertia" validate:"gte=0"`
	Cognition  float64 `env:"COGNITION" yaml:"cognition" validate:"gte=0"`
	Social     float64 `env:"SOCIAL" yaml:"social" validate:"gte=0"`
	LowerBound float64 `env:"LOWER_BOUND" yaml:"lower_bound" validate:"ltfield=UpperBound"`
	UpperBound float64 `env:"UPPER_BOUND" yaml:"upper_bound"`
	Penalty    float64 `env:"PENALTY" yaml:"penalty" validate:"gte=0"`

	// Seed seeds the random source; zero seeds from the clock instead.
	Seed     int64  `env:"SEED" yaml:"seed"`
	LogEvery int    `env:"LOG_EVERY" yaml:"log_every" validate:"gt=0"`
	CSVPath  string `env:"CSV" yaml:"csv" validate:"required"`
	DBPath   string `env:"DB" yaml:"db"`
	PlotPath string `env:"PLOT" yaml:"plot"`
	TopK     int    `env:"TOP_K" yaml:"top_k" validate:"gte=0"`
}

// Default returns the reference parameter set: a 30-particle swarm sweeping
// 100 times over a 10-dimensional [-1,1] box.
func Default() Config {
	return Config{
		Particles:  30,
		Iterations: 100,
		Dims:       10,
		Inertia:    0.9,
		Cognition:  1.3,
		Social:     1.1,
		LowerBound: -1,
		UpperBound: 1,
		Penalty:    10000,
		LogEvery:   100,
		CSVPath:    "rastrigin.csv",
		TopK:       10,
	}
}

// Load returns the default configuration with any PSO_-prefixed environment
// variables applied on top.
func Load() (Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PSO_"}); err != nil {
		var agg env.AggregateError
		if errors.As(err, &agg) {
			return cfg, fmt.Errorf("parsing environment: %w", agg.Errors[0])
		}
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the coefficient, bound, and budget constraints.  The
// engine does not revalidate: a configuration must pass here before it is
// turned into a swarm.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Bounds expands the scalar bound pair into per-dimension vectors.
func (c Config) Bounds() (low, up []float64) {
	low = make([]float64, c.Dims)
	up = make([]float64, c.Dims)
	for i := range low {
		low[i] = c.LowerBound
		up[i] = c.UpperBound
	}
	return low, up
}
