package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries the solver defaults shared by the CLI subcommands.
// Command-line flags override these values; these override the
// built-in defaults.
type Config struct {
	Model      string        `env:"ARCON_MODEL"      envDefault:"caged"`
	Propagator string        `env:"ARCON_PROPAGATOR" envDefault:"gac"`
	Engine     string        `env:"ARCON_ENGINE"     envDefault:"bt"`
	Algorithm  string        `env:"ARCON_ALGORITHM"  envDefault:"astar"`
	Weight     float64       `env:"ARCON_WEIGHT"     envDefault:"5"`
	Timebound  time.Duration `env:"ARCON_TIMEBOUND"  envDefault:"8s"`
	Parallel   int           `env:"ARCON_PARALLEL"   envDefault:"1"`
	Depth      int           `env:"ARCON_DEPTH"      envDefault:"6"`
	Trace      bool          `env:"ARCON_TRACE"      envDefault:"false"`
}

// FromEnv loads configuration from the ARCON_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
