package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the property search driven by a TestRunner.
type Config struct {
	// Cases is the number of generated cases per property.
	Cases int `yaml:"cases"`

	// Seed seeds the PRNG. Zero means derive a fresh seed at runner
	// construction; the effective seed is always reported on failure so a
	// run can be reproduced.
	Seed uint64 `yaml:"seed"`

	// MaxLocalRejects bounds how many times value generation may be locally
	// rejected (e.g. by a failed precondition) before the whole generation
	// attempt fails with ErrTooManyRejects.
	MaxLocalRejects int `yaml:"max_local_rejects"`

	// MaxShrinkIters bounds the total number of simplify/complicate steps
	// spent minimizing a failing case.
	MaxShrinkIters int `yaml:"max_shrink_iters"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Cases:           256,
		MaxLocalRejects: 65536,
		MaxShrinkIters:  4096,
	}
}

// LoadConfig reads a YAML config file, layering it over DefaultConfig.
// Fields absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the search cannot run with.
func (c Config) Validate() error {
	if c.Cases < 1 {
		return fmt.Errorf("%w: cases must be >= 1, got %d", ErrInvalidConfig, c.Cases)
	}
	if c.MaxLocalRejects < 0 {
		return fmt.Errorf("%w: max_local_rejects must be >= 0, got %d", ErrInvalidConfig, c.MaxLocalRejects)
	}
	if c.MaxShrinkIters < 0 {
		return fmt.Errorf("%w: max_shrink_iters must be >= 0, got %d", ErrInvalidConfig, c.MaxShrinkIters)
	}
	return nil
}
