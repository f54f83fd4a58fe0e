package grafter

import (
	"log/slog"

	"github.com/aretw0/grafter/internal/logging"
	"github.com/aretw0/grafter/pkg/runner"
	"github.com/aretw0/grafter/pkg/statemachine"
)

// Version is the library version, reported by the CLI.
const Version = "0.1.0"

// TestingT is the subset of *testing.T the facade needs.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

type settings struct {
	cfg    runner.Config
	logger *slog.Logger
	hooks  runner.Hooks
}

// Option configures a property run started through the facade.
type Option func(*settings)

// WithConfig replaces the whole runner configuration.
func WithConfig(cfg runner.Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithSeed pins the PRNG seed, making the run reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.cfg.Seed = seed
	}
}

// WithCases sets the number of generated cases.
func WithCases(cases int) Option {
	return func(s *settings) {
		s.cfg.Cases = cases
	}
}

// WithLogger sets a structured logger for generation and shrink tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithVerbose enables debug tracing to stderr. Shorthand for
// WithLogger(logging.New(slog.LevelDebug)).
func WithVerbose() Option {
	return func(s *settings) {
		s.logger = logging.New(slog.LevelDebug)
	}
}

// WithHooks registers lifecycle observer callbacks.
func WithHooks(hooks runner.Hooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// NewRunner builds a TestRunner from the given options, layered over
// runner.DefaultConfig.
func NewRunner(opts ...Option) *runner.TestRunner {
	s := settings{cfg: runner.DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}
	trOpts := []runner.Option{runner.WithHooks(s.hooks)}
	if s.logger != nil {
		trOpts = append(trOpts, runner.WithLogger(s.logger))
	}
	return runner.New(s.cfg, trOpts...)
}

// RunSequential runs the sequential state machine property for test with
// sequence lengths in [minSize, maxSize], failing t with the minimal
// counterexample if the property is falsified.
func RunSequential[S, T, SUT any](t TestingT, test statemachine.SequentialTest[S, T, SUT], minSize, maxSize int, opts ...Option) {
	t.Helper()
	if err := CheckSequential(test, minSize, maxSize, opts...); err != nil {
		t.Fatalf("%v", err)
	}
}

// CheckSequential is RunSequential without the testing.T coupling: it returns
// a *statemachine.CounterexampleError when the property is falsified and nil
// when every case passes. Used by programs embedding the engine.
func CheckSequential[S, T, SUT any](test statemachine.SequentialTest[S, T, SUT], minSize, maxSize int, opts ...Option) error {
	return statemachine.RunSequential(NewRunner(opts...), test, minSize, maxSize)
}
