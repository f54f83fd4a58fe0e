// Package runner provides the randomness source and search configuration that
// strategies draw from: a seeded PRNG with a uniform inclusive sampler, a
// local-rejection signal with a bounded retry budget, lifecycle hooks, and a
// typed YAML-loadable Config.
package runner

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/grafter/internal/logging"
)

// TestRunner is the randomness source handed to strategies. It owns a seeded
// PRNG, accounts for local rejections against the configured budget, and
// carries the logger and hooks shared by one property run.
//
// A TestRunner is not safe for concurrent use; one search loop owns it.
type TestRunner struct {
	cfg     Config
	seed    uint64
	rng     *rand.Rand
	hooks   Hooks
	logger  *slog.Logger
	rejects int
}

// Option configures a TestRunner.
type Option func(*TestRunner)

// WithLogger sets a structured logger for generation and shrink tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(tr *TestRunner) {
		if logger != nil {
			tr.logger = logger
		}
	}
}

// WithHooks registers lifecycle observer callbacks.
func WithHooks(hooks Hooks) Option {
	return func(tr *TestRunner) {
		tr.hooks = hooks
	}
}

// New creates a TestRunner from cfg. A zero cfg.Seed derives a fresh seed;
// Seed() reports the effective one either way.
func New(cfg Config, opts ...Option) *TestRunner {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	tr := &TestRunner{
		cfg:    cfg,
		seed:   seed,
		rng:    rand.New(rand.NewPCG(seed, seed)),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// Seed returns the effective PRNG seed for this runner.
func (tr *TestRunner) Seed() uint64 { return tr.seed }

// Config returns the runner's configuration.
func (tr *TestRunner) Config() Config { return tr.cfg }

// Logger returns the runner's logger. Never nil.
func (tr *TestRunner) Logger() *slog.Logger { return tr.logger }

// Hooks returns the runner's lifecycle hooks.
func (tr *TestRunner) Hooks() *Hooks { return &tr.hooks }

// SampleUniform draws an integer uniformly from the inclusive range [lo, hi].
func (tr *TestRunner) SampleUniform(lo, hi int64) int64 {
	if hi < lo {
		panic(fmt.Sprintf("grafter: invalid sample range [%d, %d]", lo, hi))
	}
	// Width in uint64: hi-lo overflows int64 when the range spans more than
	// half the domain. A zero span means the full domain.
	span := uint64(hi) - uint64(lo) + 1
	if span == 0 {
		return int64(tr.rng.Uint64())
	}
	return lo + int64(tr.rng.Uint64N(span))
}

// RejectLocal signals that the value just generated was rejected (e.g. a
// transition failed its precondition) and should be resampled. It returns nil
// while the budget allows a retry, and an error wrapping ErrTooManyRejects
// once the budget is exhausted.
func (tr *TestRunner) RejectLocal(reason string) error {
	tr.rejects++
	tr.hooks.EmitLocalReject(RejectEvent{Reason: reason, Total: tr.rejects})
	if tr.rejects > tr.cfg.MaxLocalRejects {
		return fmt.Errorf("%w: %s (after %d rejects)", ErrTooManyRejects, reason, tr.rejects)
	}
	tr.logger.Debug("local reject", "reason", reason, "total", tr.rejects)
	return nil
}

// Rejects returns how many local rejections this runner has recorded.
func (tr *TestRunner) Rejects() int { return tr.rejects }
