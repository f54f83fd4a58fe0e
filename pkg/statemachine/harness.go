package statemachine

import (
	"fmt"

	"github.com/aretw0/grafter/pkg/runner"
)

// SequentialTest extends a Machine with the hooks needed to drive a concrete
// system under test alongside the abstract model. SUT is the concrete
// system's type.
type SequentialTest[S, T, SUT any] interface {
	Machine[S, T]

	// InitSystem builds the concrete system for a run, given the generated
	// initial model state.
	InitSystem(initial S) SUT

	// ApplySystem applies a transition to the concrete system. The given
	// model state has already been advanced past the same transition, so
	// implementations can compare against the expected post-state.
	ApplySystem(sut SUT, state S, transition T) SUT

	// CheckSystem verifies the invariants that tie the concrete system to
	// the model after a transition. Returning an error fails the case.
	CheckSystem(sut SUT, state S) error
}

// CounterexampleError reports a falsified property together with the minimal
// failing transition sequence the shrink search arrived at.
type CounterexampleError[S, T any] struct {
	Seed        uint64
	Case        int
	Shrinks     int
	Initial     S
	Transitions []T
	Err         error
}

func (e *CounterexampleError[S, T]) Error() string {
	return fmt.Sprintf(
		"property falsified (seed %d, case %d, %d shrinks): initial state %v, transitions %v: %v",
		e.Seed, e.Case, e.Shrinks, e.Initial, e.Transitions, e.Err,
	)
}

func (e *CounterexampleError[S, T]) Unwrap() error { return e.Err }

// RunSequential runs the sequential state machine property for test over
// sequences of length [minSize, maxSize], using tr for randomness, case
// count and budgets. Each generated sequence is executed against a fresh
// concrete system; the first failing sequence is minimized via the tree's
// Simplify/Complicate interface and returned as a *CounterexampleError.
// A nil return means every case passed.
func RunSequential[S, T, SUT any](tr *runner.TestRunner, test SequentialTest[S, T, SUT], minSize, maxSize int) error {
	seq := NewSequential[S, T](test, minSize, maxSize)
	cfg := tr.Config()
	hooks := tr.Hooks()

	for i := 0; i < cfg.Cases; i++ {
		hooks.EmitCaseStart(runner.CaseEvent{Seed: tr.Seed(), Case: i})

		tree, err := seq.NewTree(tr)
		if err != nil {
			return fmt.Errorf("generating case %d (seed %d): %w", i, tr.Seed(), err)
		}

		trace := tree.Current()
		failure := executeTrace(test, trace)
		if failure == nil {
			hooks.EmitCasePass(runner.CaseEvent{Seed: tr.Seed(), Case: i})
			continue
		}
		hooks.EmitCaseFail(runner.CaseEvent{Seed: tr.Seed(), Case: i})

		return shrink(tr, test, tree, i, trace, failure)
	}
	return nil
}

// shrink minimizes a failing trace: simplify while the failure reproduces,
// back off one step at a time when a candidate stops failing.
func shrink[S, T, SUT any](
	tr *runner.TestRunner,
	test SequentialTest[S, T, SUT],
	tree *SequentialTree[S, T],
	caseIx int,
	failing Trace[S, T],
	failure error,
) error {
	cfg := tr.Config()
	hooks := tr.Hooks()
	logger := tr.Logger()

	minimal := failing.Transitions.Slice()
	minimalErr := failure
	shrinks := 0
	budget := cfg.MaxShrinkIters

	for budget > 0 {
		sizeBefore := tree.Size()
		if !tree.Simplify() {
			break
		}
		budget--
		kind := runner.ShrinkValue
		switch {
		case tree.Size() == sizeBefore-1:
			kind = runner.ShrinkDelete
		case tree.Size() < sizeBefore-1:
			// Only an unobserved-suffix drop removes more than one
			// transition in a single step.
			kind = runner.ShrinkObserved
		}
		trace := tree.Current()
		err := executeTrace(test, trace)
		hooks.EmitShrinkStep(runner.ShrinkEvent{Kind: kind, StillFailing: err != nil})
		if err != nil {
			shrinks++
			minimal = trace.Transitions.Slice()
			minimalErr = err
			continue
		}

		// The simplified candidate no longer fails; back off until the
		// failure reproduces again.
		for budget > 0 && tree.Complicate() {
			budget--
			trace = tree.Current()
			err = executeTrace(test, trace)
			hooks.EmitShrinkStep(runner.ShrinkEvent{Kind: runner.ShrinkComplicate, StillFailing: err != nil})
			if err != nil {
				minimal = trace.Transitions.Slice()
				minimalErr = err
				break
			}
		}
	}

	logger.Debug("shrink search finished",
		"seed", tr.Seed(), "case", caseIx, "shrinks", shrinks, "size", len(minimal))
	hooks.EmitMinimal(runner.MinimalEvent{
		Seed: tr.Seed(), Case: caseIx, Shrinks: shrinks, Size: len(minimal),
	})

	return &CounterexampleError[S, T]{
		Seed:        tr.Seed(),
		Case:        caseIx,
		Shrinks:     shrinks,
		Initial:     failing.Initial,
		Transitions: minimal,
		Err:         minimalErr,
	}
}

// executeTrace drives the concrete system through the trace's transitions,
// advancing the model in lockstep and checking invariants after each step.
// It stops at the first failure, leaving the remaining transitions
// unobserved; the tree uses that to discard them without replaying.
func executeTrace[S, T, SUT any](test SequentialTest[S, T, SUT], trace Trace[S, T]) error {
	state := trace.Initial
	sut := test.InitSystem(state)
	step := 0
	for transition := range trace.Transitions.All() {
		state = test.Next(state, transition)
		sut = test.ApplySystem(sut, state, transition)
		if err := test.CheckSystem(sut, state); err != nil {
			return fmt.Errorf("step %d (%v): %w", step, transition, err)
		}
		step++
	}
	return nil
}
