package statemachine_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/grafter/pkg/runner"
	"github.com/aretw0/grafter/pkg/statemachine"
	"github.com/aretw0/grafter/pkg/strategy"
)

// scriptMachine replays a fixed list of transitions: the model state is the
// number of applied transitions and each step proposes exactly the scripted
// value. It makes controller scenarios deterministic regardless of the PRNG.
type scriptMachine struct {
	script       []string
	precondition func(state int64, transition string) bool
	precondCalls *int
}

func (m scriptMachine) InitialState() strategy.Strategy[int64] {
	return strategy.Just(int64(0))
}

func (m scriptMachine) Transitions(state int64) strategy.Strategy[string] {
	return strategy.Just(m.script[state])
}

func (m scriptMachine) Precondition(state int64, transition string) bool {
	if m.precondCalls != nil {
		*m.precondCalls++
	}
	if m.precondition == nil {
		return true
	}
	return m.precondition(state, transition)
}

func (m scriptMachine) Next(state int64, transition string) int64 {
	return state + 1
}

// counterMachine is a guarded counter: increment is always allowed, decrement
// only when the counter is positive.
type counterMachine struct{}

func (counterMachine) InitialState() strategy.Strategy[int64] {
	return strategy.Just(int64(0))
}

func (counterMachine) Transitions(state int64) strategy.Strategy[string] {
	return strategy.OneOf(
		strategy.Weighted(1, strategy.Just("inc")),
		strategy.Weighted(1, strategy.Just("dec")),
	)
}

func (counterMachine) Precondition(state int64, transition string) bool {
	return transition != "dec" || state > 0
}

func (counterMachine) Next(state int64, transition string) int64 {
	if transition == "inc" {
		return state + 1
	}
	return state - 1
}

// valueMachine generates freely shrinkable integer transitions with no
// precondition; the model state counts applied transitions.
type valueMachine struct{}

func (valueMachine) InitialState() strategy.Strategy[int64] {
	return strategy.Just(int64(0))
}

func (valueMachine) Transitions(state int64) strategy.Strategy[int64] {
	return strategy.Int(0, 100)
}

func (valueMachine) Precondition(state int64, transition int64) bool { return true }

func (valueMachine) Next(state int64, transition int64) int64 { return state + 1 }

// newRunner builds a deterministic runner for tests.
func newRunner(seed uint64) *runner.TestRunner {
	cfg := runner.DefaultConfig()
	cfg.Seed = seed
	return runner.New(cfg)
}

// genTreeOfSize generates trees until one of exactly size n appears. The
// target length is sampled uniformly, so with any healthy seed this takes a
// handful of attempts.
func genTreeOfSize[S, T any](t *testing.T, seq *statemachine.Sequential[S, T], tr *runner.TestRunner, n int) *statemachine.SequentialTree[S, T] {
	t.Helper()
	for attempt := 0; attempt < 200; attempt++ {
		tree, err := seq.NewTree(tr)
		if err != nil {
			t.Fatalf("NewTree failed: %v", err)
		}
		if tree.Size() == n {
			return tree
		}
	}
	t.Fatalf("no generated tree of size %d in 200 attempts", n)
	return nil
}

// replayValid re-checks a transition sequence against a machine from the
// initial state, independent of the tree's own replay.
func replayValid[S, T any](m statemachine.Machine[S, T], initial S, transitions []T) error {
	state := initial
	for i, tr := range transitions {
		if !m.Precondition(state, tr) {
			return fmt.Errorf("precondition rejected transition %d (%v)", i, tr)
		}
		state = m.Next(state, tr)
	}
	return nil
}
