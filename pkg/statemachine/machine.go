// Package statemachine generates and minimizes transition sequences for
// model-based property testing.
//
// A Machine describes an abstract model: how to build its initial state, which
// transitions are plausible from a given state, which of those a path-dependent
// precondition accepts, and how a transition advances the state. The
// Sequential strategy samples precondition-satisfying sequences of transitions
// from a Machine; when the surrounding search finds a failing sequence, the
// resulting tree minimizes it through its Simplify/Complicate interface.
package statemachine

import (
	"fmt"

	"github.com/aretw0/grafter/pkg/strategy"
)

// Machine is the user-supplied model definition the engine is parameterized
// over. S is the model state, copied by value and advanced only through Next.
// T is the transition type; one value is generated per sequence slot.
//
// Precondition must be pure. Its verdict for a transition depends on the state
// produced by every transition before it, so the engine re-validates whole
// sequences by replay rather than caching per-transition verdicts.
type Machine[S, T any] interface {
	// InitialState produces the strategy for the model's starting state.
	InitialState() strategy.Strategy[S]

	// Transitions produces the transition strategy for the given state.
	// The returned strategy may still propose transitions the Precondition
	// rejects; generation resamples those.
	Transitions(state S) strategy.Strategy[T]

	// Precondition reports whether the transition is acceptable in state.
	Precondition(state S, transition T) bool

	// Next advances the model state by applying the transition.
	Next(state S, transition T) S
}

// Trace is the value emitted by a sequential tree: the generated initial
// model state plus the currently included transitions. The transition
// sequence records how far its consumer iterates; the tree uses that count to
// discard transitions the consumer provably never exercised.
type Trace[S, T any] struct {
	Initial     S
	Transitions *ObservedSequence[T]
}

func (tr Trace[S, T]) String() string {
	return fmt.Sprintf("initial %v, transitions %v", tr.Initial, tr.Transitions)
}
