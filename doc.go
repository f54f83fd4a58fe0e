/*
Package grafter is a stateful (model-based) property testing engine. It
generates randomized, precondition-satisfying sequences of transitions against
an abstract model of your system and runs them against the real implementation.
When a sequence exposes a failure, it minimizes it to a smaller, still-failing
reproduction.

# Concept

You describe your system twice: once as a simple abstract model (the
statemachine.Machine interface: initial state, plausible transitions, a
precondition gating which transitions are acceptable from a state, and a
transition-application function), and once as the real thing (the
statemachine.SequentialTest hooks: build the system, apply a transition, check
the invariants that tie it to the model). Grafter samples transition sequences
the model accepts, drives both in lockstep, and shrinks any divergence it
finds: first deleting transitions from the back of the sequence, then
simplifying the surviving transitions' values in place, re-validating every
candidate against the model's preconditions by replay.

# Usage

	func TestQueue(t *testing.T) {
		grafter.RunSequential[queueModel, queueOp, *Queue](t, queueTest{}, 1, 50)
	}

The type arguments name the model state, the transition type and the system
under test; they cannot be inferred from the test value alone.

On failure the test reports the seed, the minimal transition sequence, and the
invariant that broke; re-run with grafter.WithSeed to reproduce.

The engine itself is deterministic and single-threaded: one search loop owns
each generated tree. Budgets (cases, shrink iterations, generation retries)
come from runner.Config, settable in code or from a YAML file.
*/
package grafter
