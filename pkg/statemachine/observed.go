package statemachine

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// ObservedSequence is a transition sequence paired with a shared counter of
// how many leading elements have been yielded to a consumer. The counter is
// shared with the tree that emitted the sequence: after a test run, any suffix
// beyond the observed count had no effect on the outcome and the tree may
// drop it without replaying.
//
// The counter is atomic because the consumer may iterate on a different
// goroutine than the one driving the shrink search. There is one writer per
// emitted sequence, and the tree reads only after that iteration finished.
type ObservedSequence[T any] struct {
	seen        *atomic.Uint64
	transitions []T
}

func newObservedSequence[T any](seen *atomic.Uint64, transitions []T) *ObservedSequence[T] {
	return &ObservedSequence[T]{seen: seen, transitions: transitions}
}

// All iterates the transitions in order, counting each yielded element as
// observed. Breaking out early leaves the remaining suffix uncounted.
func (o *ObservedSequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, t := range o.transitions {
			o.seen.Add(1)
			if !yield(t) {
				return
			}
		}
	}
}

// Slice returns a copy of the transitions without marking them observed.
func (o *ObservedSequence[T]) Slice() []T {
	out := make([]T, len(o.transitions))
	copy(out, o.transitions)
	return out
}

// Len returns the number of transitions.
func (o *ObservedSequence[T]) Len() int { return len(o.transitions) }

// IsEmpty reports whether the sequence has no transitions.
func (o *ObservedSequence[T]) IsEmpty() bool { return len(o.transitions) == 0 }

// String formats like the underlying slice; inspecting a sequence does not
// mark it observed.
func (o *ObservedSequence[T]) String() string {
	return fmt.Sprintf("%v", o.transitions)
}
