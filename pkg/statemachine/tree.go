package statemachine

import (
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/grafter/internal/bitset"
	"github.com/aretw0/grafter/pkg/strategy"
)

// marker is the per-slot life-cycle state. A slot leaves markerCurrent when a
// simplification or complication of its value is rejected by replay; the
// rotation search may later re-adopt its generator's current value.
type marker uint8

const (
	markerCurrent marker = iota
	markerSimplifyRejected
	markerComplicateRejected
)

// slot owns one sequence position: the transition's generator handle, the
// cached acceptable value last validated by replay, and the life-cycle marker.
type slot[T any] struct {
	tree   strategy.ValueTree[T]
	value  T
	marker marker
}

type cursorKind uint8

const (
	cursorDelete cursorKind = iota
	cursorShrink
)

// cursor is the shrink controller's position: deleting from the tail, or
// shrinking values in place from the head with wraparound.
type cursor struct {
	kind cursorKind
	ix   int
}

// SequentialTree is the value tree for a generated transition sequence.
//
// It shrinks in two phases. First it deletes transitions from the back of the
// sequence, re-validating each deletion by replaying the precondition over the
// remaining transitions from the initial state. Once deletion bottoms out (at
// the front of the list or at the minimum size), it walks the remaining
// transitions from the front, wrapping around, asking each one's generator for
// a simpler value and again re-validating by replay. Complicate undoes the
// most recently committed move.
//
// The tree has a single owner; only the observation counter shared with
// emitted Traces may be touched from another goroutine.
type SequentialTree[S, T any] struct {
	machine    Machine[S, T]
	initial    S
	slots      []slot[T]
	included   *bitset.Set
	shrinkable *bitset.Set
	minSize    int
	maxIx      int
	cur        cursor
	prev       *cursor
	seen       *atomic.Uint64
	logger     *slog.Logger
}

// Current returns the current best candidate: the initial model state plus
// the included transitions' cached acceptable values. The returned trace's
// sequence shares this tree's observation counter, which Current resets; the
// count read by the next Simplify therefore reflects only the most recently
// emitted sequence.
func (t *SequentialTree[S, T]) Current() Trace[S, T] {
	t.seen.Store(0)
	return Trace[S, T]{
		Initial:     t.initial,
		Transitions: newObservedSequence(t.seen, t.currentAt(-1)),
	}
}

// currentAt returns the included transitions in order. For the slot at
// override (if >= 0), the slot's live generator value is substituted for the
// cached one, to test a fresh value without committing it.
func (t *SequentialTree[S, T]) currentAt(override int) []T {
	out := make([]T, 0, t.included.Count())
	for ix := range t.slots {
		if !t.included.Test(ix) {
			continue
		}
		if ix == override {
			out = append(out, t.slots[ix].tree.Current())
		} else {
			out = append(out, t.slots[ix].value)
		}
	}
	return out
}

// replayAcceptable is the validity oracle: it replays precondition-check-then-
// advance over currentAt(override) from the initial state, failing at the
// first rejected step. A locally simpler value is never trusted without this
// full replay, because acceptability depends on everything before it.
func (t *SequentialTree[S, T]) replayAcceptable(override int) bool {
	state := t.initial
	for _, transition := range t.currentAt(override) {
		if !t.machine.Precondition(state, transition) {
			return false
		}
		state = t.machine.Next(state, transition)
	}
	return true
}

// allRejected reports whether every included slot's simplifications and
// complications have been rejected.
func (t *SequentialTree[S, T]) allRejected() bool {
	for ix := range t.slots {
		if t.included.Test(ix) && t.slots[ix].marker == markerCurrent {
			return false
		}
	}
	return true
}

// Simplify mutates the tree to a new, still-valid, generally smaller
// candidate and returns true, or returns false when this search branch is
// exhausted. After a true return the new candidate is available via Current.
func (t *SequentialTree[S, T]) Simplify() bool {
	if t.dropUnobserved() {
		return true
	}
	return t.simplify()
}

func (t *SequentialTree[S, T]) simplify() bool {
	if t.allRejected() {
		if t.prev != nil && t.prev.kind == cursorShrink {
			return t.rotateForAcceptable(t.prev.ix)
		}
		return false
	}
	return t.trySimplify()
}

// dropUnobserved removes the suffix of included transitions the consumer of
// the last emitted sequence never iterated. Removing a pure suffix cannot
// invalidate the prefix's replay, so no per-element re-validation is needed.
// Bounded below by minSize.
func (t *SequentialTree[S, T]) dropUnobserved() bool {
	seen := int(t.seen.Load())
	included := t.included.Count()
	if seen == 0 || seen >= included {
		return false
	}

	keep := max(seen, t.minSize)
	if keep >= included {
		return false
	}

	lastKept := -1
	ord := 0
	for ix := range t.slots {
		if !t.included.Test(ix) {
			continue
		}
		if ord >= keep {
			t.included.Clear(ix)
			t.shrinkable.Clear(ix)
		} else {
			lastKept = ix
		}
		ord++
	}

	t.logger.Debug("dropped unobserved suffix", "observed", seen, "kept", keep, "was", included)

	// A batch removal is not a single undoable move; resume the delete phase
	// at the last surviving transition.
	t.seen.Store(0)
	t.prev = nil
	t.cur = cursor{kind: cursorDelete, ix: lastKept}
	return true
}

// trySimplify applies the next move at the shrink cursor.
func (t *SequentialTree[S, T]) trySimplify() bool {
	if t.cur.kind == cursorDelete {
		ix := t.cur.ix
		if t.included.Count() == t.minSize {
			// Can't delete any more transitions, move on to shrinking.
			t.cur = cursor{kind: cursorShrink, ix: 0}
		} else if !t.included.Test(ix) {
			// Already excluded by an earlier delete. Only reachable after a
			// suffix drop moved the cursor back up the list; deleting here
			// would commit a no-op move that Complicate could not undo.
			if ix == 0 {
				t.cur = cursor{kind: cursorShrink, ix: 0}
			} else {
				t.cur = cursor{kind: cursorDelete, ix: ix - 1}
			}
			return t.trySimplify()
		} else {
			t.included.Clear(ix)
			t.prev = &cursor{kind: cursorDelete, ix: ix}
			if ix == 0 {
				// Reached the front of the list, move on to shrinking.
				t.cur = cursor{kind: cursorShrink, ix: 0}
			} else {
				t.cur = cursor{kind: cursorDelete, ix: ix - 1}
			}
			// If this delete is not acceptable, undo it and try again.
			if !t.replayAcceptable(-1) {
				t.included.Set(ix)
				t.prev = nil
				return t.trySimplify()
			}
			t.shrinkable.Clear(ix)
			t.logger.Debug("deleted transition", "ix", ix, "size", t.included.Count())
			return true
		}
	}

	for t.cur.kind == cursorShrink {
		ix := t.cur.ix
		if t.shrinkable.Count() == 0 {
			// Nothing left with shrinking headroom.
			t.logger.Debug("shrink exhausted", "size", t.included.Count())
			return false
		}

		if !t.included.Test(ix) {
			// No use shrinking something we're not including.
			t.cur = t.nextShrinkCursor(ix)
			continue
		}

		if t.slots[ix].marker == markerSimplifyRejected {
			// Already simplified and rejected.
			t.cur = t.nextShrinkCursor(ix)
		} else if t.slots[ix].tree.Simplify() {
			t.prev = &cursor{kind: cursorShrink, ix: ix}
			if t.replayAcceptable(ix) {
				t.slots[ix].value = t.slots[ix].tree.Current()
				t.slots[ix].marker = markerCurrent
				t.logger.Debug("shrank transition", "ix", ix)
				return true
			}
			// Rejected by replay; the generator state is preserved so a
			// later Complicate can still back off from here.
			t.slots[ix].marker = markerSimplifyRejected
			t.cur = t.nextShrinkCursor(ix)
			return t.simplify()
		} else {
			t.shrinkable.Clear(ix)
			t.cur = t.nextShrinkCursor(ix)
		}
	}

	panic("grafter: unexpected shrink cursor state")
}

// nextShrinkCursor advances the shrink cursor, wrapping past the last slot
// back to the front of the list.
func (t *SequentialTree[S, T]) nextShrinkCursor(ix int) cursor {
	if ix == t.maxIx {
		return cursor{kind: cursorShrink, ix: 0}
	}
	return cursor{kind: cursorShrink, ix: ix + 1}
}

// rotateForAcceptable scans the included slots starting at start, wrapping
// around, for any slot whose live generator value replays acceptably; the
// first hit is adopted as that slot's new current value. This restarts the
// search from a different acceptable point rather than guaranteeing a smaller
// candidate; validity, not monotonicity, is the contract here.
func (t *SequentialTree[S, T]) rotateForAcceptable(start int) bool {
	ix := start
	for {
		if t.included.Test(ix) && t.replayAcceptable(ix) {
			t.slots[ix].value = t.slots[ix].tree.Current()
			t.slots[ix].marker = markerCurrent
			t.logger.Debug("rotation adopted substitute", "ix", ix)
			return true
		}
		if ix == t.maxIx {
			ix = 0
		} else {
			ix++
		}
		if ix == start {
			return false
		}
	}
}

// Complicate undoes the most recently committed Simplify move, or returns
// false if there is nothing to undo. A deletion can be undone exactly once; a
// value shrink can back off repeatedly while its generator keeps producing
// acceptable less-simplified values.
func (t *SequentialTree[S, T]) Complicate() bool {
	if t.prev == nil {
		return false
	}

	switch t.prev.kind {
	case cursorDelete:
		ix := t.prev.ix
		t.included.Set(ix)
		t.shrinkable.Set(ix)
		t.prev = nil
		return true

	case cursorShrink:
		ix := t.prev.ix
		if t.slots[ix].tree.Complicate() {
			if t.replayAcceptable(ix) {
				t.slots[ix].value = t.slots[ix].tree.Current()
				t.slots[ix].marker = markerCurrent
				// Keep prev; we may be able to complicate again.
				return true
			}
			t.slots[ix].marker = markerComplicateRejected
		}
		t.prev = nil
		return false
	}

	panic("grafter: unexpected shrink cursor state")
}

// Size returns the number of currently included transitions.
func (t *SequentialTree[S, T]) Size() int { return t.included.Count() }
