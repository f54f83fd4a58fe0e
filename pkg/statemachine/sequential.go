package statemachine

import (
	"fmt"
	"sync/atomic"

	"github.com/aretw0/grafter/internal/bitset"
	"github.com/aretw0/grafter/pkg/runner"
	"github.com/aretw0/grafter/pkg/strategy"
)

// Sequential is the strategy for precondition-satisfying transition
// sequences over a Machine. Sequence length is sampled uniformly from the
// inclusive range [minSize, maxSize] fixed at construction.
type Sequential[S, T any] struct {
	machine Machine[S, T]
	minSize int
	maxSize int
}

// NewSequential builds a Sequential strategy. The size range is inclusive on
// both ends and must satisfy 1 <= minSize <= maxSize.
func NewSequential[S, T any](machine Machine[S, T], minSize, maxSize int) *Sequential[S, T] {
	if minSize < 1 || maxSize < minSize {
		panic(fmt.Sprintf("grafter: invalid sequence size range [%d, %d]", minSize, maxSize))
	}
	return &Sequential[S, T]{machine: machine, minSize: minSize, maxSize: maxSize}
}

// NewTree samples a target length, generates that many precondition-accepted
// transitions by advancing the model state through each, and returns a fully
// included, fully shrinkable tree. Transitions rejected by the precondition
// are signaled to the runner as local rejections and resampled from the same
// state; only budget exhaustion fails generation.
func (s *Sequential[S, T]) NewTree(tr *runner.TestRunner) (*SequentialTree[S, T], error) {
	stateTree, err := s.machine.InitialState().NewTree(tr)
	if err != nil {
		return nil, fmt.Errorf("generating initial state: %w", err)
	}

	n := int(tr.SampleUniform(int64(s.minSize), int64(s.maxSize)))
	state := stateTree.Current()
	initial := state

	slots := make([]slot[T], 0, n)
	for len(slots) < n {
		transitionTree, err := s.machine.Transitions(state).NewTree(tr)
		if err != nil {
			return nil, fmt.Errorf("generating transition %d: %w", len(slots), err)
		}
		candidate := transitionTree.Current()
		if !s.machine.Precondition(state, candidate) {
			if err := tr.RejectLocal("transition precondition not satisfied"); err != nil {
				return nil, err
			}
			continue
		}
		slots = append(slots, slot[T]{tree: transitionTree, value: candidate})
		state = s.machine.Next(state, candidate)
	}

	tr.Logger().Debug("generated transition sequence", "size", n, "rejects", tr.Rejects())

	return &SequentialTree[S, T]{
		machine:    s.machine,
		initial:    initial,
		slots:      slots,
		included:   bitset.Saturated(n),
		shrinkable: bitset.Saturated(n),
		minSize:    s.minSize,
		maxIx:      n - 1,
		cur:        cursor{kind: cursorDelete, ix: n - 1},
		seen:       new(atomic.Uint64),
		logger:     tr.Logger(),
	}, nil
}

// Tree adapts NewTree to the strategy.Strategy interface, which cannot return
// the concrete tree type.
func (s *Sequential[S, T]) Tree() strategy.Strategy[Trace[S, T]] {
	return sequentialStrategy[S, T]{s}
}

type sequentialStrategy[S, T any] struct {
	seq *Sequential[S, T]
}

func (s sequentialStrategy[S, T]) NewTree(tr *runner.TestRunner) (strategy.ValueTree[Trace[S, T]], error) {
	return s.seq.NewTree(tr)
}
