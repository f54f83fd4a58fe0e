package strategy

import (
	"fmt"

	"github.com/aretw0/grafter/pkg/runner"
)

// Just returns a strategy that always yields v and never shrinks.
func Just[V any](v V) Strategy[V] {
	return justStrategy[V]{value: v}
}

type justStrategy[V any] struct {
	value V
}

func (s justStrategy[V]) NewTree(tr *runner.TestRunner) (ValueTree[V], error) {
	return justTree[V](s), nil
}

type justTree[V any] struct {
	value V
}

func (t justTree[V]) Current() V       { return t.value }
func (t justTree[V]) Simplify() bool   { return false }
func (t justTree[V]) Complicate() bool { return false }

// Map transforms the values produced by s with fn. Shrinking happens in the
// source domain; fn is re-applied to each candidate.
func Map[A, B any](s Strategy[A], fn func(A) B) Strategy[B] {
	return mapStrategy[A, B]{source: s, fn: fn}
}

type mapStrategy[A, B any] struct {
	source Strategy[A]
	fn     func(A) B
}

func (s mapStrategy[A, B]) NewTree(tr *runner.TestRunner) (ValueTree[B], error) {
	inner, err := s.source.NewTree(tr)
	if err != nil {
		return nil, err
	}
	return &mapTree[A, B]{inner: inner, fn: s.fn}, nil
}

type mapTree[A, B any] struct {
	inner ValueTree[A]
	fn    func(A) B
}

func (t *mapTree[A, B]) Current() B       { return t.fn(t.inner.Current()) }
func (t *mapTree[A, B]) Simplify() bool   { return t.inner.Simplify() }
func (t *mapTree[A, B]) Complicate() bool { return t.inner.Complicate() }

// Choice pairs a strategy with a selection weight for OneOf.
type Choice[V any] struct {
	Weight   int
	Strategy Strategy[V]
}

// Weighted is shorthand for constructing a Choice.
func Weighted[V any](weight int, s Strategy[V]) Choice[V] {
	return Choice[V]{Weight: weight, Strategy: s}
}

// OneOf picks one of the given choices with probability proportional to its
// weight, then delegates generation and shrinking to the chosen strategy.
func OneOf[V any](choices ...Choice[V]) Strategy[V] {
	if len(choices) == 0 {
		panic("grafter: OneOf requires at least one choice")
	}
	total := 0
	for _, c := range choices {
		if c.Weight <= 0 {
			panic(fmt.Sprintf("grafter: OneOf choice weight must be positive, got %d", c.Weight))
		}
		total += c.Weight
	}
	return oneOfStrategy[V]{choices: choices, total: total}
}

type oneOfStrategy[V any] struct {
	choices []Choice[V]
	total   int
}

func (s oneOfStrategy[V]) NewTree(tr *runner.TestRunner) (ValueTree[V], error) {
	pick := tr.SampleUniform(0, int64(s.total)-1)
	for _, c := range s.choices {
		pick -= int64(c.Weight)
		if pick < 0 {
			return c.Strategy.NewTree(tr)
		}
	}
	panic("grafter: OneOf selection out of range")
}
