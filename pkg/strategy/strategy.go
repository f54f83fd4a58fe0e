// Package strategy defines the value-generation contract consumed by the
// sequence engine: a Strategy produces a ValueTree from a randomness source,
// and a ValueTree walks between simpler and more complex renditions of one
// generated value. The package also ships the small combinator set the engine,
// examples and tests build on: Just, Map, weighted OneOf and Int.
package strategy

import "github.com/aretw0/grafter/pkg/runner"

// ValueTree is a handle over one generated value that can be navigated toward
// simpler (Simplify) or back toward more complex (Complicate) renditions.
//
// Current never fails. Simplify and Complicate return false when no further
// move is possible in that direction; false is a terminal signal, not an
// error. A ValueTree has a single owner and is not safe for concurrent use.
type ValueTree[V any] interface {
	Current() V
	Simplify() bool
	Complicate() bool
}

// Strategy produces value trees from a randomness source.
type Strategy[V any] interface {
	NewTree(tr *runner.TestRunner) (ValueTree[V], error)
}
