package strategy_test

import (
	"testing"

	"github.com/aretw0/grafter/pkg/runner"
	"github.com/aretw0/grafter/pkg/strategy"
)

func newRunner(seed uint64) *runner.TestRunner {
	cfg := runner.DefaultConfig()
	cfg.Seed = seed
	return runner.New(cfg)
}

func shrinkTarget(lo, hi int64) int64 {
	switch {
	case lo > 0:
		return lo
	case hi < 0:
		return hi
	default:
		return 0
	}
}

func TestIntExhaustiveSimplifyReachesTarget(t *testing.T) {
	ranges := []struct{ lo, hi int64 }{
		{0, 100},
		{-50, 50},
		{10, 200},
		{-200, -10},
		{7, 7},
	}
	for _, r := range ranges {
		for seed := uint64(1); seed <= 10; seed++ {
			tree, err := strategy.Int(r.lo, r.hi).NewTree(newRunner(seed))
			if err != nil {
				t.Fatalf("NewTree failed: %v", err)
			}
			start := tree.Current()
			if start < r.lo || start > r.hi {
				t.Fatalf("[%d, %d] seed %d: start %d out of range", r.lo, r.hi, seed, start)
			}

			steps := 0
			for tree.Simplify() {
				steps++
				if steps > 200 {
					t.Fatal("simplify did not terminate")
				}
				if v := tree.Current(); v < r.lo || v > r.hi {
					t.Fatalf("[%d, %d]: simplified value %d escaped the range", r.lo, r.hi, v)
				}
			}

			if got, want := tree.Current(), shrinkTarget(r.lo, r.hi); got != want {
				t.Errorf("[%d, %d] seed %d: exhaustive simplify ended at %d, want %d",
					r.lo, r.hi, seed, got, want)
			}
		}
	}
}

func TestIntSimplifyMovesTowardTarget(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		tree, err := strategy.Int(0, 1000).NewTree(newRunner(seed))
		if err != nil {
			t.Fatalf("NewTree failed: %v", err)
		}
		prev := tree.Current()
		for tree.Simplify() {
			cur := tree.Current()
			if cur >= prev {
				t.Fatalf("seed %d: simplify moved %d -> %d, away from 0", seed, prev, cur)
			}
			prev = cur
		}
	}
}

func TestIntComplicateBacksOff(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		tree, err := strategy.Int(0, 1000).NewTree(newRunner(seed))
		if err != nil {
			t.Fatalf("NewTree failed: %v", err)
		}
		start := tree.Current()
		if !tree.Simplify() {
			if start != 0 {
				t.Fatalf("seed %d: simplify refused at %d", seed, start)
			}
			continue
		}
		simplified := tree.Current()

		if tree.Complicate() {
			v := tree.Current()
			if v <= simplified || v > start {
				t.Errorf("seed %d: complicate moved to %d, want within (%d, %d]",
					seed, v, simplified, start)
			}
		}
	}
}

func TestIntComplicateBeforeSimplifyRefuses(t *testing.T) {
	tree, err := strategy.Int(0, 100).NewTree(newRunner(3))
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}
	if tree.Complicate() {
		t.Error("Complicate succeeded with no simplification to undo")
	}
}

func TestIntInvalidRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on inverted range")
		}
	}()
	strategy.Int(5, 4)
}
