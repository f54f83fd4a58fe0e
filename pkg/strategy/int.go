package strategy

import (
	"fmt"

	"github.com/aretw0/grafter/pkg/runner"
)

// Int returns a strategy for integers drawn uniformly from the inclusive
// range [lo, hi]. Values shrink toward zero, clamped into the range, by
// binary search over the distance to that target.
func Int(lo, hi int64) Strategy[int64] {
	if hi < lo {
		panic(fmt.Sprintf("grafter: invalid int range [%d, %d]", lo, hi))
	}
	return intStrategy{lo: lo, hi: hi}
}

type intStrategy struct {
	lo, hi int64
}

func (s intStrategy) NewTree(tr *runner.TestRunner) (ValueTree[int64], error) {
	start := tr.SampleUniform(s.lo, s.hi)

	// Shrink target: zero when the range allows it, the nearest bound
	// otherwise.
	target := int64(0)
	if s.lo > 0 {
		target = s.lo
	} else if s.hi < 0 {
		target = s.hi
	}

	dir := int64(1)
	if start < target {
		dir = -1
	}
	mag := (start - target) * dir

	return &intTree{target: target, dir: dir, mag: mag, magHi: mag}, nil
}

// intTree binary-searches the magnitude of the distance between the current
// value and the shrink target. magLo/magHi bound the still-open search window;
// Simplify halves toward magLo, Complicate moves the floor past the last value
// known too simple and re-bisects.
type intTree struct {
	target int64
	dir    int64
	mag    int64
	magLo  int64
	magHi  int64
}

func (t *intTree) Current() int64 {
	return t.target + t.dir*t.mag
}

func (t *intTree) Simplify() bool {
	if t.magHi == t.magLo {
		return false
	}
	t.magHi = t.mag
	mid := t.magLo + (t.magHi-t.magLo)/2
	if mid == t.mag {
		return false
	}
	t.mag = mid
	return true
}

func (t *intTree) Complicate() bool {
	if t.mag == t.magHi {
		return false
	}
	t.magLo = t.mag + 1
	mid := t.magLo + (t.magHi-t.magLo)/2
	if mid == t.mag {
		return false
	}
	t.mag = mid
	return true
}
