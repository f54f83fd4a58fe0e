package runner_test

import (
	"errors"
	"math"
	"testing"

	"github.com/aretw0/grafter/pkg/runner"
)

func seededRunner(seed uint64, opts ...runner.Option) *runner.TestRunner {
	cfg := runner.DefaultConfig()
	cfg.Seed = seed
	return runner.New(cfg, opts...)
}

func TestSampleUniformStaysInclusive(t *testing.T) {
	tr := seededRunner(11)
	seenLo, seenHi := false, false
	for i := 0; i < 2000; i++ {
		v := tr.SampleUniform(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("sample %d outside [3, 7]", v)
		}
		seenLo = seenLo || v == 3
		seenHi = seenHi || v == 7
	}
	if !seenLo || !seenHi {
		t.Errorf("2000 samples never hit both endpoints (lo %v, hi %v)", seenLo, seenHi)
	}
}

func TestSampleUniformDegenerateRange(t *testing.T) {
	tr := seededRunner(11)
	for i := 0; i < 10; i++ {
		if v := tr.SampleUniform(42, 42); v != 42 {
			t.Fatalf("sample from [42, 42] = %d", v)
		}
	}
}

func TestSampleUniformSameSeedSameStream(t *testing.T) {
	a, b := seededRunner(99), seededRunner(99)
	for i := 0; i < 100; i++ {
		if va, vb := a.SampleUniform(-1000, 1000), b.SampleUniform(-1000, 1000); va != vb {
			t.Fatalf("draw %d diverged: %d vs %d", i, va, vb)
		}
	}
}

func TestSampleUniformHugeRanges(t *testing.T) {
	tr := seededRunner(17)
	ranges := []struct{ lo, hi int64 }{
		{math.MinInt64, math.MaxInt64},
		{math.MinInt64, 0},
		{-1, math.MaxInt64},
		{math.MinInt64 / 2, math.MaxInt64 / 2},
	}
	for _, r := range ranges {
		for i := 0; i < 100; i++ {
			if v := tr.SampleUniform(r.lo, r.hi); v < r.lo || v > r.hi {
				t.Fatalf("sample %d outside [%d, %d]", v, r.lo, r.hi)
			}
		}
	}
}

func TestSampleUniformInvertedRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on inverted range")
		}
	}()
	seededRunner(1).SampleUniform(5, 4)
}

func TestRejectLocalBudget(t *testing.T) {
	var events []runner.RejectEvent
	hooks := runner.Hooks{
		OnLocalReject: func(e runner.RejectEvent) { events = append(events, e) },
	}

	cfg := runner.DefaultConfig()
	cfg.Seed = 1
	cfg.MaxLocalRejects = 2
	tr := runner.New(cfg, runner.WithHooks(hooks))

	for i := 0; i < 2; i++ {
		if err := tr.RejectLocal("guard failed"); err != nil {
			t.Fatalf("reject %d exhausted a budget of 2: %v", i+1, err)
		}
	}
	err := tr.RejectLocal("guard failed")
	if !errors.Is(err, runner.ErrTooManyRejects) {
		t.Fatalf("expected ErrTooManyRejects, got %v", err)
	}
	if tr.Rejects() != 3 {
		t.Errorf("Rejects() = %d, want 3", tr.Rejects())
	}

	if len(events) != 3 {
		t.Fatalf("reject hook fired %d times, want 3", len(events))
	}
	if last := events[2]; last.Reason != "guard failed" || last.Total != 3 {
		t.Errorf("last event = %+v", last)
	}
}

func TestZeroSeedDerivesFreshOne(t *testing.T) {
	tr := runner.New(runner.DefaultConfig())
	if tr.Seed() == 0 {
		t.Error("effective seed is zero")
	}
}

func TestRunnerDefaultsAreUsable(t *testing.T) {
	tr := seededRunner(7)
	if tr.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	// Nil hooks must be safe to emit through.
	tr.Hooks().EmitCaseStart(runner.CaseEvent{Seed: 7, Case: 0})
	tr.Hooks().EmitMinimal(runner.MinimalEvent{})
}
