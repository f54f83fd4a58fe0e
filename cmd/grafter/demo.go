package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/aretw0/grafter"
	"github.com/aretw0/grafter/internal/presentation/tui"
	"github.com/aretw0/grafter/pkg/runner"
	"github.com/aretw0/grafter/pkg/statemachine"
	"github.com/aretw0/grafter/pkg/strategy"
)

const demoExplainer = `# Buggy heap demo

The model is the multiset of values held by a binary **max-heap**. Transitions
are ` + "`push(v)`" + ` and ` + "`pop`" + `; popping requires a non-empty heap.

The system under test removes the root by moving the last array element into
its place *without sifting it down*, so after a pop the root may no longer be
the maximum. Grafter generates random operation sequences, finds one that
violates the root invariant, and shrinks it to a minimal reproduction.
`

// demoOp is a transition of the demo model.
type demoOp struct {
	pop   bool
	value int64
}

func (op demoOp) String() string {
	if op.pop {
		return "pop"
	}
	return fmt.Sprintf("push(%d)", op.value)
}

// demoHeap is the deliberately broken system under test.
type demoHeap struct {
	items []int64
}

func (h demoHeap) push(v int64) demoHeap {
	items := append(slices.Clone(h.items), v)
	i := len(items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if items[parent] >= items[i] {
			break
		}
		items[parent], items[i] = items[i], items[parent]
		i = parent
	}
	return demoHeap{items: items}
}

func (h demoHeap) popWrong() demoHeap {
	items := slices.Clone(h.items)
	last := len(items) - 1
	items[0] = items[last]
	return demoHeap{items: items[:last]}
}

type demoHeapTest struct{}

func (demoHeapTest) InitialState() strategy.Strategy[[]int64] {
	return strategy.Just([]int64(nil))
}

func (demoHeapTest) Transitions(state []int64) strategy.Strategy[demoOp] {
	return strategy.OneOf(
		strategy.Weighted(3, strategy.Map(strategy.Int(0, 100), func(v int64) demoOp {
			return demoOp{value: v}
		})),
		strategy.Weighted(1, strategy.Just(demoOp{pop: true})),
	)
}

func (demoHeapTest) Precondition(state []int64, op demoOp) bool {
	return !op.pop || len(state) > 0
}

func (demoHeapTest) Next(state []int64, op demoOp) []int64 {
	if op.pop {
		next := slices.Clone(state)
		ix := slices.Index(next, slices.Max(next))
		return slices.Delete(next, ix, ix+1)
	}
	return append(slices.Clone(state), op.value)
}

func (demoHeapTest) InitSystem(initial []int64) demoHeap { return demoHeap{} }

func (demoHeapTest) ApplySystem(h demoHeap, state []int64, op demoOp) demoHeap {
	if op.pop {
		return h.popWrong()
	}
	return h.push(op.value)
}

func (demoHeapTest) CheckSystem(h demoHeap, state []int64) error {
	if len(h.items) != len(state) {
		return fmt.Errorf("heap holds %d elements, model expects %d", len(h.items), len(state))
	}
	if len(state) > 0 && h.items[0] != slices.Max(state) {
		return fmt.Errorf("heap root is %d, model maximum is %d", h.items[0], slices.Max(state))
	}
	return nil
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Falsify a buggy binary heap and shrink the counterexample",
	Long:  `Runs the bundled buggy-heap property: generates random push/pop sequences, finds one that breaks the heap's root invariant, and minimizes it.`,
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner()

		render := tui.NewRenderer()
		if out, err := render(demoExplainer); err == nil {
			fmt.Print(out)
		}

		opts, err := optionsFromFlags(cmd)
		if err != nil {
			fmt.Println(tui.Fail(err.Error()))
			os.Exit(1)
		}

		steps := 0
		opts = append(opts, grafter.WithHooks(runner.Hooks{
			OnCaseFail: func(e runner.CaseEvent) {
				fmt.Printf("%s case %d (seed %d)\n", tui.Fail("FALSIFIED"), e.Case, e.Seed)
			},
			OnShrinkStep: func(e runner.ShrinkEvent) {
				steps++
				if e.StillFailing {
					fmt.Printf("  shrink %-4d %-10s %s\n", steps, e.Kind, tui.Accent("still failing"))
				}
			},
			OnMinimal: func(e runner.MinimalEvent) {
				fmt.Printf("  minimal after %d accepted shrinks: %d transitions\n", e.Shrinks, e.Size)
			},
		}))

		err = grafter.CheckSequential[[]int64, demoOp, demoHeap](demoHeapTest{}, 1, 30, opts...)
		if err == nil {
			fmt.Println(tui.Pass("no counterexample found (unexpected for this demo)"))
			return
		}

		var cex *statemachine.CounterexampleError[[]int64, demoOp]
		if !errors.As(err, &cex) {
			fmt.Println(tui.Fail(err.Error()))
			os.Exit(1)
		}

		fmt.Println()
		fmt.Printf("%s %v\n", tui.Fail("minimal counterexample:"), cex.Transitions)
		fmt.Printf("cause: %v\n", cex.Err)
		fmt.Printf("reproduce with %s\n", tui.Accent(fmt.Sprintf("--seed %d", cex.Seed)))
	},
}

// optionsFromFlags layers the persistent flags over an optional config file.
func optionsFromFlags(cmd *cobra.Command) ([]grafter.Option, error) {
	cfg := runner.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := runner.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	opts := []grafter.Option{grafter.WithConfig(cfg)}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts = append(opts, grafter.WithSeed(seed))
	}
	if cases, _ := cmd.Flags().GetInt("cases"); cases > 0 {
		opts = append(opts, grafter.WithCases(cases))
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts = append(opts, grafter.WithVerbose())
	}
	return opts, nil
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
