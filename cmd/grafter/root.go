package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grafter",
	Short: "Grafter is a stateful property testing engine",
	Long:  `Grafter generates random transition sequences against a state machine model and shrinks failing sequences to a minimal counterexample.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Uint64("seed", 0, "PRNG seed (0 derives a fresh one)")
	rootCmd.PersistentFlags().Int("cases", 0, "Number of generated cases (0 keeps the configured value)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug tracing of the search")
}
