package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/grafter"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of grafter",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("grafter version %s\n", strings.TrimSpace(grafter.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
