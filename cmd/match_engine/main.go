// Package main provides the entry point for the matching engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_engine",
	Short: "Candidate-job matching and explainability engine",
	Long:  "match_engine scores candidate profiles against job requirements across semantic, skill, experience, education, and project dimensions, with explainable per-skill evidence, a precompute cache, and an append-only audit ledger.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
