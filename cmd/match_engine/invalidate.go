package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var invalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Delete cached score results for a job or candidate",
	Long:  "Delete cached score results. With --job-id, all entries for the job are removed; with --candidate-id, all entries for the candidate. Deleted pairs are recomputed on next access.",
	RunE:  runInvalidate,
}

var (
	invalidateJobID       string
	invalidateCandidateID string
	invalidateConfigFile  string
)

func init() {
	invalidateCmd.Flags().StringVar(&invalidateJobID, "job-id", "", "Invalidate all cache entries for this job")
	invalidateCmd.Flags().StringVar(&invalidateCandidateID, "candidate-id", "", "Invalidate all cache entries for this candidate")
	invalidateCmd.Flags().StringVar(&invalidateConfigFile, "config", "", "Path to config JSON file")

	rootCmd.AddCommand(invalidateCmd)
}

func runInvalidate(_ *cobra.Command, _ []string) error {
	if invalidateJobID == "" && invalidateCandidateID == "" {
		return fmt.Errorf("must provide --job-id or --candidate-id")
	}

	cfg, err := loadEngineConfig(invalidateConfigFile)
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	store, closeStore, err := openCacheStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	total := 0
	if invalidateJobID != "" {
		deleted, err := store.DeleteForJob(ctx, invalidateJobID)
		if err != nil {
			return fmt.Errorf("failed to invalidate job cache: %w", err)
		}
		total += deleted
	}
	if invalidateCandidateID != "" {
		deleted, err := store.DeleteForCandidate(ctx, invalidateCandidateID)
		if err != nil {
			return fmt.Errorf("failed to invalidate candidate cache: %w", err)
		}
		total += deleted
	}

	_, _ = fmt.Fprintf(os.Stdout, "Invalidated %d cache entries\n", total)
	return nil
}
