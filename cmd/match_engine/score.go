package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skillsync-engine/internal/audit"
	"github.com/jonathan/skillsync-engine/internal/cache"
	"github.com/jonathan/skillsync-engine/internal/observability"
	"github.com/jonathan/skillsync-engine/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a candidate profile against a job requirement",
	Long:  "Score a candidate profile JSON file against a job requirement JSON file. A hash-valid cached result is served without recomputation; fresh results are cached. The action is recorded in the audit ledger.",
	RunE:  runScore,
}

var (
	scoreCandidateFile string
	scoreJobFile       string
	scoreConfigFile    string
	scoreActorID       string
	scoreBlindMode     bool
	scoreForce         bool
	scoreJSONOutput    bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreCandidateFile, "candidate", "", "Path to candidate profile JSON (required)")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to job requirement JSON (required)")
	scoreCmd.Flags().StringVar(&scoreConfigFile, "config", "", "Path to config JSON file")
	scoreCmd.Flags().StringVar(&scoreActorID, "actor", "", "Actor ID for the audit record (required)")
	scoreCmd.Flags().BoolVar(&scoreBlindMode, "blind", false, "Record the action as blind-mode review")
	scoreCmd.Flags().BoolVar(&scoreForce, "force", false, "Recompute even when a valid cached result exists")
	scoreCmd.Flags().BoolVar(&scoreJSONOutput, "json", false, "Print the full result as JSON instead of a summary")
	_ = scoreCmd.MarkFlagRequired("candidate")
	_ = scoreCmd.MarkFlagRequired("job")
	_ = scoreCmd.MarkFlagRequired("actor")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig(scoreConfigFile)
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	candidate, err := loadCandidate(scoreCandidateFile)
	if err != nil {
		return err
	}
	job, err := loadJob(scoreJobFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, closeStore, err := openCacheStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	auditStore, closeAudit, err := openAuditStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAudit()

	matcher := buildMatcher(cfg, log)
	engine := buildEngine(cfg, matcher, log)
	horizon := freshnessHorizon(cfg)

	var result *types.ScoreResult
	fromCache := false
	stale := false

	if !scoreForce {
		entry, err := store.Get(ctx, candidate.ID, job.ID)
		if err == nil && cache.Decide(candidate, job, entry.ContentHash) == cache.DecisionCached && entry.Result != nil {
			result = entry.Result
			fromCache = true
			stale = cache.IsStaleForDisplay(entry.ComputedAt, time.Now(), horizon)
		} else if err != nil && !errors.Is(err, cache.ErrNotFound) {
			log.Warn("cache lookup failed, recomputing", zap.Error(err))
		}
	}

	if result == nil {
		result, err = engine.Score(candidate, job)
		if err != nil {
			return fmt.Errorf("failed to score: %w", err)
		}
		entry := &types.CacheEntry{
			ID:          uuid.NewString(),
			CandidateID: candidate.ID,
			JobID:       job.ID,
			ContentHash: cache.PairContentHash(candidate, job),
			ComputedAt:  result.ComputedAt,
			Result:      result,
		}
		if err := store.Put(ctx, entry); err != nil {
			log.Warn("failed to cache score result", zap.Error(err))
		}
	}

	ledger := audit.NewLedger(auditStore, log)
	record, err := ledger.Record(ctx, scoreActorID, types.ActionExplain,
		[]string{candidate.ID}, map[string]string{"job_id": job.ID}, scoreBlindMode)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	if scoreJSONOutput {
		return printJSON(result)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintScoreResult(result)
	if fromCache {
		freshness := "fresh"
		if stale {
			freshness = "stale"
		}
		_, _ = fmt.Fprintf(os.Stdout, "Served from cache (%s)\n", freshness)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Audit record: %s\n", record.AuditID)
	return nil
}
