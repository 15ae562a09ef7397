package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillsync-engine/internal/audit"
	"github.com/jonathan/skillsync-engine/internal/cache"
	"github.com/jonathan/skillsync-engine/internal/observability"
	"github.com/jonathan/skillsync-engine/internal/types"
)

var precomputeCmd = &cobra.Command{
	Use:   "precompute",
	Short: "Precompute scores for a job's top-ranked candidates",
	Long:  "Precompute and cache score results for the top N candidates of a job, ordered by base similarity. Pairs with hash-valid fresh cache entries are skipped unless --force is set. With --status, report cache coverage instead of running.",
	RunE:  runPrecompute,
}

var (
	precomputeJobFile        string
	precomputeCandidatesFile string
	precomputeConfigFile     string
	precomputeActorID        string
	precomputeTopN           int
	precomputeForce          bool
	precomputeStatusOnly     bool
	precomputeJSONOutput     bool
)

func init() {
	precomputeCmd.Flags().StringVar(&precomputeJobFile, "job", "", "Path to job requirement JSON (required)")
	precomputeCmd.Flags().StringVar(&precomputeCandidatesFile, "candidates", "", "Path to ranked candidates JSON (required unless --status)")
	precomputeCmd.Flags().StringVar(&precomputeConfigFile, "config", "", "Path to config JSON file")
	precomputeCmd.Flags().StringVar(&precomputeActorID, "actor", "", "Actor ID for the audit record (required unless --status)")
	precomputeCmd.Flags().IntVar(&precomputeTopN, "top", 0, "How many top candidates to precompute (default 50)")
	precomputeCmd.Flags().BoolVar(&precomputeForce, "force", false, "Recompute pairs even when cached results are valid and fresh")
	precomputeCmd.Flags().BoolVar(&precomputeStatusOnly, "status", false, "Report cache coverage for the job instead of precomputing")
	precomputeCmd.Flags().BoolVar(&precomputeJSONOutput, "json", false, "Print the report as JSON instead of a summary")
	_ = precomputeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(precomputeCmd)
}

func runPrecompute(_ *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig(precomputeConfigFile)
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	job, err := loadJob(precomputeJobFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, closeStore, err := openCacheStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	matcher := buildMatcher(cfg, log)
	engine := buildEngine(cfg, matcher, log)

	precomputer := cache.NewPrecomputer(store, engine, log)
	precomputer.SetHorizon(freshnessHorizon(cfg))
	if cfg.Workers > 0 {
		precomputer.SetWorkers(cfg.Workers)
	}

	if precomputeStatusOnly {
		totalMatches := 0
		if precomputeCandidatesFile != "" {
			candidates, err := loadRankedCandidates(precomputeCandidatesFile)
			if err != nil {
				return err
			}
			totalMatches = len(candidates)
		}
		status, err := precomputer.Status(ctx, job.ID, totalMatches)
		if err != nil {
			return err
		}
		if precomputeJSONOutput {
			return printJSON(status)
		}
		observability.NewPrinter(os.Stdout).PrintPrecomputeStatus(status)
		return nil
	}

	if precomputeCandidatesFile == "" {
		return fmt.Errorf("--candidates is required (or use --status)")
	}
	if precomputeActorID == "" {
		return fmt.Errorf("--actor is required (or use --status)")
	}

	candidates, err := loadRankedCandidates(precomputeCandidatesFile)
	if err != nil {
		return err
	}

	report, err := precomputer.Run(ctx, job, candidates, precomputeTopN, precomputeForce)
	if err != nil {
		return err
	}

	auditStore, closeAudit, err := openAuditStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAudit()

	subjectIDs := make([]string, 0, len(candidates))
	for _, rc := range candidates {
		if rc.Candidate != nil {
			subjectIDs = append(subjectIDs, rc.Candidate.ID)
		}
	}
	ledger := audit.NewLedger(auditStore, log)
	record, err := ledger.Record(ctx, precomputeActorID, types.ActionRank,
		subjectIDs, map[string]string{"job_id": job.ID}, false)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	if precomputeJSONOutput {
		return printJSON(report)
	}
	observability.NewPrinter(os.Stdout).PrintPrecomputeReport(report)
	_, _ = fmt.Fprintf(os.Stdout, "Audit record: %s\n", record.AuditID)
	return nil
}
