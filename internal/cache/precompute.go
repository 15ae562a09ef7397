package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// DefaultWorkers is the precompute concurrency when none is configured.
const DefaultWorkers = 4

// defaultTopN bounds how many candidates a run scores when the caller does
// not say.
const defaultTopN = 50

// Scorer computes a score result for one candidate-job pair.
type Scorer interface {
	Score(candidate *types.CandidateProfile, job *types.JobRequirement) (*types.ScoreResult, error)
}

// Precomputer warms the score cache for a job's top-ranked candidates.
type Precomputer struct {
	store   Store
	scorer  Scorer
	log     *zap.Logger
	workers int
	horizon time.Duration
}

// NewPrecomputer creates a precomputer with the default worker count and
// freshness horizon.
func NewPrecomputer(store Store, scorer Scorer, log *zap.Logger) *Precomputer {
	return &Precomputer{
		store:   store,
		scorer:  scorer,
		log:     log,
		workers: DefaultWorkers,
		horizon: DefaultHorizon,
	}
}

// SetWorkers overrides the concurrency. Values below 1 are ignored.
func (p *Precomputer) SetWorkers(n int) {
	if n >= 1 {
		p.workers = n
	}
}

// SetHorizon overrides the freshness horizon. Non-positive values are
// ignored.
func (p *Precomputer) SetHorizon(d time.Duration) {
	if d > 0 {
		p.horizon = d
	}
}

// Run scores the topN candidates (by base similarity, descending) against
// the job and stores the results. Pairs whose cached entry is hash-valid and
// fresh are skipped unless force is set. A failing candidate is recorded and
// the run continues; only context cancellation stops the batch early.
func (p *Precomputer) Run(ctx context.Context, job *types.JobRequirement, candidates []types.RankedCandidate, topN int, force bool) (*types.PrecomputeReport, error) {
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}
	if topN <= 0 {
		topN = defaultTopN
	}

	ranked := make([]types.RankedCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BaseSimilarity > ranked[j].BaseSimilarity
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	started := time.Now()
	report := &types.PrecomputeReport{
		JobID:     job.ID,
		Requested: len(ranked),
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.workers)

	for _, rc := range ranked {
		if err := groupCtx.Err(); err != nil {
			break
		}
		rc := rc
		group.Go(func() error {
			outcome, err := p.processPair(groupCtx, rc.Candidate, job, force)
			mu.Lock()
			defer mu.Unlock()
			report.Processed++
			switch {
			case err != nil:
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				report.Errors++
				report.ErrorDetails = append(report.ErrorDetails,
					fmt.Sprintf("%s: %v", rc.Candidate.ID, err))
				p.log.Warn("precompute failed for candidate",
					zap.String("candidate_id", rc.Candidate.ID),
					zap.String("job_id", job.ID),
					zap.Error(err))
			case outcome == outcomeCached:
				report.Cached++
			default:
				report.New++
			}
			return nil
		})
	}

	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	report.Duration = time.Since(started)

	p.log.Info("precompute run finished",
		zap.String("job_id", job.ID),
		zap.Int("requested", report.Requested),
		zap.Int("cached", report.Cached),
		zap.Int("new", report.New),
		zap.Int("errors", report.Errors),
		zap.Duration("duration", report.Duration))

	if err != nil {
		return report, fmt.Errorf("precompute interrupted: %w", err)
	}
	return report, nil
}

type pairOutcome int

const (
	outcomeCached pairOutcome = iota
	outcomeComputed
)

// processPair scores one candidate unless a hash-valid fresh entry already
// exists.
func (p *Precomputer) processPair(ctx context.Context, candidate *types.CandidateProfile, job *types.JobRequirement, force bool) (pairOutcome, error) {
	if candidate == nil {
		return outcomeComputed, fmt.Errorf("candidate is required")
	}

	if !force {
		entry, err := p.store.Get(ctx, candidate.ID, job.ID)
		if err == nil &&
			Decide(candidate, job, entry.ContentHash) == DecisionCached &&
			!IsStaleForDisplay(entry.ComputedAt, time.Now(), p.horizon) {
			return outcomeCached, nil
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return outcomeComputed, fmt.Errorf("failed to check cache: %w", err)
		}
	}

	result, err := p.scorer.Score(candidate, job)
	if err != nil {
		return outcomeComputed, fmt.Errorf("failed to score: %w", err)
	}

	entry := &types.CacheEntry{
		ID:          uuid.NewString(),
		CandidateID: candidate.ID,
		JobID:       job.ID,
		ContentHash: PairContentHash(candidate, job),
		ComputedAt:  time.Now().UTC(),
		Result:      result,
	}
	if err := p.store.Put(ctx, entry); err != nil {
		return outcomeComputed, fmt.Errorf("failed to store result: %w", err)
	}
	return outcomeComputed, nil
}

// Status reports cache coverage and freshness for a job against the total
// candidate pool size.
func (p *Precomputer) Status(ctx context.Context, jobID string, totalMatches int) (*types.PrecomputeStatus, error) {
	entries, err := p.store.ListForJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}

	now := time.Now()
	status := &types.PrecomputeStatus{
		JobID:        jobID,
		TotalMatches: totalMatches,
		Precomputed:  len(entries),
	}
	for _, entry := range entries {
		if IsStaleForDisplay(entry.ComputedAt, now, p.horizon) {
			status.Stale++
		} else {
			status.Fresh++
		}
	}
	if totalMatches > 0 {
		status.CoveragePercent = float64(len(entries)) / float64(totalMatches) * 100
	}
	status.NeedsRefresh = status.Stale > 0 || status.Precomputed < totalMatches
	return status, nil
}
