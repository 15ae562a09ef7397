package types

import "time"

// CacheEntry stores one computed ScoreResult keyed by (candidate, job).
// An entry is valid only while the content hash of the current inputs
// matches ContentHash; age alone never invalidates correctness.
type CacheEntry struct {
	ID          string       `json:"id"`
	CandidateID string       `json:"candidate_id"`
	JobID       string       `json:"job_id"`
	ContentHash string       `json:"content_hash"`
	ComputedAt  time.Time    `json:"computed_at"`
	Result      *ScoreResult `json:"result,omitempty"`
}

// RankedCandidate pairs a candidate with its precomputed base similarity,
// used to order batch precomputation.
type RankedCandidate struct {
	Candidate      *CandidateProfile `json:"candidate"`
	BaseSimilarity float64           `json:"base_similarity"`
}

// PrecomputeReport summarizes one batch precomputation run. Processed
// counts every attempted pair, failures included, so it equals
// Cached + New + Errors; Requested minus Processed is the work a
// cancellation cut off.
type PrecomputeReport struct {
	JobID        string        `json:"job_id"`
	Requested    int           `json:"requested_count"`
	Processed    int           `json:"processed"`
	Cached       int           `json:"cached"`
	New          int           `json:"new"`
	Errors       int           `json:"errors"`
	ErrorDetails []string      `json:"error_details,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// PrecomputeStatus reports cache coverage and freshness for a job.
type PrecomputeStatus struct {
	JobID           string  `json:"job_id"`
	TotalMatches    int     `json:"total_matches"`
	Precomputed     int     `json:"precomputed_count"`
	Fresh           int     `json:"fresh_count"`
	Stale           int     `json:"stale_count"`
	CoveragePercent float64 `json:"coverage_percent"`
	NeedsRefresh    bool    `json:"needs_refresh"`
}
