package cache

import (
	"strings"
	"time"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// Decision says what to do with a cached score for a pair.
type Decision int

const (
	// DecisionCannotCompute means the pair lacks the content needed to hash,
	// so validity cannot be judged at all.
	DecisionCannotCompute Decision = iota
	// DecisionRecompute means no valid cached result exists for the current
	// content and the score must be computed.
	DecisionRecompute
	// DecisionCached means the stored result matches the current content and
	// can be served as-is.
	DecisionCached
)

// String returns the decision name for logs.
func (d Decision) String() string {
	switch d {
	case DecisionCannotCompute:
		return "cannot_compute"
	case DecisionRecompute:
		return "recompute"
	case DecisionCached:
		return "cached"
	default:
		return "unknown"
	}
}

// DefaultHorizon is how old a cached result may be before it is flagged as
// stale for display purposes.
const DefaultHorizon = 24 * time.Hour

// Decide compares the current pair content against the stored hash. Hash
// equality is the only validity criterion; age alone never invalidates.
// Either side lacking content makes the pair unjudgeable: a hash over one
// side alone would validate entries whose other half was never seen.
func Decide(candidate *types.CandidateProfile, job *types.JobRequirement, storedHash string) Decision {
	if candidate == nil || job == nil {
		return DecisionCannotCompute
	}
	if CandidateContent(candidate) == "" || strings.TrimSpace(JobContent(job)) == "" {
		return DecisionCannotCompute
	}
	if storedHash == "" || storedHash != PairContentHash(candidate, job) {
		return DecisionRecompute
	}
	return DecisionCached
}

// IsStaleForDisplay reports whether a result computed at the given time has
// aged past the horizon. A stale result is still served; callers surface the
// flag so consumers can decide whether to refresh.
func IsStaleForDisplay(computedAt, now time.Time, horizon time.Duration) bool {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return now.Sub(computedAt) > horizon
}
