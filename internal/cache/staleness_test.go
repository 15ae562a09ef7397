package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillsync-engine/internal/types"
)

func TestDecide_CachedWhenHashMatches(t *testing.T) {
	candidate := &types.CandidateProfile{ID: "c1", ParsedText: "Go engineer"}
	job := &types.JobRequirement{ID: "j1", Title: "Backend", Description: "Build services"}

	stored := PairContentHash(candidate, job)

	assert.Equal(t, DecisionCached, Decide(candidate, job, stored))
}

func TestDecide_RecomputeOnContentChange(t *testing.T) {
	candidate := &types.CandidateProfile{ID: "c1", ParsedText: "Go engineer"}
	job := &types.JobRequirement{ID: "j1", Title: "Backend", Description: "Build services"}
	stored := PairContentHash(candidate, job)

	candidate.ParsedText = "Go engineer, now with Rust"

	assert.Equal(t, DecisionRecompute, Decide(candidate, job, stored))
}

func TestDecide_RecomputeWithNoStoredHash(t *testing.T) {
	candidate := &types.CandidateProfile{ID: "c1", ParsedText: "text"}
	job := &types.JobRequirement{ID: "j1", Title: "Backend"}

	assert.Equal(t, DecisionRecompute, Decide(candidate, job, ""))
}

func TestDecide_CannotComputeWithoutContent(t *testing.T) {
	assert.Equal(t, DecisionCannotCompute, Decide(nil, &types.JobRequirement{}, "abc"))
	assert.Equal(t, DecisionCannotCompute, Decide(&types.CandidateProfile{}, nil, "abc"))
	assert.Equal(t, DecisionCannotCompute,
		Decide(&types.CandidateProfile{}, &types.JobRequirement{}, "abc"))
}

func TestDecide_CannotComputeWhenOneSideIsEmpty(t *testing.T) {
	candidate := &types.CandidateProfile{ID: "c1", ParsedText: "Go engineer"}
	job := &types.JobRequirement{ID: "j1", Title: "Backend", Description: "Build services"}

	emptyCandidate := &types.CandidateProfile{ID: "c2"}
	assert.Equal(t, DecisionCannotCompute, Decide(emptyCandidate, job, ""))
	// A stored hash never promotes an unjudgeable pair to cached.
	assert.Equal(t, DecisionCannotCompute,
		Decide(emptyCandidate, job, PairContentHash(emptyCandidate, job)))

	emptyJob := &types.JobRequirement{ID: "j2"}
	assert.Equal(t, DecisionCannotCompute, Decide(candidate, emptyJob, ""))
}

func TestIsStaleForDisplay(t *testing.T) {
	now := time.Now()

	assert.False(t, IsStaleForDisplay(now.Add(-1*time.Hour), now, 24*time.Hour))
	assert.True(t, IsStaleForDisplay(now.Add(-25*time.Hour), now, 24*time.Hour))
	// Non-positive horizon falls back to the 24h default.
	assert.False(t, IsStaleForDisplay(now.Add(-23*time.Hour), now, 0))
	assert.True(t, IsStaleForDisplay(now.Add(-25*time.Hour), now, 0))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "cached", DecisionCached.String())
	assert.Equal(t, "recompute", DecisionRecompute.String())
	assert.Equal(t, "cannot_compute", DecisionCannotCompute.String())
}
