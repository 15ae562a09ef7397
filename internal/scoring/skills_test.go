package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsync-engine/internal/types"
)

func TestSkillsScore_HalfRequiredMatch(t *testing.T) {
	score, matched, missing := SkillsScore(
		[]string{"Python", "React"},
		[]string{"Python", "Java"},
		nil, nil)

	// One of two equal-weight required skills matches.
	assert.InDelta(t, 50.0, score, 0.01)

	require.Len(t, matched, 1)
	assert.Equal(t, "Python", matched[0].Skill)
	assert.Equal(t, types.MatchExact, matched[0].MatchType)

	require.Len(t, missing, 1)
	assert.Equal(t, "Java", missing[0].Skill)
	assert.Equal(t, types.ImpactHigh, missing[0].Impact)
	assert.True(t, missing[0].Required)
}

func TestSkillsScore_AllRequiredMatch(t *testing.T) {
	score, matched, missing := SkillsScore(
		[]string{"Go", "PostgreSQL", "Docker"},
		[]string{"Go", "PostgreSQL"},
		nil, nil)

	assert.InDelta(t, 100.0, score, 0.01)
	assert.Len(t, matched, 2)
	assert.Empty(t, missing)
}

func TestSkillsScore_PreferredBlend(t *testing.T) {
	// All required match, no preferred match: 0.7*100 + 0.3*0 = 70.
	score, _, missing := SkillsScore(
		[]string{"Python"},
		[]string{"Python"},
		[]string{"Kubernetes"}, nil)

	assert.InDelta(t, 70.0, score, 0.01)
	require.Len(t, missing, 1)
	assert.Equal(t, "Kubernetes", missing[0].Skill)
	assert.Equal(t, types.ImpactMedium, missing[0].Impact)
	assert.False(t, missing[0].Required)
}

func TestSkillsScore_FuzzyMatchScaledByRatio(t *testing.T) {
	score, matched, missing := SkillsScore(
		[]string{"JavaScripts"},
		[]string{"JavaScript"},
		nil, nil)

	require.Len(t, matched, 1)
	assert.Empty(t, missing)
	assert.Equal(t, types.MatchFuzzy, matched[0].MatchType)
	assert.Equal(t, "JavaScripts", matched[0].MatchedAs)
	assert.GreaterOrEqual(t, matched[0].Confidence, 0.85)

	// Fuzzy hits contribute weight*ratio, so the score sits below 100.
	assert.Less(t, score, 100.0)
	assert.Greater(t, score, 85.0)
}

func TestSkillsScore_BelowFuzzyThresholdIsMissing(t *testing.T) {
	score, matched, missing := SkillsScore(
		[]string{"Rust"},
		[]string{"JavaScript"},
		nil, nil)

	assert.Equal(t, 0.0, score)
	assert.Empty(t, matched)
	require.Len(t, missing, 1)
	assert.Equal(t, "JavaScript", missing[0].Skill)
}

func TestSkillsScore_MustHaveMissingIsCritical(t *testing.T) {
	_, _, missing := SkillsScore(
		[]string{"Python"},
		[]string{"Python", "Kubernetes"},
		nil,
		[]types.SkillWeight{
			{Skill: "Kubernetes", Weight: 2.0, Tier: types.TierMust},
		})

	require.Len(t, missing, 1)
	assert.Equal(t, "Kubernetes", missing[0].Skill)
	assert.Equal(t, types.ImpactCritical, missing[0].Impact)
	assert.Equal(t, 2.0, missing[0].Weight)
}

func TestSkillsScore_WeightOverridesChangeScore(t *testing.T) {
	// Matching the weight-3 skill out of weights {3,1} yields 75.
	score, _, _ := SkillsScore(
		[]string{"Go"},
		[]string{"Go", "Terraform"},
		nil,
		[]types.SkillWeight{
			{Skill: "Go", Weight: 3.0},
			{Skill: "Terraform", Weight: 1.0},
		})

	assert.InDelta(t, 75.0, score, 0.01)
}

func TestSkillsScore_NoRequirements(t *testing.T) {
	score, matched, missing := SkillsScore([]string{"Go"}, nil, nil, nil)

	assert.Equal(t, 0.0, score)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}
