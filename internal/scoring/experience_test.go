package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsync-engine/internal/types"
)

func TestExperienceScore_MeetsPreferredYears(t *testing.T) {
	history := []types.WorkExperience{
		{Company: "Acme", Role: "Engineer", DurationYears: 4},
		{Company: "Globex", Role: "Engineer", DurationYears: 2},
	}

	score, analysis := ExperienceScore(history, 2, 5, nil)

	// 6 total years against preferred 5 scores full marks.
	assert.InDelta(t, 100.0, score, 0.01)
	assert.InDelta(t, 6.0, analysis.TotalYears, 0.01)
	assert.Len(t, analysis.Breakdown, 2)
}

func TestExperienceScore_BetweenMinAndPreferred(t *testing.T) {
	history := []types.WorkExperience{
		{Company: "Acme", Role: "Engineer", DurationYears: 3},
	}

	score, _ := ExperienceScore(history, 2, 6, nil)

	// 70 + 30*(3-2)/(6-2) = 77.5.
	assert.InDelta(t, 77.5, score, 0.01)
}

func TestExperienceScore_BelowMinimum(t *testing.T) {
	history := []types.WorkExperience{
		{Company: "Acme", Role: "Engineer", DurationYears: 1},
	}

	score, _ := ExperienceScore(history, 4, 8, nil)

	// (1/4)*70 = 17.5.
	assert.InDelta(t, 17.5, score, 0.01)
}

func TestExperienceScore_RelevanceBoost(t *testing.T) {
	history := []types.WorkExperience{
		{Company: "Acme", Role: "Backend Engineer", Description: "Built services in Go", DurationYears: 3},
		{Company: "Globex", Role: "Support", Description: "Customer support", DurationYears: 3},
	}

	plain, _ := ExperienceScore(history, 2, 10, nil)
	boosted, analysis := ExperienceScore(history, 2, 10, []string{"Go"})

	assert.Greater(t, boosted, plain)
	assert.InDelta(t, 3.0, analysis.RelevantYears, 0.01)
	require.Len(t, analysis.Breakdown, 2)
	assert.True(t, analysis.Breakdown[0].Relevant)
	assert.False(t, analysis.Breakdown[1].Relevant)
}

func TestExperienceScore_BoostCappedAtHundred(t *testing.T) {
	history := []types.WorkExperience{
		{Company: "Acme", Role: "Engineer", Description: "Python everywhere", DurationYears: 10},
	}

	score, _ := ExperienceScore(history, 2, 5, []string{"Python"})

	assert.Equal(t, 100.0, score)
}

func TestExperienceScore_EmptyHistory(t *testing.T) {
	score, analysis := ExperienceScore(nil, 2, 5, nil)

	assert.Equal(t, 0.0, score)
	assert.Empty(t, analysis.Breakdown)
}

func TestExperienceScore_NoPreferredFallsBackToMin(t *testing.T) {
	history := []types.WorkExperience{
		{Company: "Acme", Role: "Engineer", DurationYears: 3},
	}

	score, analysis := ExperienceScore(history, 2, 0, nil)

	assert.InDelta(t, 100.0, score, 0.01)
	assert.Equal(t, 2.0, analysis.PreferredYears)
}
