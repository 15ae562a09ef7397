package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillsync-engine/internal/types"
)

func TestEducationScore_ExceedsRequirement(t *testing.T) {
	records := []types.Education{
		{Institution: "State University", Degree: "Master of Science in Computer Science"},
	}

	score, analysis := EducationScore(records, "bachelor")

	assert.Equal(t, 100.0, score)
	assert.Equal(t, types.EducationExceeds, analysis.MatchLevel)
}

func TestEducationScore_MeetsRequirement(t *testing.T) {
	records := []types.Education{
		{Institution: "State University", Degree: "Bachelor of Engineering"},
	}

	score, analysis := EducationScore(records, "bachelor")

	assert.Equal(t, 100.0, score)
	assert.Equal(t, types.EducationMeets, analysis.MatchLevel)
}

func TestEducationScore_OneLevelBelow(t *testing.T) {
	records := []types.Education{
		{Institution: "Community College", Degree: "Associate Degree in IT"},
	}

	score, analysis := EducationScore(records, "bachelor")

	assert.Equal(t, 70.0, score)
	assert.Equal(t, types.EducationClose, analysis.MatchLevel)
}

func TestEducationScore_FurtherBelow(t *testing.T) {
	records := []types.Education{
		{Institution: "Central High", Degree: "High School Diploma"},
	}

	score, analysis := EducationScore(records, "master")

	assert.Equal(t, 50.0, score)
	assert.Equal(t, types.EducationBelow, analysis.MatchLevel)
}

func TestEducationScore_NoRecords(t *testing.T) {
	score, analysis := EducationScore(nil, "bachelor")

	assert.Equal(t, 0.0, score)
	assert.Equal(t, types.EducationNone, analysis.MatchLevel)
}

func TestEducationScore_DefaultRequirementIsBachelor(t *testing.T) {
	records := []types.Education{
		{Institution: "State University", Degree: "PhD in Physics"},
	}

	score, analysis := EducationScore(records, "")

	assert.Equal(t, 100.0, score)
	assert.Equal(t, types.EducationExceeds, analysis.MatchLevel)
	assert.Equal(t, "bachelor", analysis.Required)
}

func TestEducationScore_HighestDegreeWins(t *testing.T) {
	records := []types.Education{
		{Institution: "Community College", Degree: "Associate Degree"},
		{Institution: "State University", Degree: "Doctorate in Chemistry"},
	}

	score, analysis := EducationScore(records, "master")

	assert.Equal(t, 100.0, score)
	assert.Equal(t, "Doctorate in Chemistry", analysis.HighestDegree)
	assert.Len(t, analysis.Institutions, 2)
}
