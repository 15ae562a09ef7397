package scoring

import (
	"strings"
	"time"

	"github.com/jonathan/skillsync-engine/internal/types"
)

const (
	// Experience score shape: meeting the minimum is worth 70 points and
	// the min-to-preferred span the remaining 30.
	minYearsScore = 70.0
	prefYearsSpan = 30.0

	// Relevant experience adds up to 10 bonus points at twice the relevant
	// fraction; the final score is capped at 100. The literal formula is
	// preserved even where the boost exceeds the remaining headroom.
	relevanceBoostCap   = 10.0
	relevanceBoostScale = 20.0
)

// ExperienceScore scores the candidate's work history against the job's
// minimum and preferred years. Entries mentioning at least one required
// skill count as relevant and add a capped bonus.
func ExperienceScore(history []types.WorkExperience, minYears, preferredYears float64, requiredSkills []string) (float64, types.ExperienceAnalysis) {
	analysis := types.ExperienceAnalysis{
		MinRequired:    minYears,
		PreferredYears: preferredYears,
	}
	if len(history) == 0 {
		return 0, analysis
	}

	if preferredYears <= 0 {
		preferredYears = minYears
	}
	analysis.PreferredYears = preferredYears

	requiredLower := make([]string, len(requiredSkills))
	for i, s := range requiredSkills {
		requiredLower[i] = strings.ToLower(s)
	}

	now := time.Now()
	totalYears := 0.0
	relevantYears := 0.0
	for _, exp := range history {
		duration := exp.Years(now)
		totalYears += duration

		text := exp.SearchText()
		var matchedSkills []string
		for _, skill := range requiredLower {
			if skill != "" && strings.Contains(text, skill) {
				matchedSkills = append(matchedSkills, skill)
			}
		}
		relevant := len(matchedSkills) > 0
		if relevant {
			relevantYears += duration
		}
		analysis.Breakdown = append(analysis.Breakdown, types.ExperienceBreakdown{
			Company:       exp.Company,
			Role:          exp.Role,
			DurationYears: duration,
			Relevant:      relevant,
			MatchedSkills: matchedSkills,
		})
	}
	analysis.TotalYears = totalYears
	analysis.RelevantYears = relevantYears

	var score float64
	switch {
	case totalYears >= preferredYears:
		score = 100
	case totalYears >= minYears:
		score = minYearsScore + prefYearsSpan*(totalYears-minYears)/(preferredYears-minYears)
	default:
		if minYears > 0 {
			score = (totalYears / minYears) * minYearsScore
		}
	}

	if relevantYears > 0 && totalYears > 0 {
		boost := min(relevanceBoostCap, (relevantYears/totalYears)*relevanceBoostScale)
		score = min(100, score+boost)
	}
	return score, analysis
}
