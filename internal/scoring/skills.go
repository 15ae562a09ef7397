package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/skillsync-engine/internal/taxonomy"
	"github.com/jonathan/skillsync-engine/internal/types"
)

const (
	// fuzzyMatchThreshold is the minimum similarity ratio for a fuzzy skill hit.
	fuzzyMatchThreshold = 0.85

	// Default skill weights when no override is supplied.
	defaultRequiredWeight  = 1.0
	defaultPreferredWeight = 0.5

	// Blend of required vs preferred contributions when preferred skills exist.
	requiredBlend  = 0.7
	preferredBlend = 0.3
)

type weightInfo struct {
	weight float64
	tier   string
}

// SkillsScore matches required and preferred skills against the candidate's
// skill list and returns the blended 0-100 score with the matched/missing
// breakdown. Fuzzy hits (ratio >= 0.85) contribute weight*ratio while exact
// hits contribute full weight; this asymmetry is intentional policy. A zero
// total weight yields a score of 0, never an error.
func SkillsScore(candidateSkills, requiredSkills, preferredSkills []string, overrides []types.SkillWeight) (float64, []types.MatchedSkill, []types.MissingSkill) {
	if len(requiredSkills) == 0 && len(preferredSkills) == 0 {
		return 0, nil, nil
	}

	weights := make(map[string]weightInfo, len(overrides))
	for _, ov := range overrides {
		tier := ov.Tier
		if tier == "" {
			tier = types.TierStandard
		}
		weights[strings.ToLower(ov.Skill)] = weightInfo{weight: ov.Weight, tier: tier}
	}

	candidateLower := make([]string, len(candidateSkills))
	for i, s := range candidateSkills {
		candidateLower[i] = strings.ToLower(s)
	}

	var matched []types.MatchedSkill
	var missing []types.MissingSkill

	totalRequired, matchedRequired := matchTier(
		requiredSkills, candidateSkills, candidateLower, weights,
		defaultRequiredWeight, true, &matched, &missing)

	totalPreferred, matchedPreferred := matchTier(
		preferredSkills, candidateSkills, candidateLower, weights,
		defaultPreferredWeight, false, &matched, &missing)

	requiredScore := 0.0
	if totalRequired > 0 {
		requiredScore = matchedRequired / totalRequired * 100
	}
	preferredScore := 0.0
	if totalPreferred > 0 {
		preferredScore = matchedPreferred / totalPreferred * 100
	}

	score := requiredScore
	if len(preferredSkills) > 0 {
		score = requiredBlend*requiredScore + preferredBlend*preferredScore
	}
	return score, matched, missing
}

// matchTier runs the exact-then-fuzzy match procedure for one tier of
// skills, appending matched/missing records and returning the total and
// matched weight accumulators.
func matchTier(
	skills, candidateSkills, candidateLower []string,
	weights map[string]weightInfo,
	defaultWeight float64,
	required bool,
	matched *[]types.MatchedSkill,
	missing *[]types.MissingSkill,
) (totalWeight, matchedWeight float64) {
	for _, skill := range skills {
		skillLower := strings.ToLower(skill)
		info, ok := weights[skillLower]
		if !ok {
			info = weightInfo{weight: defaultWeight, tier: types.TierStandard}
		}
		mustHave := required && info.tier == types.TierMust
		totalWeight += info.weight

		// Exact match first.
		if indexOf(candidateLower, skillLower) >= 0 {
			matchedWeight += info.weight
			*matched = append(*matched, types.MatchedSkill{
				Skill:      skill,
				MatchType:  types.MatchExact,
				Confidence: 1.0,
				Weight:     info.weight,
				Required:   required,
				MustHave:   mustHave,
			})
			continue
		}

		// Best fuzzy match over the candidate's skills.
		bestRatio := 0.0
		bestSkill := ""
		for i, cand := range candidateSkills {
			ratio := taxonomy.Ratio(skillLower, candidateLower[i])
			if ratio > bestRatio {
				bestRatio = ratio
				bestSkill = cand
			}
		}
		if bestRatio >= fuzzyMatchThreshold {
			// Fuzzy hits contribute weight scaled by the match ratio.
			matchedWeight += info.weight * bestRatio
			*matched = append(*matched, types.MatchedSkill{
				Skill:      skill,
				MatchType:  types.MatchFuzzy,
				MatchedAs:  bestSkill,
				Confidence: bestRatio,
				Weight:     info.weight,
				Required:   required,
				MustHave:   mustHave,
			})
			continue
		}

		impact := types.ImpactMedium
		reason := "Preferred skill not found"
		recommendation := fmt.Sprintf("%s would strengthen the profile", skill)
		if required {
			impact = types.ImpactHigh
			if mustHave {
				impact = types.ImpactCritical
			}
			reason = "Not found in candidate profile"
			recommendation = fmt.Sprintf("Consider acquiring %s through courses or projects", skill)
		}
		*missing = append(*missing, types.MissingSkill{
			Skill:          skill,
			Impact:         impact,
			Required:       required,
			Weight:         info.weight,
			Reason:         reason,
			Recommendation: recommendation,
		})
	}
	return totalWeight, matchedWeight
}

func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}
