package scoring

import (
	"strings"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// educationLevels is the fixed ordinal hierarchy of education levels.
// Doctorate and PhD share the top rank.
var educationLevels = map[string]int{
	"high school": 1,
	"diploma":     2,
	"associate":   3,
	"bachelor":    4,
	"master":      5,
	"phd":         6,
	"doctorate":   6,
}

// defaultRequiredEducation applies when the job does not state a level.
const defaultRequiredEducation = "bachelor"

// EducationScore compares the candidate's highest attained education level
// to the required level: meets-or-exceeds scores 100, exactly one level
// below scores 70, further below scores 50. No records at all score 0.
func EducationScore(records []types.Education, requiredLevel string) (float64, types.EducationAnalysis) {
	if len(records) == 0 {
		return 0, types.EducationAnalysis{MatchLevel: types.EducationNone}
	}

	highestRank := 0
	highestDegree := ""
	institutions := make([]types.InstitutionRecord, 0, len(records))
	for _, record := range records {
		degreeLower := strings.ToLower(record.Degree)
		rank := 0
		for level, levelRank := range educationLevels {
			if strings.Contains(degreeLower, level) && levelRank > rank {
				rank = levelRank
			}
		}
		if rank > highestRank {
			highestRank = rank
			highestDegree = record.Degree
		}
		institutions = append(institutions, types.InstitutionRecord{
			Institution: record.Institution,
			Degree:      record.Degree,
			GPA:         record.GPA,
			Year:        record.GraduationYear,
		})
	}

	if requiredLevel == "" {
		requiredLevel = defaultRequiredEducation
	}
	requiredRank, ok := educationLevels[strings.ToLower(requiredLevel)]
	if !ok {
		requiredRank = educationLevels[defaultRequiredEducation]
	}

	var score float64
	var matchLevel string
	switch {
	case highestRank > requiredRank:
		score, matchLevel = 100, types.EducationExceeds
	case highestRank == requiredRank:
		score, matchLevel = 100, types.EducationMeets
	case highestRank == requiredRank-1:
		score, matchLevel = 70, types.EducationClose
	default:
		score, matchLevel = 50, types.EducationBelow
	}

	return score, types.EducationAnalysis{
		HighestDegree: highestDegree,
		MatchLevel:    matchLevel,
		Required:      requiredLevel,
		Institutions:  institutions,
	}
}
