package scoring

import (
	"strings"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// Projects score components: up to 30 points for project count (10 each),
// up to 50 for required-skill coverage, up to 20 for the fraction of
// projects that are relevant.
const (
	projectCountPoints   = 30.0
	pointsPerProject     = 10.0
	skillCoveragePoints  = 50.0
	projectRelevancePnts = 20.0
)

// ProjectsScore scores the candidate's projects against the required
// skills. Skill coverage counts each required skill once no matter how many
// projects mention it; relevance counts projects mentioning at least one
// required skill.
func ProjectsScore(projects []types.Project, requiredSkills []string) (float64, []types.ProjectAssessment) {
	if len(projects) == 0 {
		return 0, nil
	}

	coveredSkills := make(map[string]bool)
	relevantProjects := 0
	assessments := make([]types.ProjectAssessment, 0, len(projects))

	for _, proj := range projects {
		text := proj.SearchText()
		var matchedSkills []string
		for _, skill := range requiredSkills {
			skillLower := strings.ToLower(skill)
			if skillLower != "" && strings.Contains(text, skillLower) {
				matchedSkills = append(matchedSkills, skill)
				coveredSkills[skillLower] = true
			}
		}
		relevant := len(matchedSkills) > 0
		if relevant {
			relevantProjects++
		}
		assessments = append(assessments, types.ProjectAssessment{
			Name:          proj.Name,
			Technologies:  proj.Technologies,
			MatchedSkills: matchedSkills,
			Relevant:      relevant,
		})
	}

	countScore := min(projectCountPoints, float64(len(projects))*pointsPerProject)
	coverageScore := 0.0
	if len(requiredSkills) > 0 {
		coverage := float64(len(coveredSkills)) / float64(len(requiredSkills))
		coverageScore = min(skillCoveragePoints, coverage*skillCoveragePoints)
	}
	relevanceScore := min(projectRelevancePnts,
		float64(relevantProjects)/float64(len(projects))*projectRelevancePnts)

	return countScore + coverageScore + relevanceScore, assessments
}
