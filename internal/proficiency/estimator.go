// Package proficiency derives per-skill mastery levels and supporting
// evidence from structured candidate data.
package proficiency

import (
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// Proficiency labels, strongest first.
const (
	LevelExpert       = "Expert"
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelBeginner     = "Beginner"
)

// Label thresholds on the [0,1] proficiency value.
const (
	expertThreshold       = 0.80
	advancedThreshold     = 0.60
	intermediateThreshold = 0.35
)

// Factor normalization caps and weights. Years saturate at 10, projects at
// 5; certification is a flat flag.
const (
	yearsCap    = 10.0
	projectsCap = 5.0

	yearsWeight    = 0.5
	projectsWeight = 0.3
	certWeight     = 0.2
)

// Estimator computes proficiency values, labels and evidence for skills.
type Estimator struct {
	log *zap.Logger
	now func() time.Time
}

// NewEstimator creates an estimator.
func NewEstimator(log *zap.Logger) *Estimator {
	return &Estimator{log: log, now: time.Now}
}

// skillPattern compiles a case-insensitive word-boundary pattern for a skill.
func skillPattern(skill string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
}

// YearsWithSkill sums the durations of work experiences whose combined
// role/description/technology text mentions the skill.
func (e *Estimator) YearsWithSkill(skill string, experience []types.WorkExperience) float64 {
	pattern := skillPattern(skill)
	now := e.now()
	total := 0.0
	for _, exp := range experience {
		if pattern.MatchString(exp.SearchText()) {
			total += exp.Years(now)
		}
	}
	return total
}

// ProjectsWithSkill counts distinct projects mentioning the skill.
func (e *Estimator) ProjectsWithSkill(skill string, projects []types.Project) int {
	pattern := skillPattern(skill)
	count := 0
	for _, proj := range projects {
		if pattern.MatchString(proj.SearchText()) {
			count++
		}
	}
	return count
}

// HasCertification reports whether any certification mentions the skill.
func (e *Estimator) HasCertification(skill string, certs []types.Certification) bool {
	pattern := skillPattern(skill)
	for _, cert := range certs {
		if pattern.MatchString(cert.SearchText()) {
			return true
		}
	}
	return false
}

// Value computes the [0,1] proficiency value for a skill:
// 0.5*min(years/10,1) + 0.3*min(projects/5,1) + 0.2*certFlag.
func (e *Estimator) Value(skill string, profile *types.CandidateProfile) float64 {
	years := e.YearsWithSkill(skill, profile.Experience)
	projects := e.ProjectsWithSkill(skill, profile.Projects)
	certified := e.HasCertification(skill, profile.Certifications)

	yearsNorm := min(1.0, years/yearsCap)
	projectsNorm := min(1.0, float64(projects)/projectsCap)
	certFlag := 0.0
	if certified {
		certFlag = 1.0
	}

	value := yearsWeight*yearsNorm + projectsWeight*projectsNorm + certWeight*certFlag
	e.log.Debug("computed proficiency value",
		zap.String("skill", skill),
		zap.Float64("value", value),
		zap.Float64("years", years),
		zap.Int("projects", projects),
		zap.Bool("certified", certified))
	return value
}

// Level returns the proficiency label for a skill.
func (e *Estimator) Level(skill string, profile *types.CandidateProfile) string {
	return MapLevel(e.Value(skill, profile))
}

// MapLevel maps a [0,1] proficiency value to its label. Exactly four
// buckets: >=0.80 Expert, >=0.60 Advanced, >=0.35 Intermediate, else Beginner.
func MapLevel(value float64) string {
	switch {
	case value >= expertThreshold:
		return LevelExpert
	case value >= advancedThreshold:
		return LevelAdvanced
	case value >= intermediateThreshold:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// AnalyzeStrength returns the full factor breakdown behind a proficiency
// estimate, including a 0-100 strength score.
func (e *Estimator) AnalyzeStrength(skill string, profile *types.CandidateProfile) types.SkillStrength {
	years := e.YearsWithSkill(skill, profile.Experience)
	projects := e.ProjectsWithSkill(skill, profile.Projects)
	certified := e.HasCertification(skill, profile.Certifications)

	certScore := 0.0
	if certified {
		certScore = 20
	}
	return types.SkillStrength{
		Skill:            skill,
		Proficiency:      e.Level(skill, profile),
		YearsExperience:  years,
		ProjectCount:     projects,
		HasCertification: certified,
		StrengthScore:    min(50, years*5) + min(30, float64(projects)*6) + certScore,
	}
}
