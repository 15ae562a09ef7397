package types

import "time"

// Skill match types, strongest evidence first.
const (
	MatchExact = "exact"
	MatchAlias = "alias"
	MatchFuzzy = "fuzzy"
)

// Missing-skill impact classifications.
const (
	ImpactCritical = "critical"
	ImpactHigh     = "high"
	ImpactMedium   = "medium"
)

// Recommendation tiers derived from the overall score.
const (
	RecommendShortlist = "SHORTLIST"
	RecommendMaybe     = "MAYBE"
	RecommendReject    = "REJECT"
)

// ComponentScores holds the five component scores, each in [0,100].
// Produced fresh per scoring call and never mutated afterward.
type ComponentScores struct {
	Semantic   float64 `json:"semantic"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Projects   float64 `json:"projects"`
}

// MatchedSkill records one required or preferred skill found in the
// candidate's skill list, with the evidence supporting the match.
type MatchedSkill struct {
	Skill       string     `json:"skill"`
	MatchType   string     `json:"match_type"` // exact | alias | fuzzy
	MatchedAs   string     `json:"matched_as,omitempty"`
	Confidence  float64    `json:"confidence"`
	Weight      float64    `json:"weight"`
	Required    bool       `json:"is_required"`
	MustHave    bool       `json:"is_must_have"`
	Proficiency string     `json:"proficiency,omitempty"`
	Evidence    []Evidence `json:"evidence,omitempty"`
}

// MissingSkill records one required or preferred skill not found in the
// candidate's skill list, with its impact and a remediation hint.
type MissingSkill struct {
	Skill          string  `json:"skill"`
	Impact         string  `json:"impact"` // critical | high | medium
	Required       bool    `json:"is_required"`
	Weight         float64 `json:"weight"`
	Reason         string  `json:"reason"`
	Recommendation string  `json:"recommendation"`
}

// Evidence is one supporting snippet for a skill assessment.
type Evidence struct {
	Text       string  `json:"text"`
	Source     string  `json:"source"`
	Context    string  `json:"context,omitempty"`
	Confidence float64 `json:"confidence"`
}

// SkillStrength is the full factor breakdown behind a proficiency estimate.
type SkillStrength struct {
	Skill            string  `json:"skill"`
	Proficiency      string  `json:"proficiency"`
	YearsExperience  float64 `json:"years_experience"`
	ProjectCount     int     `json:"project_count"`
	HasCertification bool    `json:"has_certification"`
	StrengthScore    float64 `json:"strength_score"`
}

// ExperienceBreakdown describes one work-history entry's contribution.
type ExperienceBreakdown struct {
	Company       string   `json:"company,omitempty"`
	Role          string   `json:"role,omitempty"`
	DurationYears float64  `json:"duration_years"`
	Relevant      bool     `json:"is_relevant"`
	MatchedSkills []string `json:"matched_skills,omitempty"`
}

// ExperienceAnalysis explains the experience component score.
type ExperienceAnalysis struct {
	TotalYears     float64               `json:"total_years"`
	RelevantYears  float64               `json:"relevant_years"`
	MinRequired    float64               `json:"min_required"`
	PreferredYears float64               `json:"preferred_required"`
	Breakdown      []ExperienceBreakdown `json:"breakdown,omitempty"`
}

// Education match levels.
const (
	EducationExceeds = "exceeds"
	EducationMeets   = "meets"
	EducationClose   = "close"
	EducationBelow   = "below"
	EducationNone    = "none"
)

// InstitutionRecord is one education record as seen by the scorer.
type InstitutionRecord struct {
	Institution string  `json:"institution,omitempty"`
	Degree      string  `json:"degree"`
	GPA         float64 `json:"gpa,omitempty"`
	Year        int     `json:"year,omitempty"`
}

// EducationAnalysis explains the education component score.
type EducationAnalysis struct {
	HighestDegree string              `json:"highest_degree,omitempty"`
	MatchLevel    string              `json:"match_level"`
	Required      string              `json:"required,omitempty"`
	Institutions  []InstitutionRecord `json:"institutions,omitempty"`
}

// ProjectAssessment explains one project's contribution to the projects score.
type ProjectAssessment struct {
	Name          string   `json:"name"`
	Technologies  []string `json:"technologies,omitempty"`
	MatchedSkills []string `json:"matched_skills,omitempty"`
	Relevant      bool     `json:"is_relevant"`
}

// ScoreResult is the final aggregate produced by one scoring call.
// A recompute supersedes a prior result; results are never mutated in place.
type ScoreResult struct {
	ID              string              `json:"id"`
	CandidateID     string              `json:"candidate_id"`
	JobID           string              `json:"job_id"`
	ComponentScores ComponentScores     `json:"component_scores"`
	OverallScore    float64             `json:"overall_score"`
	Confidence      float64             `json:"confidence"`
	Recommendation  string              `json:"recommendation"`
	MatchedSkills   []MatchedSkill      `json:"matched_skills,omitempty"`
	MissingSkills   []MissingSkill      `json:"missing_skills,omitempty"`
	Experience      ExperienceAnalysis  `json:"experience_analysis"`
	Education       EducationAnalysis   `json:"education_analysis"`
	Projects        []ProjectAssessment `json:"project_analysis,omitempty"`
	ComputedAt      time.Time           `json:"computed_at"`
}
