package types

// Skill weight tiers. A "must" tier required skill that is missing carries
// critical impact; preferred and standard tiers degrade more gently.
const (
	TierMust      = "must"
	TierPreferred = "preferred"
	TierStandard  = "standard"
)

// JobRequirement holds the structured job-posting data the engine scores
// candidates against. Owned by the caller; the engine never mutates it.
type JobRequirement struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	RequiredSkills     []string      `json:"required_skills"`
	PreferredSkills    []string      `json:"preferred_skills,omitempty"`
	SkillWeights       []SkillWeight `json:"skill_weights,omitempty"`
	MinExperienceYears float64       `json:"min_experience_years,omitempty" validate:"gte=0"`
	PreferredYears     float64       `json:"preferred_experience_years,omitempty" validate:"gte=0"`
	RequiredEducation  string        `json:"required_education,omitempty"`
	Embedding          []float64     `json:"embedding,omitempty"`
}

// SkillWeight overrides the default weight and tier for a single skill.
type SkillWeight struct {
	Skill  string  `json:"skill" validate:"required"`
	Weight float64 `json:"weight" validate:"gt=0"`
	Tier   string  `json:"tier,omitempty" validate:"omitempty,oneof=must preferred standard"`
}
