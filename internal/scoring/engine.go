package scoring

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillsync-engine/internal/proficiency"
	"github.com/jonathan/skillsync-engine/internal/taxonomy"
	"github.com/jonathan/skillsync-engine/internal/types"
)

// Component confidences reflect input completeness, not score magnitude.
// Components with no input contribute nothing to the overall confidence.
const (
	semanticConfidence   = 0.9
	skillsConfidence     = 0.85
	experienceConfidence = 0.8
	educationConfidence  = 0.75
	projectsConfidence   = 0.7
)

// Engine is the component score engine. It is constructed explicitly with
// its collaborators; there is no global state.
type Engine struct {
	matcher    *taxonomy.Matcher
	estimator  *proficiency.Estimator
	weights    RubricWeights
	thresholds Thresholds
	log        *zap.Logger
}

// NewEngine creates an engine with default rubric weights and
// recommendation thresholds.
func NewEngine(matcher *taxonomy.Matcher, estimator *proficiency.Estimator, log *zap.Logger) *Engine {
	return &Engine{
		matcher:    matcher,
		estimator:  estimator,
		weights:    DefaultWeights(),
		thresholds: DefaultThresholds(),
		log:        log,
	}
}

// SetWeights overrides the rubric weights.
func (e *Engine) SetWeights(w RubricWeights) { e.weights = w }

// SetThresholds overrides the recommendation thresholds.
func (e *Engine) SetThresholds(t Thresholds) { e.thresholds = t }

// Score computes the full score result for one candidate-job pair. Missing
// inputs (embeddings, empty skill or history lists) produce zero component
// scores, never an error; a partial profile still yields a ranked result.
func (e *Engine) Score(candidate *types.CandidateProfile, job *types.JobRequirement) (*types.ScoreResult, error) {
	if candidate == nil || job == nil {
		return nil, fmt.Errorf("candidate and job are required")
	}

	candidateSkills := e.normalizeSkills(candidate.Skills)
	requiredSkills := e.normalizeSkills(job.RequiredSkills)
	preferredSkills := e.normalizeSkills(job.PreferredSkills)

	semantic := Semantic(candidate.Embedding, job.Embedding)
	skillsScore, matched, missing := SkillsScore(candidateSkills, requiredSkills, preferredSkills, job.SkillWeights)

	// Annotate matched skills with proficiency and supporting evidence.
	for i := range matched {
		matched[i].Proficiency = e.estimator.Level(matched[i].Skill, candidate)
		matched[i].Evidence = e.estimator.Evidence(matched[i].Skill, candidate)
	}

	experienceScore, experienceAnalysis := ExperienceScore(
		candidate.Experience, job.MinExperienceYears, job.PreferredYears, requiredSkills)
	educationScore, educationAnalysis := EducationScore(candidate.Education, job.RequiredEducation)
	projectsScore, projectAnalysis := ProjectsScore(candidate.Projects, requiredSkills)

	components := types.ComponentScores{
		Semantic:   semantic,
		Skills:     skillsScore,
		Experience: experienceScore,
		Education:  educationScore,
		Projects:   projectsScore,
	}
	overall := Aggregate(components, e.weights, e.log)
	confidence := Confidence(componentConfidences(candidate, job))

	e.log.Debug("scored candidate against job",
		zap.String("candidate_id", candidate.ID),
		zap.String("job_id", job.ID),
		zap.Float64("overall", overall),
		zap.Float64("semantic", semantic),
		zap.Float64("skills", skillsScore),
		zap.Float64("experience", experienceScore),
		zap.Float64("education", educationScore),
		zap.Float64("projects", projectsScore))

	return &types.ScoreResult{
		ID:              uuid.NewString(),
		CandidateID:     candidate.ID,
		JobID:           job.ID,
		ComponentScores: components,
		OverallScore:    overall,
		Confidence:      confidence,
		Recommendation:  Recommend(overall, e.thresholds),
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Experience:      experienceAnalysis,
		Education:       educationAnalysis,
		Projects:        projectAnalysis,
		ComputedAt:      time.Now().UTC(),
	}, nil
}

// normalizeSkills resolves each skill through the taxonomy and removes
// duplicates while preserving order.
func (e *Engine) normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		normalized := e.matcher.Normalize(skill)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// componentConfidences reports input completeness per component; the mean
// becomes the overall confidence.
func componentConfidences(candidate *types.CandidateProfile, job *types.JobRequirement) []float64 {
	var confidences []float64
	if len(candidate.Embedding) > 0 && len(job.Embedding) > 0 {
		confidences = append(confidences, semanticConfidence)
	}
	if len(candidate.Skills) > 0 && len(job.RequiredSkills) > 0 {
		confidences = append(confidences, skillsConfidence)
	}
	if len(candidate.Experience) > 0 {
		confidences = append(confidences, experienceConfidence)
	}
	if len(candidate.Education) > 0 {
		confidences = append(confidences, educationConfidence)
	}
	if len(candidate.Projects) > 0 {
		confidences = append(confidences, projectsConfidence)
	}
	return confidences
}
