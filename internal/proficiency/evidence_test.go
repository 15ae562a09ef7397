package proficiency

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/skillsync-engine/internal/types"
)

func TestEvidence_CertificationRanksFirst(t *testing.T) {
	estimator := NewEstimator(zaptest.NewLogger(t))

	profile := &types.CandidateProfile{
		Skills: []string{"AWS"},
		Experience: []types.WorkExperience{
			{Role: "Cloud Engineer", Company: "Acme", Description: "AWS infrastructure"},
		},
		Certifications: []types.Certification{
			{Name: "AWS Solutions Architect", Issuer: "Amazon", Date: "2024"},
		},
	}

	evidences := estimator.Evidence("AWS", profile)

	require.NotEmpty(t, evidences)
	// Certifications carry the highest confidence and sort to the top.
	assert.Equal(t, "Certifications", evidences[0].Source)
	assert.Equal(t, 1.0, evidences[0].Confidence)
}

func TestEvidence_CappedAtFive(t *testing.T) {
	estimator := NewEstimator(zaptest.NewLogger(t))

	profile := &types.CandidateProfile{Skills: []string{"Python"}}
	for i := 0; i < 4; i++ {
		profile.Experience = append(profile.Experience, types.WorkExperience{
			Role: "Python Developer", Company: fmt.Sprintf("Company %d", i),
			Description: "Python services",
		})
		profile.Projects = append(profile.Projects, types.Project{
			Name: fmt.Sprintf("Project %d", i), Technologies: []string{"Python"},
		})
	}

	evidences := estimator.Evidence("Python", profile)

	assert.Len(t, evidences, 5)
	// Descending confidence is preserved after truncation.
	for i := 1; i < len(evidences); i++ {
		assert.GreaterOrEqual(t, evidences[i-1].Confidence, evidences[i].Confidence)
	}
}

func TestEvidence_TextMatchesCappedAtTwo(t *testing.T) {
	estimator := NewEstimator(zaptest.NewLogger(t))

	profile := &types.CandidateProfile{
		ParsedText: "Built the first Terraform deployment for the platform team. " +
			"Migrated legacy Terraform configurations to modules over a year. " +
			"Taught a workshop about Terraform internals to new engineers. " +
			"Wrote extensive Terraform automation for release pipelines.",
	}

	evidences := estimator.Evidence("Terraform", profile)

	require.Len(t, evidences, 2)
	for _, ev := range evidences {
		assert.Equal(t, "Resume Text", ev.Source)
		assert.Equal(t, 0.75, ev.Confidence)
	}
}

func TestEvidence_SkillsListDeclaration(t *testing.T) {
	estimator := NewEstimator(zaptest.NewLogger(t))

	profile := &types.CandidateProfile{Skills: []string{"Go", "Redis"}}

	evidences := estimator.Evidence("Redis", profile)

	require.Len(t, evidences, 1)
	assert.Equal(t, "Skills", evidences[0].Source)
	assert.Equal(t, 0.7, evidences[0].Confidence)
}

func TestEvidence_NoMentionsMeansNoEvidence(t *testing.T) {
	estimator := NewEstimator(zaptest.NewLogger(t))

	profile := &types.CandidateProfile{
		Skills:     []string{"Go"},
		ParsedText: "Ten years of embedded C development.",
	}

	assert.Empty(t, estimator.Evidence("Scala", profile))
}

func TestEvidence_ProjectTechnologiesMatch(t *testing.T) {
	estimator := NewEstimator(zaptest.NewLogger(t))

	profile := &types.CandidateProfile{
		Projects: []types.Project{
			{Name: "Telemetry", Description: "Metrics collection agent", Technologies: []string{"Kafka"}},
		},
	}

	evidences := estimator.Evidence("Kafka", profile)

	require.Len(t, evidences, 1)
	assert.Equal(t, "Projects", evidences[0].Source)
	assert.Equal(t, "Telemetry", evidences[0].Context)
}
