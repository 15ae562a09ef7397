package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsync-engine/internal/cache"
	"github.com/jonathan/skillsync-engine/internal/config"
)

func writeTempJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestWeightsFromConfig_OverridesNamedComponents(t *testing.T) {
	weights := weightsFromConfig(map[string]float64{
		"semantic": 0.5,
		"skills":   0.5,
		"unknown":  0.9,
	})

	assert.Equal(t, 0.5, weights.Semantic)
	assert.Equal(t, 0.5, weights.Skills)
	// Unnamed components keep defaults.
	assert.Equal(t, 0.20, weights.Experience)
	assert.Equal(t, 0.10, weights.Education)
	assert.Equal(t, 0.05, weights.Projects)
}

func TestFreshnessHorizon(t *testing.T) {
	assert.Equal(t, 48*time.Hour, freshnessHorizon(&config.Config{FreshnessHorizonHours: 48}))
	assert.Equal(t, cache.DefaultHorizon, freshnessHorizon(&config.Config{}))
}

func TestLoadCandidate(t *testing.T) {
	path := writeTempJSON(t, "candidate.json", `{
		"id": "cand-1",
		"skills": ["Python", "PostgreSQL"],
		"parsed_text": "Backend engineer"
	}`)

	candidate, err := loadCandidate(path)
	require.NoError(t, err)

	assert.Equal(t, "cand-1", candidate.ID)
	assert.Equal(t, []string{"Python", "PostgreSQL"}, candidate.Skills)
}

func TestLoadCandidate_MissingFile(t *testing.T) {
	_, err := loadCandidate(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadJob(t *testing.T) {
	path := writeTempJSON(t, "job.json", `{
		"id": "job-1",
		"title": "Backend Engineer",
		"required_skills": ["Python"],
		"min_experience_years": 3
	}`)

	job, err := loadJob(path)
	require.NoError(t, err)

	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, []string{"Python"}, job.RequiredSkills)
	assert.Equal(t, 3.0, job.MinExperienceYears)
}

func TestLoadRankedCandidates(t *testing.T) {
	path := writeTempJSON(t, "candidates.json", `[
		{"candidate": {"id": "cand-1"}, "base_similarity": 0.9},
		{"candidate": {"id": "cand-2"}, "base_similarity": 0.4}
	]`)

	ranked, err := loadRankedCandidates(path)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "cand-1", ranked[0].Candidate.ID)
	assert.Equal(t, 0.9, ranked[0].BaseSimilarity)
}

func TestLoadRankedCandidates_MalformedJSON(t *testing.T) {
	path := writeTempJSON(t, "candidates.json", `{"not": "an array"}`)

	_, err := loadRankedCandidates(path)
	assert.Error(t, err)
}
