package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, `{
		"database_url": "postgres://localhost/matches",
		"min_match_confidence": 0.8,
		"freshness_horizon_hours": 48,
		"workers": 8,
		"weights": {"semantic": 0.5, "skills": 0.5},
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/matches", cfg.DatabaseURL)
	assert.Equal(t, 0.8, cfg.MinMatchConfidence)
	assert.Equal(t, 48, cfg.FreshnessHorizonHours)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 0.5, cfg.Weights["semantic"])
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfigFile(t, `{"workers": `)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_Ranges(t *testing.T) {
	valid := &Config{MinMatchConfidence: 0.75, Workers: 4, Shortlist: 75, Maybe: 50}
	assert.NoError(t, valid.Validate())

	badConfidence := &Config{MinMatchConfidence: 1.5}
	assert.Error(t, badConfidence.Validate())

	badWeight := &Config{Weights: map[string]float64{"skills": -1}}
	assert.Error(t, badWeight.Validate())

	badWorkers := &Config{Workers: -1}
	assert.Error(t, badWorkers.Validate())
}

func TestValidate_TaxonomyPathMustExist(t *testing.T) {
	cfg := &Config{TaxonomyPath: filepath.Join(t.TempDir(), "absent.json")}
	assert.Error(t, cfg.Validate())

	path := writeConfigFile(t, `{"skills": []}`)
	cfg = &Config{TaxonomyPath: path}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://primary/db"}

	merged := cfg.MergeWithDefaults(Config{
		DatabaseURL: "postgres://fallback/db",
		APIKey:      "env-key",
		Workers:     4,
	})

	// Set values win; zero values fill from defaults.
	assert.Equal(t, "postgres://primary/db", merged.DatabaseURL)
	assert.Equal(t, "env-key", merged.APIKey)
	assert.Equal(t, 4, merged.Workers)
}
