package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skillsync-engine/internal/audit"
	"github.com/jonathan/skillsync-engine/internal/cache"
	"github.com/jonathan/skillsync-engine/internal/config"
	"github.com/jonathan/skillsync-engine/internal/logger"
	"github.com/jonathan/skillsync-engine/internal/proficiency"
	"github.com/jonathan/skillsync-engine/internal/scoring"
	"github.com/jonathan/skillsync-engine/internal/taxonomy"
	"github.com/jonathan/skillsync-engine/internal/types"
)

// loadEngineConfig merges the optional config file with environment
// variables. Flags override both at the call sites.
func loadEngineConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	})
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// buildLogger constructs the process logger from config.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Verbose)
}

// buildMatcher loads the skill vocabulary and builds a matcher. A missing
// vocabulary degrades to empty-taxonomy matching, not an error.
func buildMatcher(cfg *config.Config, log *zap.Logger) *taxonomy.Matcher {
	return taxonomy.NewMatcher(taxonomy.Load(cfg.TaxonomyPath, log))
}

// buildEngine assembles the score engine with any configured weight and
// threshold overrides.
func buildEngine(cfg *config.Config, matcher *taxonomy.Matcher, log *zap.Logger) *scoring.Engine {
	engine := scoring.NewEngine(matcher, proficiency.NewEstimator(log), log)
	if len(cfg.Weights) > 0 {
		engine.SetWeights(weightsFromConfig(cfg.Weights))
	}
	if cfg.Shortlist > 0 || cfg.Maybe > 0 {
		thresholds := scoring.DefaultThresholds()
		if cfg.Shortlist > 0 {
			thresholds.Shortlist = cfg.Shortlist
		}
		if cfg.Maybe > 0 {
			thresholds.Maybe = cfg.Maybe
		}
		engine.SetThresholds(thresholds)
	}
	return engine
}

// weightsFromConfig maps named weight overrides onto the rubric, keeping
// defaults for unnamed components.
func weightsFromConfig(overrides map[string]float64) scoring.RubricWeights {
	weights := scoring.DefaultWeights()
	for name, value := range overrides {
		switch name {
		case "semantic":
			weights.Semantic = value
		case "skills":
			weights.Skills = value
		case "experience":
			weights.Experience = value
		case "education":
			weights.Education = value
		case "projects":
			weights.Projects = value
		}
	}
	return weights
}

// openCacheStore returns the configured cache store: PostgreSQL when a
// database URL is set, in-memory otherwise. The returned func closes any
// held connections.
func openCacheStore(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return cache.NewMemoryStore(), func() {}, nil
	}
	store, err := cache.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache store: %w", err)
	}
	return store, store.Close, nil
}

// openAuditStore returns the configured audit store, mirroring
// openCacheStore.
func openAuditStore(ctx context.Context, cfg *config.Config) (audit.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return audit.NewMemoryStore(), func() {}, nil
	}
	store, err := audit.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit store: %w", err)
	}
	return store, store.Close, nil
}

// freshnessHorizon converts the configured horizon to a duration.
func freshnessHorizon(cfg *config.Config) time.Duration {
	if cfg.FreshnessHorizonHours > 0 {
		return time.Duration(cfg.FreshnessHorizonHours) * time.Hour
	}
	return cache.DefaultHorizon
}

// loadCandidate reads a candidate profile from a JSON file.
func loadCandidate(path string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate file: %w", err)
	}
	var candidate types.CandidateProfile
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("failed to parse candidate JSON: %w", err)
	}
	return &candidate, nil
}

// loadJob reads a job requirement from a JSON file.
func loadJob(path string) (*types.JobRequirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	var job types.JobRequirement
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	return &job, nil
}

// loadRankedCandidates reads the precompute candidate pool from a JSON
// file: an array of {candidate, base_similarity} objects.
func loadRankedCandidates(path string) ([]types.RankedCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}
	var candidates []types.RankedCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse candidates JSON: %w", err)
	}
	return candidates, nil
}

// printJSON writes the value to stdout as indented JSON.
func printJSON(value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
