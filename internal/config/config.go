// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config is the engine configuration loadable from a JSON file. All fields
// are optional; missing values use defaults or come from CLI flags and
// environment variables.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty selects in-memory stores
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for LLM skill extraction
	Model       string `json:"model,omitempty"`        // Gemini model name

	// Taxonomy
	TaxonomyPath       string  `json:"taxonomy_path,omitempty"`        // Path to the skill vocabulary JSON
	MinMatchConfidence float64 `json:"min_match_confidence,omitempty"` // Fuzzy mention threshold (0.0-1.0)

	// Cache
	FreshnessHorizonHours int `json:"freshness_horizon_hours,omitempty" validate:"gte=0"` // Staleness horizon for display
	Workers               int `json:"workers,omitempty" validate:"gte=0"`                 // Precompute concurrency

	// Scoring
	Weights   map[string]float64 `json:"weights,omitempty"` // Rubric weight overrides by component name
	Shortlist float64            `json:"shortlist,omitempty" validate:"gte=0,lte=100"`
	Maybe     float64            `json:"maybe,omitempty" validate:"gte=0,lte=100"`

	// Behavior
	Verbose  bool `json:"verbose,omitempty"`   // Print detailed debug information
	JSONLogs bool `json:"json_logs,omitempty"` // Emit logs as JSON instead of console format
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are enforced by CLI flag validation after merging, not here.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.MinMatchConfidence < 0 || c.MinMatchConfidence > 1 {
		return fmt.Errorf("config error: 'min_match_confidence' must be between 0 and 1")
	}
	for name, weight := range c.Weights {
		if weight < 0 {
			return fmt.Errorf("config error: weight %q must be non-negative", name)
		}
	}
	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled from
// defaults. Bool fields are not merged; CLI flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.TaxonomyPath == "" {
		result.TaxonomyPath = defaults.TaxonomyPath
	}
	if result.MinMatchConfidence == 0 {
		result.MinMatchConfidence = defaults.MinMatchConfidence
	}
	if result.FreshnessHorizonHours == 0 {
		result.FreshnessHorizonHours = defaults.FreshnessHorizonHours
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.Shortlist == 0 {
		result.Shortlist = defaults.Shortlist
	}
	if result.Maybe == 0 {
		result.Maybe = defaults.Maybe
	}

	return result
}
