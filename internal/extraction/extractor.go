package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/skillsync-engine/internal/taxonomy"
)

// Extractor turns free text into a normalized skill list. The classifier is
// optional; taxonomy matching covers its absence and its failures.
type Extractor struct {
	client        Client
	matcher       *taxonomy.Matcher
	minConfidence float64
	log           *zap.Logger
}

// NewExtractor creates an extractor. A nil client means taxonomy-only
// extraction.
func NewExtractor(client Client, matcher *taxonomy.Matcher, log *zap.Logger) *Extractor {
	return &Extractor{
		client:        client,
		matcher:       matcher,
		minConfidence: taxonomy.DefaultMinConfidence,
		log:           log,
	}
}

// SetMinConfidence overrides the fuzzy mention threshold for the taxonomy
// fallback. Values outside (0,1] are ignored.
func (e *Extractor) SetMinConfidence(v float64) {
	if v > 0 && v <= 1 {
		e.minConfidence = v
	}
}

// Extract returns the normalized, deduplicated skills mentioned in the
// text. Classifier errors are logged and degrade to taxonomy matching; the
// call itself does not fail.
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	if text == "" {
		return nil
	}

	if e.client != nil {
		skills, err := e.client.ClassifySkills(ctx, text)
		if err == nil {
			return e.normalize(skills)
		}
		e.log.Warn("skill classifier failed, falling back to taxonomy matching",
			zap.Error(err))
	}

	mentions := e.matcher.FindMentions(text, e.minConfidence)
	skills := make([]string, 0, len(mentions))
	for _, mention := range mentions {
		skills = append(skills, mention.Skill)
	}
	return e.normalize(skills)
}

// normalize resolves names through the taxonomy, drops empties and
// duplicates, and sorts the result.
func (e *Extractor) normalize(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
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
	sort.Strings(out)
	return out
}

// parseSkillsJSON decodes the classifier's JSON payload.
func parseSkillsJSON(raw string) ([]string, error) {
	var payload struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	return payload.Skills, nil
}
