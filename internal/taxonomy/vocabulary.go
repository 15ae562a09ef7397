// Package taxonomy provides the canonical skill vocabulary, alias
// resolution, and approximate skill matching over free text.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// vocabularySchema validates the taxonomy file before it is trusted.
const vocabularySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["skills"],
  "properties": {
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "category"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string", "minLength": 1},
          "aliases": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

// SkillEntry is one canonical vocabulary entry. Immutable after load.
type SkillEntry struct {
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases,omitempty"`
	Category string   `json:"category"`
}

// Vocabulary is the read-only canonical skill vocabulary. It is loaded once
// at startup and may be shared freely across goroutines without
// synchronization.
type Vocabulary struct {
	skills     []SkillEntry
	byName     map[string]*SkillEntry // lowercase canonical name -> entry
	byAlias    map[string]string      // lowercase alias -> canonical name
	byCategory map[string][]string    // category -> canonical names
}

// New builds a vocabulary from in-memory entries.
func New(entries []SkillEntry) *Vocabulary {
	v := &Vocabulary{
		skills:     entries,
		byName:     make(map[string]*SkillEntry, len(entries)),
		byAlias:    make(map[string]string),
		byCategory: make(map[string][]string),
	}
	for i := range v.skills {
		entry := &v.skills[i]
		v.byName[strings.ToLower(entry.Name)] = entry
		for _, alias := range entry.Aliases {
			v.byAlias[strings.ToLower(alias)] = entry.Name
		}
		v.byCategory[entry.Category] = append(v.byCategory[entry.Category], entry.Name)
	}
	return v
}

// Load reads and validates the vocabulary file at path. On any failure it
// logs the error and returns an empty vocabulary: lookups then report
// "not found" and mention search returns no results, which callers must
// treat as a valid degraded answer, never as an error.
func Load(path string, log *zap.Logger) *Vocabulary {
	vocab, err := load(path)
	if err != nil {
		log.Error("failed to load skill taxonomy, degrading to empty vocabulary",
			zap.String("path", path), zap.Error(err))
		return New(nil)
	}
	log.Info("loaded skill taxonomy",
		zap.Int("skills", len(vocab.skills)),
		zap.Int("categories", len(vocab.byCategory)))
	return vocab
}

func load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(vocabularySchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate taxonomy file: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("taxonomy file does not match schema: %s", strings.Join(details, "; "))
	}

	var doc struct {
		Skills []SkillEntry `json:"skills"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy JSON: %w", err)
	}
	return New(doc.Skills), nil
}

// Len returns the number of canonical skills in the vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.skills)
}

// Categories returns all category names present in the vocabulary.
func (v *Vocabulary) Categories() []string {
	out := make([]string, 0, len(v.byCategory))
	for category := range v.byCategory {
		out = append(out, category)
	}
	return out
}

// SkillsInCategory returns the canonical names of all skills in a category.
func (v *Vocabulary) SkillsInCategory(category string) []string {
	return v.byCategory[category]
}
