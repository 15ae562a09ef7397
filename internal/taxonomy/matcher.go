package taxonomy

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// Match confidences by evidence strength. Exact canonical-name hits beat
// alias hits, which beat fuzzy hits; the passes run in this fixed order so
// stronger evidence is never overwritten by weaker fuzzy evidence.
const (
	exactConfidence = 1.0
	aliasConfidence = 0.95

	// DefaultMinConfidence is the fuzzy-match acceptance floor used when the
	// caller does not supply one.
	DefaultMinConfidence = 0.75

	// maxWindowWords bounds the contiguous word windows tried in the fuzzy pass.
	maxWindowWords = 3
)

var levParams = levenshtein.NewParams()

// Mention is one skill located in free text.
type Mention struct {
	Skill      string  `json:"skill"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	MatchType  string  `json:"match_type"` // exact | alias | fuzzy
}

// Matcher resolves free-text skill tokens against the canonical vocabulary.
type Matcher struct {
	vocab *Vocabulary
}

// NewMatcher creates a matcher over the given vocabulary.
func NewMatcher(vocab *Vocabulary) *Matcher {
	return &Matcher{vocab: vocab}
}

// Normalize resolves a name or alias to its canonical skill name.
// Unknown skills are returned title-cased; they remain usable downstream.
func (m *Matcher) Normalize(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if entry, ok := m.vocab.byName[lower]; ok {
		return entry.Name
	}
	if canonical, ok := m.vocab.byAlias[lower]; ok {
		return canonical
	}
	return titleCase(name)
}

// CategoryOf returns the category of a skill (by name or alias).
func (m *Matcher) CategoryOf(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if entry, ok := m.vocab.byName[lower]; ok {
		return entry.Category, true
	}
	if canonical, ok := m.vocab.byAlias[lower]; ok {
		return m.vocab.byName[strings.ToLower(canonical)].Category, true
	}
	return "", false
}

// Aliases returns all aliases of a skill (by name or alias).
func (m *Matcher) Aliases(name string) []string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if entry, ok := m.vocab.byName[lower]; ok {
		return entry.Aliases
	}
	if canonical, ok := m.vocab.byAlias[lower]; ok {
		return m.vocab.byName[strings.ToLower(canonical)].Aliases
	}
	return nil
}

// IsKnown reports whether the name resolves to a vocabulary entry.
func (m *Matcher) IsKnown(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if _, ok := m.vocab.byName[lower]; ok {
		return true
	}
	_, ok := m.vocab.byAlias[lower]
	return ok
}

// Ratio returns the normalized edit-distance similarity of two strings
// in [0,1], case-insensitive.
func Ratio(a, b string) float64 {
	return levenshtein.Similarity(strings.ToLower(a), strings.ToLower(b), levParams)
}

// FindMentions locates vocabulary skills inside free text. Matching runs in
// three passes, each skipping skills already matched: exact substring of the
// canonical name (confidence 1.0), exact substring of an alias (0.95), then
// fuzzy similarity between the canonical name and every contiguous 1-3 word
// window of the text, accepted at or above minConfidence (pass <= 0 for the
// default 0.75). Results are deduplicated by canonical name and ordered by
// descending confidence, then name.
func (m *Matcher) FindMentions(text string, minConfidence float64) []Mention {
	if text == "" || m.vocab.Len() == 0 {
		return nil
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	textLower := strings.ToLower(text)
	matched := make(map[string]bool)
	var mentions []Mention

	// Pass 1: exact canonical-name substrings.
	for i := range m.vocab.skills {
		entry := &m.vocab.skills[i]
		if matched[entry.Name] {
			continue
		}
		if strings.Contains(textLower, strings.ToLower(entry.Name)) {
			mentions = append(mentions, Mention{
				Skill:      entry.Name,
				Category:   entry.Category,
				Confidence: exactConfidence,
				MatchType:  types.MatchExact,
			})
			matched[entry.Name] = true
		}
	}

	// Pass 2: alias substrings.
	for i := range m.vocab.skills {
		entry := &m.vocab.skills[i]
		if matched[entry.Name] {
			continue
		}
		for _, alias := range entry.Aliases {
			if strings.Contains(textLower, strings.ToLower(alias)) {
				mentions = append(mentions, Mention{
					Skill:      entry.Name,
					Category:   entry.Category,
					Confidence: aliasConfidence,
					MatchType:  types.MatchAlias,
				})
				matched[entry.Name] = true
				break
			}
		}
	}

	// Pass 3: fuzzy similarity against word windows.
	windows := wordWindows(textLower, maxWindowWords)
	for i := range m.vocab.skills {
		entry := &m.vocab.skills[i]
		if matched[entry.Name] {
			continue
		}
		nameLower := strings.ToLower(entry.Name)
		for _, window := range windows {
			ratio := levenshtein.Similarity(window, nameLower, levParams)
			if ratio >= minConfidence {
				mentions = append(mentions, Mention{
					Skill:      entry.Name,
					Category:   entry.Category,
					Confidence: ratio,
					MatchType:  types.MatchFuzzy,
				})
				matched[entry.Name] = true
				break
			}
		}
	}

	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Confidence != mentions[j].Confidence {
			return mentions[i].Confidence > mentions[j].Confidence
		}
		return mentions[i].Skill < mentions[j].Skill
	})
	return mentions
}

// wordWindows generates all contiguous 1..maxWords word windows of text.
func wordWindows(text string, maxWords int) []string {
	words := strings.Fields(text)
	windows := make([]string, 0, len(words)*maxWords)
	for i := range words {
		for n := 1; n <= maxWords && i+n <= len(words); n++ {
			windows = append(windows, strings.Join(words[i:i+n], " "))
		}
	}
	return windows
}

// titleCase capitalizes the first letter of each word, lowercasing the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
