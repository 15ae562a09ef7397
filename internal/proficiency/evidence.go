package proficiency

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// Evidence source confidences. Certifications are the most trustworthy
// evidence even though they are not collected first; the list is re-sorted
// by confidence before truncation.
const (
	experienceConfidence  = 0.9
	projectConfidence     = 0.85
	certConfidence        = 1.0
	declarationConfidence = 0.7
	textMatchConfidence   = 0.75

	maxEvidence    = 5
	maxTextMatches = 2

	snippetLimit      = 200
	minSentenceLength = 20
)

var sentenceSplitter = regexp.MustCompile(`[.!?]\s+`)

// Evidence collects supporting snippets for a skill from the candidate's
// structured data and free text. Returns at most 5 items ordered by
// descending confidence.
func (e *Estimator) Evidence(skill string, profile *types.CandidateProfile) []types.Evidence {
	pattern := skillPattern(skill)
	var evidences []types.Evidence

	for _, exp := range profile.Experience {
		text := fmt.Sprintf("%s at %s: %s", exp.Role, exp.Company, exp.Description)
		if pattern.MatchString(text) {
			evidences = append(evidences, types.Evidence{
				Text:       truncateSnippet(text),
				Source:     "Work Experience",
				Context:    fmt.Sprintf("%s (%s - %s)", exp.Company, exp.StartDate, exp.EndDate),
				Confidence: experienceConfidence,
			})
		}
	}

	skillLower := strings.ToLower(skill)
	for _, proj := range profile.Projects {
		text := fmt.Sprintf("%s: %s", proj.Name, proj.Description)
		if pattern.MatchString(text) || containsFold(proj.Technologies, skillLower) {
			evidences = append(evidences, types.Evidence{
				Text:       truncateSnippet(text),
				Source:     "Projects",
				Context:    proj.Name,
				Confidence: projectConfidence,
			})
		}
	}

	for _, cert := range profile.Certifications {
		text := fmt.Sprintf("%s - %s", cert.Name, cert.Issuer)
		if pattern.MatchString(text) {
			evidences = append(evidences, types.Evidence{
				Text:       text,
				Source:     "Certifications",
				Context:    cert.Date,
				Confidence: certConfidence,
			})
		}
	}

	if containsFold(profile.Skills, skillLower) {
		evidences = append(evidences, types.Evidence{
			Text:       fmt.Sprintf("Listed in skills section: %s", skill),
			Source:     "Skills",
			Context:    "Technical Skills",
			Confidence: declarationConfidence,
		})
	}

	// Sentence matches from the free text, capped to avoid flooding.
	if profile.ParsedText != "" {
		textMatches := 0
		for _, sentence := range sentenceSplitter.Split(profile.ParsedText, -1) {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= minSentenceLength || !pattern.MatchString(sentence) {
				continue
			}
			if duplicatesExisting(sentence, evidences) {
				continue
			}
			evidences = append(evidences, types.Evidence{
				Text:       sentence,
				Source:     "Resume Text",
				Context:    "Direct mention",
				Confidence: textMatchConfidence,
			})
			textMatches++
			if textMatches >= maxTextMatches {
				break
			}
		}
	}

	sort.SliceStable(evidences, func(i, j int) bool {
		return evidences[i].Confidence > evidences[j].Confidence
	})
	if len(evidences) > maxEvidence {
		evidences = evidences[:maxEvidence]
	}

	e.log.Debug("collected skill evidence",
		zap.String("skill", skill), zap.Int("count", len(evidences)))
	return evidences
}

func truncateSnippet(text string) string {
	if len(text) > snippetLimit {
		return text[:snippetLimit] + "..."
	}
	return text
}

func containsFold(items []string, lower string) bool {
	for _, item := range items {
		if strings.ToLower(item) == lower {
			return true
		}
	}
	return false
}

// duplicatesExisting reports whether the sentence's leading text already
// appears in a collected evidence snippet.
func duplicatesExisting(sentence string, evidences []types.Evidence) bool {
	prefix := sentence
	if len(prefix) > 50 {
		prefix = prefix[:50]
	}
	for _, ev := range evidences {
		if strings.Contains(ev.Text, prefix) {
			return true
		}
	}
	return false
}
