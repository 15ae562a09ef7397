// Package cache decides whether cached score results are still valid via
// content hashing, and drives batch precomputation over ranked candidates.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// ContentHash returns the SHA-256 hex digest of the UTF-8 bytes of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// JobContent builds the normalized content a job's hash covers:
// title, description, and the joined required-skill list.
func JobContent(job *types.JobRequirement) string {
	var sb strings.Builder
	sb.WriteString(job.Title)
	sb.WriteString("\n")
	sb.WriteString(job.Description)
	if len(job.RequiredSkills) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(job.RequiredSkills, " "))
	}
	return sb.String()
}

// CandidateContent builds the normalized content a candidate's hash covers:
// the full parsed resume text.
func CandidateContent(candidate *types.CandidateProfile) string {
	return candidate.ParsedText
}

// PairContentHash hashes the combined candidate and job content. A cached
// score for the pair is hash-valid only while this digest is unchanged.
func PairContentHash(candidate *types.CandidateProfile, job *types.JobRequirement) string {
	return ContentHash(CandidateContent(candidate) + "\x00" + JobContent(job))
}
