// Package scoring computes the five component scores for a candidate-job
// pair and aggregates them into a final weighted score.
package scoring

import (
	"github.com/jonathan/skillsync-engine/internal/embedding"
)

// Semantic scores the semantic similarity of two embedding vectors on a
// 0-100 scale. Missing vectors or zero norms score 0; the function never
// divides by zero and never fails.
func Semantic(candidate, job embedding.Vector) float64 {
	if len(candidate) == 0 || len(job) == 0 {
		return 0
	}
	score := embedding.Cosine(candidate, job) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
