// Package embedding provides vector comparison and the provider boundary
// for externally computed text embeddings.
package embedding

import (
	"context"
	"math"
)

// Vector is a dense embedding vector. The engine only ever consumes vectors
// already materialized by an external provider.
type Vector []float64

// Dimensions returns the dimensionality of the vector.
func (v Vector) Dimensions() int {
	return len(v)
}

// IsZero reports whether the vector is empty or has zero norm.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Returns 0 when either vector is empty, mismatched in length, or has zero
// norm; it never divides by zero.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Provider generates and looks up embeddings for entities. Implementations
// wrap an external embedding service; the scoring engine itself never calls
// the network.
type Provider interface {
	// Embed computes an embedding for the given text.
	Embed(ctx context.Context, text string) (Vector, error)
	// Lookup retrieves a previously stored embedding by entity ID.
	// Returns a nil vector (and nil error) when none is stored.
	Lookup(ctx context.Context, entityID string) (Vector, error)
}
