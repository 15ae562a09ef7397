package scoring

import (
	"math"

	"go.uber.org/zap"

	"github.com/jonathan/skillsync-engine/internal/types"
)

// weightTolerance is how far a weight sum may drift from 1.0 before
// re-normalization kicks in.
const weightTolerance = 0.01

// RubricWeights combine the five component scores into the overall score.
// They must sum to 1.0; sets that do not are re-normalized before use.
type RubricWeights struct {
	Semantic   float64 `json:"semantic" validate:"gte=0"`
	Skills     float64 `json:"skills" validate:"gte=0"`
	Experience float64 `json:"experience" validate:"gte=0"`
	Education  float64 `json:"education" validate:"gte=0"`
	Projects   float64 `json:"projects" validate:"gte=0"`
}

// DefaultWeights returns the standard rubric weighting.
func DefaultWeights() RubricWeights {
	return RubricWeights{
		Semantic:   0.35,
		Skills:     0.30,
		Experience: 0.20,
		Education:  0.10,
		Projects:   0.05,
	}
}

// Sum returns the total of all weights.
func (w RubricWeights) Sum() float64 {
	return w.Semantic + w.Skills + w.Experience + w.Education + w.Projects
}

// Normalized returns weights scaled so they sum to 1.0. An all-zero weight
// set falls back to the defaults.
func (w RubricWeights) Normalized() RubricWeights {
	sum := w.Sum()
	if sum == 0 {
		return DefaultWeights()
	}
	return RubricWeights{
		Semantic:   w.Semantic / sum,
		Skills:     w.Skills / sum,
		Experience: w.Experience / sum,
		Education:  w.Education / sum,
		Projects:   w.Projects / sum,
	}
}

// Aggregate computes the weighted overall score from the component scores.
// Weight sets off by more than the tolerance are re-normalized (and logged);
// un-normalized weights are never used silently.
func Aggregate(scores types.ComponentScores, weights RubricWeights, log *zap.Logger) float64 {
	if sum := weights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		if log != nil {
			log.Warn("rubric weights do not sum to 1.0, re-normalizing",
				zap.Float64("sum", sum))
		}
		weights = weights.Normalized()
	}
	return scores.Semantic*weights.Semantic +
		scores.Skills*weights.Skills +
		scores.Experience*weights.Experience +
		scores.Education*weights.Education +
		scores.Projects*weights.Projects
}

// defaultConfidence applies when no component confidences are available.
// A medium default avoids implying total distrust of the result.
const defaultConfidence = 0.5

// Confidence averages the supplied per-component confidences into a [0,1]
// overall confidence; with no inputs it returns the medium default.
func Confidence(confidences []float64) float64 {
	if len(confidences) == 0 {
		return defaultConfidence
	}
	total := 0.0
	for _, c := range confidences {
		total += c
	}
	return total / float64(len(confidences))
}

// Thresholds map an overall score to a recommendation tier. Values are
// configuration input, not fixed policy.
type Thresholds struct {
	Shortlist float64 `json:"shortlist" validate:"gte=0,lte=100"`
	Maybe     float64 `json:"maybe" validate:"gte=0,lte=100"`
}

// DefaultThresholds returns the standard recommendation cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{Shortlist: 75, Maybe: 50}
}

// Recommend maps an overall score to a recommendation tier.
func Recommend(score float64, t Thresholds) string {
	switch {
	case score >= t.Shortlist:
		return types.RecommendShortlist
	case score >= t.Maybe:
		return types.RecommendMaybe
	default:
		return types.RecommendReject
	}
}
