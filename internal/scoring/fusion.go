package scoring

import "math"

// maxPenalty is the number of points a fully biased article (|score|=1)
// loses from its trust index.
const maxPenalty = 30

// Penalty converts a signed bias score in [-1,1] into an integer deduction,
// scaling the magnitude linearly and rounding to nearest.
func Penalty(biasScore float64) int {
	mag := math.Abs(biasScore)
	if mag > 1 {
		mag = 1
	}
	return int(math.Round(mag * maxPenalty))
}

// Fuse combines a bias score and a trust index into the final credibility
// score: the trust index minus the bias penalty, clamped to [0,100].
func Fuse(biasScore float64, trustIndex int) int {
	return clamp(clamp(trustIndex, 0, 100)-Penalty(biasScore), 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
