package aggregator

import (
	"math"
	"math/rand"
)

// smoothingKernel models sampling jitter around the true ping time. Each
// offset is a fraction of the sampling interval; its weight follows a
// Gaussian of width sigma, renormalized so the weights sum to 1. With
// smoothing disabled the kernel collapses to a single offset of 0 with
// weight 1.
type smoothingKernel struct {
	offsets []float64
	weights []float64
}

// newSmoothingKernel builds the offset/weight vectors. Offsets span roughly
// [-2*sigma, 2*sigma) in steps of (4*sigma+1)/15, each disturbed by uniform
// noise in [-0.1, 0.1) from rng.
func newSmoothingKernel(enabled bool, sigma float64, rng *rand.Rand) smoothingKernel {
	if !enabled {
		return smoothingKernel{offsets: []float64{0}, weights: []float64{1}}
	}

	step := (4*sigma + 1) / 15
	var offsets []float64
	for o := -2 * sigma; o < 2*sigma; o += step {
		offsets = append(offsets, o+rng.Float64()*0.2-0.1)
	}

	weights := make([]float64, len(offsets))
	var sum float64
	for i, o := range offsets {
		weights[i] = math.Exp(-o * o / (sigma * sigma))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}

	return smoothingKernel{offsets: offsets, weights: weights}
}
