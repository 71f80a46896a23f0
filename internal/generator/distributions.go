package generator

import (
	"math"
	"math/rand/v2"
)

// normal draws from N(mean, sd).
func normal(r *rand.Rand, mean, sd float64) float64 {
	return mean + sd*r.NormFloat64()
}

// exponential draws from an exponential distribution with the given mean.
func exponential(r *rand.Rand, mean float64) float64 {
	return mean * r.ExpFloat64()
}

// poisson draws from Poisson(lambda) by multiplying uniforms (Knuth).
// All rates used here are small, so the loop stays short.
func poisson(r *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := r.Float64()
	for p > limit {
		k++
		p *= r.Float64()
	}
	return k
}

// gamma draws from Gamma(shape, 1) using Marsaglia and Tsang's method.
// Shapes below one are boosted with the usual U^(1/shape) correction.
func gamma(r *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := r.Float64()
		return gamma(r, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := r.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := r.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// beta draws from Beta(a, b) as the ratio of two gamma variates.
func beta(r *rand.Rand, a, b float64) float64 {
	x := gamma(r, a)
	y := gamma(r, b)
	return x / (x + y)
}

// weightedIndex picks an index with probability proportional to weights.
func weightedIndex(r *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	u := r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return i
		}
	}
	return len(weights) - 1
}

// choose picks one of options with the matching weights.
func choose[T any](r *rand.Rand, options []T, weights []float64) T {
	return options[weightedIndex(r, weights)]
}

// uniformChoice picks one of options with equal probability.
func uniformChoice[T any](r *rand.Rand, options []T) T {
	return options[r.IntN(len(options))]
}

// intBetween draws an integer uniformly from [lo, hi].
func intBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
