package filters

import "math"

// GaussianKernel returns a normalized Gaussian of radius ceil(3σ). A
// non-positive sigma yields the identity kernel.
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}

	radius := int(math.Ceil(3 * sigma))
	k := make([]float32, 2*radius+1)
	sum := 0.0
	for i := range k {
		d := float64(i - radius)
		v := math.Exp(-d * d / (2 * sigma * sigma))
		k[i] = float32(v)
		sum += v
	}
	for i := range k {
		k[i] = float32(float64(k[i]) / sum)
	}
	return k
}

// GaussianDerivativeKernel returns the first derivative of a Gaussian,
// normalized so that correlating it with a unit ramp yields 1. Positive output
// means intensity increases along the axis.
func GaussianDerivativeKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{-0.5, 0, 0.5}
	}

	radius := int(math.Ceil(3 * sigma))
	k := make([]float32, 2*radius+1)
	norm := 0.0
	for i := range k {
		d := float64(i - radius)
		v := d * math.Exp(-d*d/(2*sigma*sigma))
		k[i] = float32(v)
		norm += d * v
	}
	for i := range k {
		k[i] = float32(float64(k[i]) / norm)
	}
	return k
}
