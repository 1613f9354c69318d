package stats

import (
	"math"
	"sort"
)

// Median returns the median of xs (mean of the middle pair for even lengths)
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// Mean returns the arithmetic mean of xs
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Regression is a running least-squares fit of y = Intercept + Slope·x
type Regression struct {
	n                float64
	sx, sy, sxx, sxy float64
}

// Add adds one observation
func (r *Regression) Add(x, y float64) {
	r.n++
	r.sx += x
	r.sy += y
	r.sxx += x * x
	r.sxy += x * y
}

// Reset clears all observations
func (r *Regression) Reset() {
	*r = Regression{}
}

// N returns the number of observations
func (r *Regression) N() int {
	return int(r.n)
}

// Fit returns the intercept and slope. With fewer than two distinct x values
// the slope is zero and the intercept is the mean y.
func (r *Regression) Fit() (intercept, slope float64) {
	if r.n == 0 {
		return 0, 0
	}
	den := r.n*r.sxx - r.sx*r.sx
	if math.Abs(den) < 1e-12 {
		return r.sy / r.n, 0
	}
	slope = (r.n*r.sxy - r.sx*r.sy) / den
	intercept = (r.sy - slope*r.sx) / r.n
	return intercept, slope
}

// Predict evaluates the fit at x
func (r *Regression) Predict(x float64) float64 {
	a, b := r.Fit()
	return a + b*x
}

// Smooth convolves xs with a normalized Gaussian of the given sigma, clamping
// at the ends
func Smooth(xs []float64, sigma float64) []float64 {
	out := make([]float64, len(xs))
	if sigma <= 0 || len(xs) == 0 {
		copy(out, xs)
		return out
	}

	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}

	last := len(xs) - 1
	for i := range xs {
		acc := 0.0
		for k, w := range kernel {
			j := i + k - radius
			if j < 0 {
				j = 0
			} else if j > last {
				j = last
			}
			acc += w * xs[j]
		}
		out[i] = acc / sum
	}
	return out
}

// LocalMaxima returns the indexes of the local maxima of xs whose value is at
// least minValue. A plateau yields its center index.
func LocalMaxima(xs []float64, minValue float64) []int {
	var peaks []int
	n := len(xs)
	for i := 0; i < n; {
		j := i
		for j+1 < n && xs[j+1] == xs[i] {
			j++
		}
		leftLower := i == 0 || xs[i-1] < xs[i]
		rightLower := j == n-1 || xs[j+1] < xs[j]
		if leftLower && rightLower && xs[i] >= minValue && xs[i] > 0 {
			peaks = append(peaks, (i+j)/2)
		}
		i = j + 1
	}
	return peaks
}

// CircularDistance returns the distance between two angles in degrees on the
// 360° circle
func CircularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
