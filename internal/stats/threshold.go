package stats

import "math"

// FisherThreshold returns the value splitting values into two classes with
// minimal within-class variance (Otsu/Fisher). The values are binned into 256
// bins between their minimum and maximum. A constant input returns that
// constant.
func FisherThreshold(values []float32) float32 {
	if len(values) == 0 {
		return 0
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi <= lo {
		return lo
	}

	const bins = 256
	var hist [bins]float64
	scale := float64(bins-1) / float64(hi-lo)
	for _, v := range values {
		hist[int(float64(v-lo)*scale)]++
	}

	total := float64(len(values))
	sumAll := 0.0
	for i, n := range hist {
		sumAll += float64(i) * n
	}

	best, bestVar := 0, -1.0
	wB, sumB := 0.0, 0.0
	for i := 0; i < bins-1; i++ {
		wB += hist[i]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * hist[i]
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = i
		}
	}

	// The split lies between bin best and best+1
	return lo + float32((float64(best)+1)/scale)
}

// TwoMeansSplit iteratively splits values into two clusters and returns the
// midpoint of their means. A constant input returns that constant.
func TwoMeansSplit(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	t := (lo + hi) / 2

	for iter := 0; iter < 64; iter++ {
		var sumA, sumB float64
		var nA, nB int
		for _, v := range values {
			if v <= t {
				sumA += v
				nA++
			} else {
				sumB += v
				nB++
			}
		}
		if nA == 0 || nB == 0 {
			return t
		}
		next := (sumA/float64(nA) + sumB/float64(nB)) / 2
		if math.Abs(next-t) < 1e-9 {
			return next
		}
		t = next
	}

	return t
}
