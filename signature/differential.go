package signature

import (
	"math"

	"github.com/tsawler/scriptorium/internal/filters"
	"github.com/tsawler/scriptorium/internal/stats"
	"github.com/tsawler/scriptorium/raster"
)

// differential is the multi-scale local geometry of a band: first
// derivatives, gradient magnitude and the second derivative along the
// isophote (Lvv)
type differential struct {
	lx, ly    *raster.FloatImage
	lvv       *raster.FloatImage
	magnitude *raster.FloatImage
	threshold float32
}

// newDifferential averages the derivatives of src smoothed at each sigma
func newDifferential(src *raster.FloatImage, sigmas []float64) *differential {
	w, h := src.Width, src.Height
	sum := [5]*raster.FloatImage{}
	for i := range sum {
		sum[i] = raster.NewFloatImage(w, h)
	}

	for _, sigma := range sigmas {
		lx, ly, lxx, lxy, lyy := filters.Derivatives(filters.Smooth(src, sigma))
		for i, plane := range [5]*raster.FloatImage{lx, ly, lxx, lxy, lyy} {
			for j, v := range plane.Pix {
				sum[i].Pix[j] += v / float32(len(sigmas))
			}
		}
	}

	d := &differential{
		lx:        sum[0],
		ly:        sum[1],
		lvv:       raster.NewFloatImage(w, h),
		magnitude: raster.NewFloatImage(w, h),
	}
	lxx, lxy, lyy := sum[2], sum[3], sum[4]
	for j := range d.lx.Pix {
		x, y := float64(d.lx.Pix[j]), float64(d.ly.Pix[j])
		m2 := x*x + y*y
		d.magnitude.Pix[j] = float32(math.Sqrt(m2))
		if m2 > 0 {
			vv := y*y*float64(lxx.Pix[j]) - 2*x*y*float64(lxy.Pix[j]) + x*x*float64(lyy.Pix[j])
			d.lvv.Pix[j] = float32(vv / m2)
		}
	}
	d.threshold = stats.FisherThreshold(d.magnitude.Pix)

	return d
}

// significant reports whether the gradient at (c, r) is above the band's
// Fisher threshold
func (d *differential) significant(c, r int) bool {
	m, ok := d.magnitude.Get(c, r)
	return ok && m > d.threshold
}

// sector returns the gradient orientation at (c, r) in n sectors
func (d *differential) sector(c, r, n int) int {
	return raster.AngleSector(math.Atan2(float64(d.ly.At(c, r)), float64(d.lx.At(c, r))), n)
}

// curvature returns the isophote curvature at (c, r); positive values bend
// around dark blobs
func (d *differential) curvature(c, r int) float64 {
	m := float64(d.magnitude.At(c, r))
	if m == 0 {
		return 0
	}
	return float64(d.lvv.At(c, r)) / m
}
