package layout

import (
	"math"

	"github.com/tsawler/scriptorium/internal/stats"
	"github.com/tsawler/scriptorium/model"
)

// Simplify drops vertices of p while every original point stays within
// tolerance of the simplified line. Points are accumulated under a running
// linear fit; when a point strays from the fit or from the chord back to the
// last kept vertex, the previous point becomes a vertex. The first and last
// points are always kept.
func Simplify(p model.Polyline, tolerance float64) model.Polyline {
	if len(p) <= 2 {
		return p.Clone()
	}
	tolerance = math.Max(tolerance, 0)

	out := model.Polyline{p[0]}
	anchor := 0
	var fit stats.Regression
	fit.Add(p[0].X, p[0].Y)

	for i := anchor + 1; i < len(p); i++ {
		fit.Add(p[i].X, p[i].Y)
		if withinFit(p, anchor, i, &fit, tolerance) {
			continue
		}
		// i-1 > anchor: a two-point span always fits
		anchor = i - 1
		out = append(out, p[anchor])
		fit.Reset()
		fit.Add(p[anchor].X, p[anchor].Y)
		fit.Add(p[i].X, p[i].Y)
	}

	return append(out, p[len(p)-1])
}

// withinFit reports whether the points anchor..end are all close to both the
// running fit and the chord from p[anchor] to p[end]
func withinFit(p model.Polyline, anchor, end int, fit *stats.Regression, tolerance float64) bool {
	a, b := p[anchor], p[end]
	intercept, slope := fit.Fit()
	// Perpendicular distance to y = intercept + slope·x
	scale := math.Sqrt(1 + slope*slope)
	for k := anchor + 1; k < end; k++ {
		if p[k].SegmentDistance(a, b) > tolerance {
			return false
		}
		if math.Abs(p[k].Y-intercept-slope*p[k].X)/scale > tolerance {
			return false
		}
	}
	return true
}
