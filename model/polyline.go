package model

import (
	"image"
	"math"
	"sort"
)

// Polyline is an ordered sequence of points that is strictly increasing in X.
// Between vertices the curve is interpolated linearly.
type Polyline []Point

// IsValid reports whether the polyline has at least two points and strictly
// increasing X coordinates
func (p Polyline) IsValid() bool {
	if len(p) < 2 {
		return false
	}
	for i := 1; i < len(p); i++ {
		if p[i].X <= p[i-1].X {
			return false
		}
	}
	return true
}

// First returns the first point (zero Point for an empty polyline)
func (p Polyline) First() Point {
	if len(p) == 0 {
		return Point{}
	}
	return p[0]
}

// Last returns the last point (zero Point for an empty polyline)
func (p Polyline) Last() Point {
	if len(p) == 0 {
		return Point{}
	}
	return p[len(p)-1]
}

// Span returns the horizontal extent of the polyline
func (p Polyline) Span() float64 {
	if len(p) < 2 {
		return 0
	}
	return p.Last().X - p.First().X
}

// YAt interpolates the polyline at x. Values outside the polyline's X range
// take the Y of the nearest end point.
func (p Polyline) YAt(x float64) float64 {
	switch {
	case len(p) == 0:
		return 0
	case x <= p[0].X:
		return p[0].Y
	case x >= p[len(p)-1].X:
		return p[len(p)-1].Y
	}

	i := sort.Search(len(p), func(i int) bool { return p[i].X >= x })
	a, b := p[i-1], p[i]
	t := (x - a.X) / (b.X - a.X)
	return a.Y + t*(b.Y-a.Y)
}

// Clone returns a copy of the polyline
func (p Polyline) Clone() Polyline {
	if p == nil {
		return nil
	}
	out := make(Polyline, len(p))
	copy(out, p)
	return out
}

// Clip returns the part of the polyline between x0 and x1, interpolating new
// end points. The result is empty when the range does not overlap the line.
func (p Polyline) Clip(x0, x1 float64) Polyline {
	if len(p) == 0 || x1 <= x0 {
		return nil
	}
	x0 = math.Max(x0, p.First().X)
	x1 = math.Min(x1, p.Last().X)
	if x1 <= x0 {
		return nil
	}

	out := Polyline{{X: x0, Y: p.YAt(x0)}}
	for _, pt := range p {
		if pt.X > x0 && pt.X < x1 {
			out = append(out, pt)
		}
	}
	return append(out, Point{X: x1, Y: p.YAt(x1)})
}

// Bounds returns the integer bounding rectangle of the polyline
func (p Polyline) Bounds() image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
}

// MaxDeviation returns the largest distance from any point of other to the
// nearest segment of p
func (p Polyline) MaxDeviation(other Polyline) float64 {
	if len(p) == 0 {
		return math.Inf(1)
	}
	worst := 0.0
	for _, pt := range other {
		best := pt.Distance(p[0])
		for i := 1; i < len(p); i++ {
			best = math.Min(best, pt.SegmentDistance(p[i-1], p[i]))
		}
		worst = math.Max(worst, best)
	}
	return worst
}
