package model

import (
	"image"
	"math"
)

// Point represents a 2D point in page pixel coordinates
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// SegmentDistance returns the distance from p to the segment a-b
func (p Point) SegmentDistance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	return p.Distance(Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// ImagePoint rounds the point to the nearest pixel
func (p Point) ImagePoint() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// ColumnZone is one vertical band of a page holding a single text column
type ColumnZone struct {
	// Index of the zone (0-based, left to right)
	Index int

	// Rect is the zone in page pixels; it spans the full page height
	Rect image.Rectangle
}

// Width returns the width of the zone in pixels
func (z ColumnZone) Width() int {
	return z.Rect.Dx()
}

// CenterX returns the horizontal center of the zone
func (z ColumnZone) CenterX() float64 {
	return float64(z.Rect.Min.X+z.Rect.Max.X) / 2
}
