package layout

import (
	"image"

	"github.com/tsawler/scriptorium/estimate"
	"github.com/tsawler/scriptorium/internal/filters"
	"github.com/tsawler/scriptorium/internal/stats"
	"github.com/tsawler/scriptorium/raster"
)

// IlluminationMask marks decorated areas (coloured initials, rubrics) of one
// column. It is stored at tracker resolution and answers queries in page
// coordinates.
type IlluminationMask struct {
	cells  *raster.Mask
	origin image.Point
	bucket int
}

// At reports whether page pixel (x, y) is illuminated. Pixels outside the
// column are never illuminated.
func (m *IlluminationMask) At(x, y int) bool {
	if m == nil || x < m.origin.X || y < m.origin.Y {
		return false
	}
	return m.cells.At((x-m.origin.X)/m.bucket, y-m.origin.Y)
}

// Bounds returns the page area covered by the mask
func (m *IlluminationMask) Bounds() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return image.Rect(m.origin.X, m.origin.Y,
		m.origin.X+m.cells.Width*m.bucket, m.origin.Y+m.cells.Height)
}

// Count returns the number of illuminated cells
func (m *IlluminationMask) Count() int {
	if m == nil {
		return 0
	}
	return m.cells.Count()
}

// cell reports whether tracker cell (u, v) is illuminated
func (m *IlluminationMask) cell(u, v int) bool {
	return m != nil && m.cells.At(u, v)
}

// buildIllumination classifies the darkest pixel of every bucket by colour,
// keeps tall components and bridges short gaps along rows.
func buildIllumination(rgb *image.NRGBA, red *filters.Reduction, metrics estimate.Metrics, cfg TrackerConfig) *IlluminationMask {
	w, h := red.Values.Width, red.Values.Height
	candidates := raster.NewMask(w, h)

	hueLimit := cfg.HueSigmas * metrics.HueSpread
	for v := 0; v < h; v++ {
		py := red.Origin.Y + v
		for u := 0; u < w; u++ {
			px := red.ArgX[v*w+u]
			hue, sat, val := estimate.PixelHSV(rgb, px, py)
			switch {
			case sat >= cfg.MinHueSaturation && stats.CircularDistance(hue, metrics.Hue) > hueLimit:
				candidates.Set(u, v, true)
			case sat >= cfg.HighSaturation && val >= cfg.HighValue:
				candidates.Set(u, v, true)
			}
		}
	}

	mask := &IlluminationMask{
		cells:  raster.NewMask(w, h),
		origin: red.Origin,
		bucket: red.Bucket,
	}

	minHeight := cfg.IlluminationLeadings * metrics.Leading
	for _, c := range candidates.Components() {
		if float64(c.Height()) <= minHeight {
			continue
		}
		for _, p := range c.Pixels {
			mask.cells.Set(p[0], p[1], true)
		}
	}

	// Bridge broken strokes of the same initial
	maxGap := cfg.GapLeadingFraction * metrics.Leading / float64(red.Bucket)
	for v := 0; v < h; v++ {
		last := -1
		for u := 0; u < w; u++ {
			if !mask.cells.At(u, v) {
				continue
			}
			if last >= 0 && u-last > 1 && float64(u-last-1) < maxGap {
				for g := last + 1; g < u; g++ {
					mask.cells.Set(g, v, true)
				}
			}
			last = u
		}
	}

	return mask
}
