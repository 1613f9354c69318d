package signature

import (
	"math"

	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
)

// markDots tags the x-span of every blob whose edge orientations are spread
// evenly around the circle and which fills its bounding box
func (e *Extractor) markDots(tags []model.Symbol, d *differential, width, height int) {
	convex := raster.NewMask(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			if d.significant(c, r) && d.lvv.At(c, r) > 0 {
				convex.Set(c, r, true)
			}
		}
	}

	for _, comp := range convex.Components() {
		if comp.Area() < e.config.MinDotArea {
			continue
		}
		if !isDot(comp, d, e.config.DotFlatness, e.config.DotFill) {
			continue
		}
		for c := comp.MinX; c <= comp.MaxX; c++ {
			tags[c] = model.SymbolDot
		}
	}
}

// isDot applies the flatness and fill tests to a component
func isDot(comp raster.Component, d *differential, flatness, fill float64) bool {
	if comp.Fill() < fill {
		return false
	}
	var hist [8]float64
	for _, p := range comp.Pixels {
		hist[d.sector(p[0], p[1], 8)]++
	}
	return orientationMSD(hist[:], float64(comp.Area())) <= flatness
}

// orientationMSD returns the mean-square deviation of a histogram from the
// uniform distribution, relative to the uniform bin height
func orientationMSD(hist []float64, total float64) float64 {
	if total == 0 {
		return math.Inf(1)
	}
	n := float64(len(hist))
	msd := 0.0
	for _, h := range hist {
		dev := h*n/total - 1
		msd += dev * dev
	}
	return msd / n
}

// markCurves tags the x-span of every large left- or right-facing edge
// component that mostly bends around ink
func (e *Extractor) markCurves(tags []model.Symbol, d *differential, width, height int, sw float64) {
	minArea := int(math.Ceil(e.config.MinCurveArea * sw * sw))
	minCurvature := e.config.ConvexCurvature / sw

	for _, side := range []struct {
		sector int
		symbol model.Symbol
	}{
		{facingLeft, model.SymbolLeftCurve},
		{facingRight, model.SymbolRightCurve},
	} {
		edges := raster.NewMask(width, height)
		for r := 0; r < height; r++ {
			for c := 0; c < width; c++ {
				if d.significant(c, r) && d.sector(c, r, 4) == side.sector {
					edges.Set(c, r, true)
				}
			}
		}

		for _, comp := range edges.Components() {
			if comp.Area() < minArea {
				continue
			}
			convex := 0
			for _, p := range comp.Pixels {
				if d.curvature(p[0], p[1]) > minCurvature {
					convex++
				}
			}
			if float64(convex) < e.config.Convexity*float64(comp.Area()) {
				continue
			}
			for c := comp.MinX; c <= comp.MaxX; c++ {
				tags[c] = side.symbol
			}
		}
	}
}
