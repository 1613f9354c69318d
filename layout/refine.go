package layout

import (
	"math"

	"github.com/tsawler/scriptorium/estimate"
	"github.com/tsawler/scriptorium/internal/stats"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
)

// RefineConfig holds configuration for line refinement
type RefineConfig struct {
	// FootprintWidthStrokes and FootprintHeightStrokes size the area sampled
	// at each end of a line, in stroke widths
	// Default: 2 and 3
	FootprintWidthStrokes  float64 `yaml:"footprint_width_strokes"`
	FootprintHeightStrokes float64 `yaml:"footprint_height_strokes"`

	// InsetStrokes is how far inside the end the footprint is centered
	// Default: 1
	InsetStrokes float64 `yaml:"inset_strokes"`

	// StepStrokes is the grow/shrink step in stroke widths
	// Default: 1
	StepStrokes float64 `yaml:"step_strokes"`

	// AlignLeadingFraction selects the lines, within this fraction of the
	// leading from the median start, used to fit the start regression
	// Default: 0.5
	AlignLeadingFraction float64 `yaml:"align_leading_fraction"`

	// AlignStrokes is how far, in stroke widths, a start may lie off the
	// regression before it is moved onto it: starts further left are cut,
	// starts further right are extended
	// Default: 2
	AlignStrokes float64 `yaml:"align_strokes"`

	// SimplifyStrokes is the simplification tolerance in stroke widths
	// Default: 1
	SimplifyStrokes float64 `yaml:"simplify_strokes"`
}

// DefaultRefineConfig returns sensible default configuration
func DefaultRefineConfig() RefineConfig {
	return RefineConfig{
		FootprintWidthStrokes:  2,
		FootprintHeightStrokes: 3,
		InsetStrokes:           1,
		StepStrokes:            1,
		AlignLeadingFraction:   0.5,
		AlignStrokes:           2,
		SimplifyStrokes:        1,
	}
}

// Refiner adjusts the ends of tracked median lines
type Refiner struct {
	config RefineConfig
}

// NewRefiner creates a refiner with default configuration
func NewRefiner() *Refiner {
	return &Refiner{config: DefaultRefineConfig()}
}

// NewRefinerWithConfig creates a refiner with custom configuration
func NewRefinerWithConfig(config RefineConfig) *Refiner {
	return &Refiner{config: config}
}

// endProbe samples the gradient around line ends
type endProbe struct {
	line      model.Polyline
	mask      *IlluminationMask
	gradient  *raster.Gradient
	halfW     int
	halfH     int
	inset     float64
	threshold float32
}

// footprint returns the largest non-illuminated gradient magnitude in the
// footprint centered inset pixels from x towards dir
func (e *endProbe) footprint(x float64, dir int) (float32, bool) {
	cx := int(math.Round(x + float64(dir)*e.inset))
	cy := int(math.Round(e.line.YAt(x)))
	best, found := float32(0), false
	for y := cy - e.halfH; y <= cy+e.halfH; y++ {
		for px := cx - e.halfW; px < cx+e.halfW; px++ {
			if e.mask.At(px, y) {
				continue
			}
			if m, ok := e.gradient.MagnitudeAt(px, y); ok {
				best = max(best, m)
				found = true
			}
		}
	}
	return best, found
}

// inked reports whether the end at x, facing inward along dir, sits on ink.
// A line whose footprints are all equally strong has its threshold at that
// strength, so the comparison is inclusive.
func (e *endProbe) inked(x float64, dir int) bool {
	m, ok := e.footprint(x, dir)
	return ok && m > 0 && m >= e.threshold
}

// zoneLimits returns the x range a line of zone may occupy: the midpoints
// towards the neighbouring zones, or the page edges when left or right is nil
func zoneLimits(zone model.ColumnZone, left, right *model.ColumnZone, width int) (lo, hi float64) {
	lo = 0
	if left != nil {
		lo = float64(left.Rect.Max.X+zone.Rect.Min.X) / 2
	}
	hi = float64(width - 1)
	if right != nil {
		hi = float64(zone.Rect.Max.X+right.Rect.Min.X)/2 - 1
	}
	return lo, hi
}

// Refine grows or shrinks both ends of line until they sit on the last inked
// footprint. Growth stops at illuminated areas and at the midpoint towards
// the neighbouring zones (or the page edge when left or right is nil). It
// reports false when the refined span collapses.
func (r *Refiner) Refine(line model.Polyline, zone model.ColumnZone, left, right *model.ColumnZone,
	mask *IlluminationMask, gradient *raster.Gradient, metrics estimate.Metrics) (model.Polyline, bool) {
	if !line.IsValid() || gradient == nil {
		return nil, false
	}
	cfg := r.config
	sw := math.Max(metrics.StrokeWidth, 1)
	step := math.Max(1, cfg.StepStrokes*sw)

	lo, hi := zoneLimits(zone, left, right, gradient.Width())

	probe := &endProbe{
		line:     line,
		mask:     mask,
		gradient: gradient,
		halfW:    max(1, int(math.Round(cfg.FootprintWidthStrokes*sw/2))),
		halfH:    max(1, int(math.Round(cfg.FootprintHeightStrokes*sw/2))),
		inset:    cfg.InsetStrokes * sw,
	}

	first, last := line.First().X, line.Last().X
	mid := (first + last) / 2

	// The first illuminated hit on either side of the midpoint caps growth
	capLo, capHi := lo, hi
	for x := math.Floor(mid); x >= lo; x-- {
		if mask.At(int(x), int(math.Round(line.YAt(x)))) {
			capLo = x + 1
			break
		}
	}
	for x := math.Ceil(mid); x <= hi; x++ {
		if mask.At(int(x), int(math.Round(line.YAt(x)))) {
			capHi = x - 1
			break
		}
	}

	// Per-line threshold halfway between the weakest and strongest footprint
	var samples []float32
	for x := first; x <= last; x += step {
		if m, ok := probe.footprint(x, 0); ok {
			samples = append(samples, m)
		}
	}
	if len(samples) == 0 {
		return nil, false
	}
	smin, smax := samples[0], samples[0]
	for _, s := range samples[1:] {
		smin = min(smin, s)
		smax = max(smax, s)
	}
	if smax <= 0 {
		return nil, false
	}
	probe.threshold = (smin + smax) / 2

	start := math.Max(first, capLo)
	if probe.inked(start, 1) {
		for start-step >= capLo && probe.inked(start-step, 1) {
			start -= step
		}
	} else {
		for start < mid && !probe.inked(start, 1) {
			start += step
		}
	}

	end := math.Min(last, capHi)
	if probe.inked(end, -1) {
		for end+step <= capHi && probe.inked(end+step, -1) {
			end += step
		}
	} else {
		for end > mid && !probe.inked(end, -1) {
			end -= step
		}
	}

	if end <= start {
		return nil, false
	}
	return extendTo(line, start, end), true
}

// extendTo clips line to [x0, x1], extending it flat where the range reaches
// past its ends
func extendTo(line model.Polyline, x0, x1 float64) model.Polyline {
	first, last := line.First(), line.Last()
	inner := line.Clip(math.Max(x0, first.X), math.Min(x1, last.X))
	if len(inner) == 0 {
		return model.Polyline{{X: x0, Y: line.YAt(x0)}, {X: x1, Y: line.YAt(x1)}}
	}

	var out model.Polyline
	if x0 < first.X {
		out = append(out, model.Point{X: x0, Y: first.Y})
	}
	out = append(out, inner...)
	if x1 > last.X {
		out = append(out, model.Point{X: x1, Y: last.Y})
	}
	return out
}

// AlignStarts moves line starts lying more than AlignStrokes stroke widths
// off the column's start regression onto the regression, then simplifies the
// moved lines again. A start left of the regression overruns into the margin
// and is cut; a start right of it is extended, but never left of lo. The
// regression of start x on start y is fitted over lines starting within
// AlignLeadingFraction of the leading from the median start. The returned
// slice is parallel to lines.
func (r *Refiner) AlignStarts(lines []model.Polyline, leading, strokeWidth, lo float64) []model.Polyline {
	out := make([]model.Polyline, len(lines))
	copy(out, lines)
	if len(lines) == 0 {
		return out
	}

	starts := make([]float64, 0, len(lines))
	for _, l := range lines {
		if len(l) > 0 {
			starts = append(starts, l.First().X)
		}
	}
	if len(starts) == 0 {
		return out
	}
	median := stats.Median(starts)

	var fit stats.Regression
	for _, l := range lines {
		if len(l) > 0 && math.Abs(l.First().X-median) <= r.config.AlignLeadingFraction*leading {
			fit.Add(l.First().Y, l.First().X)
		}
	}
	if fit.N() == 0 {
		return out
	}

	sw := math.Max(strokeWidth, 1)
	slack := r.config.AlignStrokes * sw
	for i, l := range lines {
		if !l.IsValid() {
			continue
		}
		first := l.First()
		at := math.Max(fit.Predict(first.Y), lo)

		var moved model.Polyline
		switch {
		case first.X < at-slack:
			moved = l.Clip(at, l.Last().X)
		case first.X > at+slack:
			moved = append(model.Polyline{{X: at, Y: first.Y}}, l...)
		default:
			continue
		}
		if !moved.IsValid() {
			continue
		}
		out[i] = Simplify(moved, r.config.SimplifyStrokes*sw)
	}
	return out
}
