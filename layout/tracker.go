package layout

import (
	"image"
	"math"
	"sort"

	"github.com/tsawler/scriptorium/estimate"
	"github.com/tsawler/scriptorium/internal/filters"
	"github.com/tsawler/scriptorium/internal/stats"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
)

// TrackerConfig holds configuration for median-line tracking
type TrackerConfig struct {
	// BucketStrokes is the horizontal thumbnail bucket in stroke widths
	// Default: 2
	BucketStrokes float64 `yaml:"bucket_strokes"`

	// SmoothBuckets is the sigma of the horizontal Gaussian in buckets
	// Default: 1
	SmoothBuckets float64 `yaml:"smooth_buckets"`

	// DerivativeLeadingFraction is the sigma of the vertical Gaussian
	// derivative as a fraction of the leading
	// Default: 1/6
	DerivativeLeadingFraction float64 `yaml:"derivative_leading_fraction"`

	// AcceptLeadingFraction is the vertical window, as a fraction of the
	// leading, searched for a strong differential around a guide point
	// Default: 0.25
	AcceptLeadingFraction float64 `yaml:"accept_leading_fraction"`

	// ChainBuckets is how many buckets ahead chaining looks for the next point
	// Default: 20
	ChainBuckets int `yaml:"chain_buckets"`

	// ChainRows is the vertical tolerance between chained points in rows
	// Default: 10
	ChainRows float64 `yaml:"chain_rows"`

	// MinChainPoints is the smallest chain kept
	// Default: 3
	MinChainPoints int `yaml:"min_chain_points"`

	// MergeLeadingFraction is how far apart, as a fraction of the leading,
	// the y-ranges of two chains may be and still merge
	// Default: 1
	MergeLeadingFraction float64 `yaml:"merge_leading_fraction"`

	// HueSigmas is how many hue spreads a pixel must deviate from the
	// dominant hue to count as illumination
	// Default: 4
	HueSigmas float64 `yaml:"hue_sigmas"`

	// MinHueSaturation is the saturation below which hue is not trusted
	// Default: 0.2
	MinHueSaturation float64 `yaml:"min_hue_saturation"`

	// HighSaturation and HighValue mark vivid pixels as illumination
	// regardless of hue
	// Default: 0.6 and 0.6
	HighSaturation float64 `yaml:"high_saturation"`
	HighValue      float64 `yaml:"high_value"`

	// IlluminationLeadings is the height, in leadings, an illuminated
	// component must exceed
	// Default: 2
	IlluminationLeadings float64 `yaml:"illumination_leadings"`

	// GapLeadingFraction is the longest row gap, as a fraction of the
	// leading, filled between illuminated pixels
	// Default: 0.5
	GapLeadingFraction float64 `yaml:"gap_leading_fraction"`
}

// DefaultTrackerConfig returns sensible default configuration
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		BucketStrokes:             2,
		SmoothBuckets:             1,
		DerivativeLeadingFraction: 1.0 / 6,
		AcceptLeadingFraction:     0.25,
		ChainBuckets:              20,
		ChainRows:                 10,
		MinChainPoints:            3,
		MergeLeadingFraction:      1,
		HueSigmas:                 4,
		MinHueSaturation:          0.2,
		HighSaturation:            0.6,
		HighValue:                 0.6,
		IlluminationLeadings:      2,
		GapLeadingFraction:        0.5,
	}
}

// Tracking is the result of tracking one column
type Tracking struct {
	// Lines are the median lines in page coordinates, sorted by first y
	Lines []model.Polyline

	// Mask marks illuminated areas of the column
	Mask *IlluminationMask

	// Threshold is the differential magnitude guide points had to reach
	Threshold float32
}

// LineTracker finds median-line candidates inside a column zone
type LineTracker struct {
	config TrackerConfig
}

// NewLineTracker creates a tracker with default configuration
func NewLineTracker() *LineTracker {
	return &LineTracker{config: DefaultTrackerConfig()}
}

// NewLineTrackerWithConfig creates a tracker with custom configuration
func NewLineTrackerWithConfig(config TrackerConfig) *LineTracker {
	return &LineTracker{config: config}
}

// guide is a candidate median-line point in thumbnail coordinates
type guide struct {
	u    int
	y    float64
	used bool
}

// Track returns the median lines of zone. An empty zone yields an empty
// Tracking.
func (t *LineTracker) Track(page *raster.Page, zone image.Rectangle, metrics estimate.Metrics) *Tracking {
	cfg := t.config
	zone = zone.Intersect(page.Bounds())
	if zone.Empty() {
		return &Tracking{}
	}

	sw := math.Max(metrics.StrokeWidth, 1)
	leading := metrics.Leading
	if leading <= 0 {
		leading = 12 * sw
	}
	metrics.Leading = leading

	bucket := max(1, int(math.Round(cfg.BucketStrokes*sw)))
	red := filters.MinReduce(page.Gray(), zone, bucket)
	mask := buildIllumination(page.RGB(), red, metrics, cfg)

	// Ink is bright in the differential input so text rows peak
	dark := red.Values.Clone()
	for i, v := range dark.Pix {
		dark.Pix[i] = 255 - v
	}
	dark = filters.ConvolveX(dark, filters.GaussianKernel(cfg.SmoothBuckets))
	diff := filters.ConvolveY(dark, filters.GaussianDerivativeKernel(math.Max(1, leading*cfg.DerivativeLeadingFraction)))

	magnitudes := make([]float32, len(diff.Pix))
	for i, v := range diff.Pix {
		magnitudes[i] = float32(math.Abs(float64(v)))
	}
	threshold := stats.FisherThreshold(magnitudes)

	guides := t.guides(diff, mask, threshold, leading)
	chains := t.chain(guides, diff.Width)
	chains = t.merge(chains, leading)

	tracking := &Tracking{Mask: mask, Threshold: threshold}
	for _, chain := range chains {
		line := make(model.Polyline, len(chain))
		for i, g := range chain {
			line[i] = model.Point{X: red.PageX(g.u), Y: float64(red.Origin.Y) + g.y}
		}
		tracking.Lines = append(tracking.Lines, line)
	}
	sortByFirstY(tracking.Lines)

	return tracking
}

// guides returns the accepted positive-to-negative zero crossings of diff,
// grouped by thumbnail column
func (t *LineTracker) guides(diff *raster.FloatImage, mask *IlluminationMask, threshold float32, leading float64) [][]*guide {
	w, h := diff.Width, diff.Height
	window := max(0, int(math.Round(t.config.AcceptLeadingFraction*leading)))
	out := make([][]*guide, w)

	for u := 0; u < w; u++ {
		for v := 0; v+1 < h; v++ {
			d0, d1 := diff.At(u, v), diff.At(u, v+1)
			if d0 <= 0 || d1 > 0 {
				continue
			}
			if mask.cell(u, v) || !strongNear(diff, u, v, window, threshold) {
				continue
			}
			y := float64(v)
			if d0 != d1 {
				y += float64(d0 / (d0 - d1))
			}
			out[u] = append(out[u], &guide{u: u, y: y})
		}
	}
	return out
}

// strongNear reports whether any |diff| within window rows of (u, v) exceeds
// threshold
func strongNear(diff *raster.FloatImage, u, v, window int, threshold float32) bool {
	for dv := -window; dv <= window; dv++ {
		d, ok := diff.Get(u, v+dv)
		if ok && (d > threshold || -d > threshold) {
			return true
		}
	}
	return false
}

// chain links guide points greedily from left to right
func (t *LineTracker) chain(guides [][]*guide, width int) [][]*guide {
	var chains [][]*guide
	for u := 0; u < width; u++ {
		for _, start := range guides[u] {
			if start.used {
				continue
			}
			start.used = true
			chain := []*guide{start}
			cur := start
			for {
				next := t.nextGuide(guides, cur)
				if next == nil {
					break
				}
				next.used = true
				chain = append(chain, next)
				cur = next
			}
			if len(chain) >= t.config.MinChainPoints {
				chains = append(chains, chain)
			}
		}
	}
	return chains
}

// nextGuide returns the closest unused point ahead of cur: the nearest
// column first, then the nearest row
func (t *LineTracker) nextGuide(guides [][]*guide, cur *guide) *guide {
	last := min(len(guides)-1, cur.u+t.config.ChainBuckets)
	for u := cur.u + 1; u <= last; u++ {
		var best *guide
		bestDist := t.config.ChainRows
		for _, g := range guides[u] {
			if g.used {
				continue
			}
			if d := math.Abs(g.y - cur.y); d <= bestDist {
				best, bestDist = g, d
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// merge appends each chain to the earlier chain it continues, if any. A chain
// continues another when it starts after the other ends and their y-ranges
// are within MergeLeadingFraction of the leading; the largest overlap wins.
func (t *LineTracker) merge(chains [][]*guide, leading float64) [][]*guide {
	sort.SliceStable(chains, func(i, j int) bool {
		return chains[i][0].u < chains[j][0].u
	})

	tolerance := t.config.MergeLeadingFraction * leading
	var merged [][]*guide
	for _, c := range chains {
		lo, hi := yRange(c)
		best, bestOverlap := -1, math.Inf(-1)
		for i, m := range merged {
			if m[len(m)-1].u >= c[0].u {
				continue
			}
			mlo, mhi := yRange(m)
			overlap := math.Min(hi, mhi) - math.Max(lo, mlo)
			if overlap >= -tolerance && overlap > bestOverlap {
				best, bestOverlap = i, overlap
			}
		}
		if best < 0 {
			merged = append(merged, c)
			continue
		}
		merged[best] = append(merged[best], c...)
	}
	return merged
}

func yRange(c []*guide) (float64, float64) {
	lo, hi := c[0].y, c[0].y
	for _, g := range c[1:] {
		lo = math.Min(lo, g.y)
		hi = math.Max(hi, g.y)
	}
	return lo, hi
}

// sortByFirstY orders lines top to bottom by their first point
func sortByFirstY(lines []model.Polyline) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].First().Y < lines[j].First().Y
	})
}
