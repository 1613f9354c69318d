// Package estimate measures the page-level scalars the analysis stages
// consume: stroke width, leading (line spacing) and the dominant hue of the
// writing surface.
//
// Callers that already have these values from another imaging tool can skip
// measurement and pass a Metrics value directly.
package estimate

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tsawler/scriptorium/internal/stats"
	"github.com/tsawler/scriptorium/raster"
)

// Metrics are the scalars measured on a page
type Metrics struct {
	// StrokeWidth is the average ink stroke thickness in pixels
	StrokeWidth float64 `yaml:"stroke_width"`

	// Leading is the vertical distance between consecutive baselines in pixels
	Leading float64 `yaml:"leading"`

	// Hue is the dominant hue of saturated pixels in degrees
	Hue float64 `yaml:"hue"`

	// HueSpread is the circular standard deviation of Hue in degrees
	HueSpread float64 `yaml:"hue_spread"`
}

// Config holds configuration for measurement
type Config struct {
	// MaxRun is the longest dark run counted for the stroke width
	// Default: 64 pixels
	MaxRun int `yaml:"max_run"`

	// MinSaturation is the saturation a pixel needs to vote for the hue
	// Default: 0.15
	MinSaturation float64 `yaml:"min_saturation"`

	// DefaultLeadingStrokes is the leading, in stroke widths, assumed when the
	// row profile shows no periodicity
	// Default: 12
	DefaultLeadingStrokes float64 `yaml:"default_leading_strokes"`

	// Sample is the pixel step used when scanning for the hue
	// Default: 2
	Sample int `yaml:"sample"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MaxRun:                64,
		MinSaturation:         0.15,
		DefaultLeadingStrokes: 12,
		Sample:                2,
	}
}

// Measure estimates all metrics of a page
func Measure(page *raster.Page, cfg Config) Metrics {
	sw := StrokeWidth(page.Gray(), cfg.MaxRun)
	leading := Leading(page.Gray(), page.Bounds(), sw)
	if leading <= 0 {
		leading = cfg.DefaultLeadingStrokes * sw
	}
	hue, spread := DominantHue(page.RGB(), cfg.MinSaturation, cfg.Sample)

	return Metrics{
		StrokeWidth: sw,
		Leading:     leading,
		Hue:         hue,
		HueSpread:   spread,
	}
}

// inkThreshold returns the Fisher threshold separating ink from background
func inkThreshold(gray *image.Gray, rect image.Rectangle) float32 {
	rect = rect.Intersect(gray.Rect)
	values := make([]float32, 0, rect.Dx()*rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			values = append(values, float32(gray.Pix[gray.PixOffset(x, y)]))
		}
	}
	return stats.FisherThreshold(values)
}

// StrokeWidth returns the most frequent length of horizontal and vertical
// runs of ink pixels, or 1 when the page has no ink.
func StrokeWidth(gray *image.Gray, maxRun int) float64 {
	if maxRun < 1 {
		maxRun = 64
	}
	th := inkThreshold(gray, gray.Rect)
	ink := func(x, y int) bool {
		return float32(gray.Pix[gray.PixOffset(x, y)]) < th
	}

	hist := make([]int, maxRun+1)
	record := func(n int) {
		if n > 0 && n <= maxRun {
			hist[n]++
		}
	}

	b := gray.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		run := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			if ink(x, y) {
				run++
				continue
			}
			record(run)
			run = 0
		}
		record(run)
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		run := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if ink(x, y) {
				run++
				continue
			}
			record(run)
			run = 0
		}
		record(run)
	}

	best := 0
	for n := 1; n <= maxRun; n++ {
		if hist[n] > hist[best] {
			best = n
		}
	}
	if best == 0 {
		return 1
	}
	return float64(best)
}

// Leading estimates the baseline spacing inside rect from the
// autocorrelation of the row ink profile. It returns 0 when no periodicity
// is found.
func Leading(gray *image.Gray, rect image.Rectangle, strokeWidth float64) float64 {
	rect = rect.Intersect(gray.Rect)
	h := rect.Dy()
	if h < 4 {
		return 0
	}

	th := inkThreshold(gray, rect)
	profile := make([]float64, h)
	mean := 0.0
	for y := 0; y < h; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if float32(gray.Pix[gray.PixOffset(x, rect.Min.Y+y)]) < th {
				profile[y]++
			}
		}
		mean += profile[y]
	}
	mean /= float64(h)
	for y := range profile {
		profile[y] -= mean
	}

	corr := make([]float64, h/2+1)
	for lag := range corr {
		for y := 0; y+lag < h; y++ {
			corr[lag] += profile[y] * profile[y+lag]
		}
		corr[lag] /= float64(h - lag)
	}
	if corr[0] <= 0 {
		return 0
	}

	// Skip the central lobe, then take the strongest peak
	minLag := max(2, int(math.Ceil(2*strokeWidth)))
	start := minLag
	for start < len(corr) && corr[start] > 0 {
		start++
	}

	best, bestVal := 0, 0.0
	for lag := start; lag < len(corr)-1; lag++ {
		if corr[lag] > bestVal && corr[lag] >= corr[lag-1] && corr[lag] >= corr[lag+1] {
			best, bestVal = lag, corr[lag]
		}
	}
	if best == 0 || bestVal < 0.1*corr[0] {
		return 0
	}
	return float64(best)
}

// DominantHue returns the modal hue of pixels with at least minSaturation and
// the circular standard deviation around it, both in degrees. A page without
// saturated pixels reports hue 0 and spread 180.
func DominantHue(rgb *image.NRGBA, minSaturation float64, sample int) (hue, spread float64) {
	if sample < 1 {
		sample = 1
	}

	var hues []float64
	var hist [360]int
	b := rgb.Rect
	for y := b.Min.Y; y < b.Max.Y; y += sample {
		for x := b.Min.X; x < b.Max.X; x += sample {
			h, s, _ := PixelHSV(rgb, x, y)
			if s < minSaturation {
				continue
			}
			hues = append(hues, h)
			hist[int(h)%360]++
		}
	}
	if len(hues) == 0 {
		return 0, 180
	}

	best := 0
	for i := range hist {
		if hist[i] > hist[best] {
			best = i
		}
	}
	hue = float64(best) + 0.5

	sum := 0.0
	for _, h := range hues {
		d := stats.CircularDistance(h, hue)
		sum += d * d
	}
	return hue, math.Sqrt(sum / float64(len(hues)))
}

// PixelHSV returns the hue (degrees), saturation and value of one pixel
func PixelHSV(rgb *image.NRGBA, x, y int) (h, s, v float64) {
	c := rgb.NRGBAAt(x, y)
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return col.Hsv()
}
