package layout

import (
	"image"
	"math"

	"github.com/tsawler/scriptorium/internal/filters"
)

// ColumnConfig holds configuration for column location
type ColumnConfig struct {
	// TargetWidth is the width the page is downscaled to before seam search
	// Default: 2000 pixels
	TargetWidth int `yaml:"target_width"`

	// RowStrokes is the vertical downscale factor in stroke widths
	// Default: 2
	RowStrokes float64 `yaml:"row_strokes"`

	// Iterations is the number of seam-search rounds
	// Default: 3
	Iterations int `yaml:"iterations"`

	// SeamsPerIteration is the number of seams carved per round
	// Default: 0 (downscaled width / SeamDivisor)
	SeamsPerIteration int `yaml:"seams_per_iteration"`

	// SeamDivisor derives SeamsPerIteration from the downscaled width
	// Default: 20
	SeamDivisor int `yaml:"seam_divisor"`

	// ProbeLimit is how far a seam looks sideways for an unclaimed predecessor
	// Default: 8 pixels
	ProbeLimit int `yaml:"probe_limit"`

	// MaxProbeFlips caps direction reversals while probing
	// Default: 2
	MaxProbeFlips int `yaml:"max_probe_flips"`

	// ClaimPenalty scales the energy added next to a claimed pixel
	// Default: 0.5
	ClaimPenalty float32 `yaml:"claim_penalty"`

	// ClaimEpsilon is added next to a claimed pixel even in zero-energy areas
	// Default: 1
	ClaimEpsilon float32 `yaml:"claim_epsilon"`

	// MinRunStrokes is the minimum vertical claimed run, in stroke widths,
	// counted in the column histogram
	// Default: 10
	MinRunStrokes float64 `yaml:"min_run_strokes"`

	// MinColumnFraction is the narrowest text run, as a fraction of the nominal
	// column width, that counts as a column
	// Default: 0.25
	MinColumnFraction float64 `yaml:"min_column_fraction"`
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		TargetWidth:       2000,
		RowStrokes:        2,
		Iterations:        3,
		SeamsPerIteration: 0,
		SeamDivisor:       20,
		ProbeLimit:        8,
		MaxProbeFlips:     2,
		ClaimPenalty:      0.5,
		ClaimEpsilon:      1,
		MinRunStrokes:     10,
		MinColumnFraction: 0.25,
	}
}

// ColumnLocator finds the vertical bands holding the text columns of a page
type ColumnLocator struct {
	config ColumnConfig
}

// NewColumnLocator creates a column locator with default configuration
func NewColumnLocator() *ColumnLocator {
	return &ColumnLocator{config: DefaultColumnConfig()}
}

// NewColumnLocatorWithConfig creates a column locator with custom configuration
func NewColumnLocatorWithConfig(config ColumnConfig) *ColumnLocator {
	return &ColumnLocator{config: config}
}

// Locate returns expected left-to-right zones covering the page. It never
// fails: when no seam configuration matches the expected count the page is
// split into equal-width bands. expected < 1 yields nil.
func (l *ColumnLocator) Locate(gray *image.Gray, strokeWidth float64, expected int) []image.Rectangle {
	if expected < 1 || gray == nil || gray.Rect.Empty() {
		return nil
	}

	width, height := gray.Rect.Dx(), gray.Rect.Dy()
	if expected == 1 {
		return []image.Rectangle{image.Rect(0, 0, width, height)}
	}

	hist, scaleX := l.columnHistogram(gray, strokeWidth)

	threshold, ok := l.pickThreshold(hist, expected)
	if !ok {
		return equalColumns(width, height, expected)
	}

	runs := textRuns(hist, threshold, l.minRunWidth(len(hist), expected))

	zones := make([]image.Rectangle, expected)
	left := 0
	for i := 0; i < expected; i++ {
		right := width
		if i < expected-1 {
			cut := float64(runs[i].end+runs[i+1].start) / 2
			right = int(math.Round(cut * scaleX))
			right = max(left, min(right, width))
		}
		zones[i] = image.Rect(left, 0, right, height)
		left = right
	}

	return zones
}

// columnHistogram runs the seam search and returns the per-x histogram of
// long claimed runs together with the horizontal downscale factor.
func (l *ColumnLocator) columnHistogram(gray *image.Gray, strokeWidth float64) ([]int, float64) {
	cfg := l.config
	width, height := gray.Rect.Dx(), gray.Rect.Dy()
	strokeWidth = math.Max(strokeWidth, 1)

	fx := 1.0
	if cfg.TargetWidth > 0 && width > cfg.TargetWidth {
		fx = float64(width) / float64(cfg.TargetWidth)
	}
	fy := math.Max(1, cfg.RowStrokes*strokeWidth)

	dw := max(1, int(math.Round(float64(width)/fx)))
	dh := max(1, int(math.Round(float64(height)/fy)))
	small := filters.Downscale(gray, dw, dh)

	field := newSeamField(small, cfg)

	seams := cfg.SeamsPerIteration
	if seams <= 0 {
		seams = max(1, dw/max(1, cfg.SeamDivisor))
	}
	// Runs are measured in downscaled rows
	minRun := cfg.MinRunStrokes * strokeWidth / (float64(height) / float64(dh))

	hist := make([]int, dw)
	for iter := 0; iter < cfg.Iterations; iter++ {
		for s := 0; s < seams; s++ {
			if !field.carve() {
				break
			}
		}
		field.foldRuns(hist, minRun)
	}

	return hist, float64(width) / float64(dw)
}

// minRunWidth returns the narrowest text run accepted as a column
func (l *ColumnLocator) minRunWidth(histWidth, expected int) int {
	return max(1, int(l.config.MinColumnFraction*float64(histWidth)/float64(expected)))
}

// pickThreshold scans histogram thresholds for those producing exactly
// expected text runs and returns their weighted median.
func (l *ColumnLocator) pickThreshold(hist []int, expected int) (int, bool) {
	maxH := 0
	for _, v := range hist {
		maxH = max(maxH, v)
	}

	minWidth := l.minRunWidth(len(hist), expected)
	var qualifying []int
	for t := 1; t <= maxH; t++ {
		if len(textRuns(hist, t, minWidth)) == expected {
			qualifying = append(qualifying, t)
		}
	}
	if len(qualifying) == 0 {
		return 0, false
	}

	// Thresholds on long plateaus are stable; sample them more often
	var weighted []int
	for i := 0; i < len(qualifying); {
		j := i
		for j+1 < len(qualifying) && qualifying[j+1] == qualifying[j]+1 {
			j++
		}
		repeat := 1 + int(math.Log(float64(j-i+1)))
		for k := i; k <= j; k++ {
			for r := 0; r < repeat; r++ {
				weighted = append(weighted, qualifying[k])
			}
		}
		i = j + 1
	}

	return weighted[(len(weighted)-1)/2], true
}

// run is a half-open interval of histogram bins
type run struct {
	start, end int
}

// textRuns returns the runs of bins below threshold that are at least
// minWidth wide
func textRuns(hist []int, threshold, minWidth int) []run {
	var runs []run
	start := -1
	for x := 0; x <= len(hist); x++ {
		below := x < len(hist) && hist[x] < threshold
		switch {
		case below && start < 0:
			start = x
		case !below && start >= 0:
			if x-start >= minWidth {
				runs = append(runs, run{start: start, end: x})
			}
			start = -1
		}
	}
	return runs
}

// equalColumns splits the page into n equal-width bands
func equalColumns(width, height, n int) []image.Rectangle {
	zones := make([]image.Rectangle, n)
	for i := 0; i < n; i++ {
		zones[i] = image.Rect(i*width/n, 0, (i+1)*width/n, height)
	}
	return zones
}
