package signature

// Config holds configuration for signature extraction
type Config struct {
	// StrokeWidth is the ink stroke width in pixels
	// Default: 0 (measured around each line)
	StrokeWidth float64 `yaml:"stroke_width"`

	// MaxRun bounds the runs measured when StrokeWidth is 0
	// Default: 64 pixels
	MaxRun int `yaml:"max_run"`

	// DefaultHeightStrokes is the band height, in stroke widths, used for
	// lines without a height
	// Default: 4
	DefaultHeightStrokes float64 `yaml:"default_height_strokes"`

	// CoreFraction is the fraction of the band height around the median line
	// that belongs to neither the top nor the bottom projection
	// Default: 0.4
	CoreFraction float64 `yaml:"core_fraction"`

	// ModeMinFraction is the smallest projection peak, as a fraction of the
	// top or bottom region height, that counts as a mode
	// Default: 0.35
	ModeMinFraction float64 `yaml:"mode_min_fraction"`

	// PairDistanceStrokes is the largest distance, in stroke widths, between
	// a top and a bottom mode tagged as one long bar
	// Default: 2
	PairDistanceStrokes float64 `yaml:"pair_distance_strokes"`

	// DotFlatness is the largest normalized mean-square deviation of a dot's
	// orientation histogram from uniform
	// Default: 0.05
	DotFlatness float64 `yaml:"dot_flatness"`

	// DotFill is the smallest fraction of its bounding box a dot fills
	// Default: 0.5
	DotFill float64 `yaml:"dot_fill"`

	// MinDotArea is the smallest dot component in pixels
	// Default: 8
	MinDotArea int `yaml:"min_dot_area"`

	// MinCurveArea is the smallest curve component in squared stroke widths
	// Default: 4
	MinCurveArea float64 `yaml:"min_curve_area"`

	// Convexity is the fraction of convex pixels a curve component needs
	// Default: 0.75
	Convexity float64 `yaml:"convexity"`

	// ConvexCurvature is the isophote curvature, in inverse stroke widths,
	// above which a pixel counts as convex. Zero classifies by curvature
	// sign; raise it to keep short straight strokes out of the curves.
	// Default: 0
	ConvexCurvature float64 `yaml:"convex_curvature"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		StrokeWidth:          0,
		MaxRun:               64,
		DefaultHeightStrokes: 4,
		CoreFraction:         0.4,
		ModeMinFraction:      0.35,
		PairDistanceStrokes:  2,
		DotFlatness:          0.05,
		DotFill:              0.5,
		MinDotArea:           8,
		MinCurveArea:         4,
		Convexity:            0.75,
		ConvexCurvature:      0,
	}
}
