package layout

import (
	"errors"
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/tsawler/scriptorium/estimate"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidArgument is returned when the caller passes input the pipeline
// cannot work on, such as a nil page or a zero column count
var ErrInvalidArgument = errors.New("invalid argument")

// Warning describes a local failure that did not stop the analysis
type Warning struct {
	// Stage is the pipeline stage that produced the warning
	Stage string

	// Column is the zero-based column index, or -1 for page-level warnings
	Column int

	// Message describes what happened
	Message string
}

// String returns the warning as a single line
func (w Warning) String() string {
	if w.Column < 0 {
		return fmt.Sprintf("%s: %s", w.Stage, w.Message)
	}
	return fmt.Sprintf("%s: column %d: %s", w.Stage, w.Column, w.Message)
}

// AnalyzerConfig holds configuration for the whole layout pipeline
type AnalyzerConfig struct {
	Estimate  estimate.Config `yaml:"estimate"`
	Columns   ColumnConfig    `yaml:"columns"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Refine    RefineConfig    `yaml:"refine"`

	// Workers bounds the number of columns processed concurrently
	// Default: 0 (GOMAXPROCS)
	Workers int `yaml:"workers"`

	// HeightLeadingFraction is the height given to every median line as a
	// fraction of the leading
	// Default: 1
	HeightLeadingFraction float64 `yaml:"height_leading_fraction"`
}

// DefaultAnalyzerConfig returns sensible default configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Estimate:              estimate.DefaultConfig(),
		Columns:               DefaultColumnConfig(),
		Tracker:               DefaultTrackerConfig(),
		Reconcile:             DefaultReconcileConfig(),
		Refine:                DefaultRefineConfig(),
		Workers:               0,
		HeightLeadingFraction: 1,
	}
}

// Analyzer runs column location, line tracking, reconciliation and refinement
// over a page
type Analyzer struct {
	config     AnalyzerConfig
	locator    *ColumnLocator
	tracker    *LineTracker
	reconciler *Reconciler
	refiner    *Refiner
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		config:     config,
		locator:    NewColumnLocatorWithConfig(config.Columns),
		tracker:    NewLineTrackerWithConfig(config.Tracker),
		reconciler: NewReconcilerWithConfig(config.Reconcile),
		refiner:    NewRefinerWithConfig(config.Refine),
	}
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() AnalyzerConfig {
	return a.config
}

// Analyze measures the page and lays it out into columns zones holding
// median lines. linesPerColumn holds either one count applied to every
// column or one count per column.
func (a *Analyzer) Analyze(page *raster.Page, columns int, linesPerColumn []int) (*model.PageLayout, []Warning, error) {
	if page == nil {
		return nil, nil, fmt.Errorf("nil page: %w", ErrInvalidArgument)
	}
	metrics := estimate.Measure(page, a.config.Estimate)
	return a.AnalyzeWithMetrics(page, metrics, columns, linesPerColumn)
}

// AnalyzeWithMetrics is like Analyze but uses the given metrics instead of
// measuring them
func (a *Analyzer) AnalyzeWithMetrics(page *raster.Page, metrics estimate.Metrics, columns int, linesPerColumn []int) (*model.PageLayout, []Warning, error) {
	counts, err := validate(page, columns, linesPerColumn)
	if err != nil {
		return nil, nil, err
	}

	metrics.StrokeWidth = math.Max(metrics.StrokeWidth, 1)
	if metrics.Leading <= 0 {
		metrics.Leading = a.config.Estimate.DefaultLeadingStrokes * metrics.StrokeWidth
	}

	rects := a.locator.Locate(page.Gray(), metrics.StrokeWidth, columns)
	zones := make([]model.ColumnZone, len(rects))
	for i, r := range rects {
		zones[i] = model.ColumnZone{Index: i, Rect: r}
	}

	// Compute the shared gradient once, before the workers borrow it
	gradient := page.Gradient()

	results := make([]columnResult, len(zones))
	g := new(errgroup.Group)
	workers := a.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i := range zones {
		i := i
		g.Go(func() error {
			var left, right *model.ColumnZone
			if i > 0 {
				left = &zones[i-1]
			}
			if i < len(zones)-1 {
				right = &zones[i+1]
			}
			results[i] = a.analyzeColumn(page, gradient, zones[i], left, right, metrics, counts[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	layout := model.NewPageLayout(page.Width(), page.Height())
	var warnings []Warning
	for i, res := range results {
		column := model.Column{Zone: zones[i]}
		for _, p := range res.lines {
			column.Lines = append(column.Lines, model.NewMedianLine(p, metrics.Leading*a.config.HeightLeadingFraction))
		}
		layout.AddColumn(column)
		warnings = append(warnings, res.warnings...)
	}

	return layout, warnings, nil
}

// validate checks the caller's input and expands linesPerColumn to one count
// per column
func validate(page *raster.Page, columns int, linesPerColumn []int) ([]int, error) {
	if page == nil {
		return nil, fmt.Errorf("nil page: %w", ErrInvalidArgument)
	}
	if page.Width() == 0 || page.Height() == 0 {
		return nil, fmt.Errorf("empty page: %w", ErrInvalidArgument)
	}
	if columns < 1 {
		return nil, fmt.Errorf("column count %d: %w", columns, ErrInvalidArgument)
	}

	var counts []int
	switch len(linesPerColumn) {
	case 1:
		counts = make([]int, columns)
		for i := range counts {
			counts[i] = linesPerColumn[0]
		}
	case columns:
		counts = append([]int(nil), linesPerColumn...)
	default:
		return nil, fmt.Errorf("%d line counts for %d columns: %w", len(linesPerColumn), columns, ErrInvalidArgument)
	}

	for i, n := range counts {
		if n < 1 {
			return nil, fmt.Errorf("line count %d for column %d: %w", n, i, ErrInvalidArgument)
		}
	}
	return counts, nil
}

// columnResult is what one worker produces for its column
type columnResult struct {
	lines    []model.Polyline
	warnings []Warning
}

// analyzeColumn tracks, reconciles and refines the lines of one zone
func (a *Analyzer) analyzeColumn(page *raster.Page, gradient *raster.Gradient, zone model.ColumnZone,
	left, right *model.ColumnZone, metrics estimate.Metrics, expected int) columnResult {
	var res columnResult
	warn := func(stage, format string, args ...any) {
		res.warnings = append(res.warnings, Warning{
			Stage:   stage,
			Column:  zone.Index,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if zone.Rect.Empty() {
		warn("columns", "empty zone")
		return res
	}

	tracking := a.tracker.Track(page, zone.Rect, metrics)
	lines, _ := a.reconciler.Reconcile(tracking.Lines, gradient, expected)
	if dropped := len(tracking.Lines) - len(lines); dropped > 0 {
		warn("reconcile", "dropped %d atypical lines", dropped)
	}

	var refined []model.Polyline
	for i, line := range lines {
		p, ok := a.refiner.Refine(line, zone, left, right, tracking.Mask, gradient, metrics)
		if !ok {
			warn("refine", "line %d collapsed", i)
			continue
		}
		refined = append(refined, p)
	}

	lo, _ := zoneLimits(zone, left, right, page.Width())
	refined = a.refiner.AlignStarts(refined, metrics.Leading, metrics.StrokeWidth, lo)

	tolerance := a.config.Refine.SimplifyStrokes * metrics.StrokeWidth
	bounds := image.Rect(0, 0, page.Width(), page.Height())
	for _, p := range refined {
		p = Simplify(p.Clip(float64(bounds.Min.X), float64(bounds.Max.X-1)), tolerance)
		if !p.IsValid() {
			warn("refine", "line clipped away at page edge")
			continue
		}
		res.lines = append(res.lines, p)
	}
	sortByFirstY(res.lines)

	if len(res.lines) < expected {
		warn("track", "found %d of %d lines", len(res.lines), expected)
	}
	return res
}
