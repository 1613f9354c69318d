package scriptorium

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/scriptorium/estimate"
	"github.com/tsawler/scriptorium/hocr"
	"github.com/tsawler/scriptorium/layout"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
	"github.com/tsawler/scriptorium/signature"
)

// Extractor provides a fluent interface for analyzing a manuscript page.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	page     *raster.Page

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// The decoded page is shared; pages are read-only once decoded.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		page:     e.page,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ensurePage decodes the source image if not already decoded.
func (e *Extractor) ensurePage() error {
	if e.err != nil {
		return e.err
	}
	if e.page != nil {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	page, err := raster.Open(e.filename)
	if err != nil {
		return err
	}
	e.page = page
	return nil
}

// Columns sets the expected number of columns on the page. The default is 1.
//
// Example:
//
//	result, _, err := scriptorium.Open("page.png").Columns(2).Lines(30).Layout()
func (e *Extractor) Columns(n int) *Extractor {
	newExt := e.clone()
	newExt.options.columns = n
	return newExt
}

// Lines sets the expected number of lines. Pass one count to apply it to
// every column, or one count per column from left to right.
//
// Example:
//
//	// 30 lines in the left column, 28 in the right one
//	result, _, err := scriptorium.Open("page.png").Columns(2).Lines(30, 28).Layout()
func (e *Extractor) Lines(counts ...int) *Extractor {
	newExt := e.clone()
	newExt.options.lines = append([]int(nil), counts...)
	return newExt
}

// WithMetrics supplies page scalars measured elsewhere, skipping the
// estimation stage.
//
// Example:
//
//	m := estimate.Metrics{StrokeWidth: 4, Leading: 52}
//	result, _, err := scriptorium.Open("page.png").WithMetrics(m).Lines(24).Layout()
func (e *Extractor) WithMetrics(m estimate.Metrics) *Extractor {
	newExt := e.clone()
	newExt.options.metrics = &m
	return newExt
}

// WithConfig replaces the tuning parameters of every stage.
func (e *Extractor) WithConfig(cfg Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = cfg
	return newExt
}

// WithConfigFile loads tuning parameters from a YAML file. A file that
// cannot be loaded fails the first terminal operation.
//
// Example:
//
//	result, _, err := scriptorium.Open("page.png").
//	    WithConfigFile("scriptorium.yaml").
//	    Lines(30).
//	    Layout()
func (e *Extractor) WithConfigFile(path string) *Extractor {
	newExt := e.clone()
	if newExt.err != nil {
		return newExt
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		newExt.err = err
		return newExt
	}
	newExt.options.config = cfg
	return newExt
}

// WithSignatures computes the visual signature of every line found by
// Layout and WriteHOCR.
func (e *Extractor) WithSignatures() *Extractor {
	newExt := e.clone()
	newExt.options.signatures = true
	return newExt
}

// Workers bounds the number of goroutines used per stage. Zero or less uses
// GOMAXPROCS.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// Page returns the decoded page.
func (e *Extractor) Page() (*raster.Page, error) {
	if err := e.ensurePage(); err != nil {
		return nil, err
	}
	return e.page, nil
}

// Measure returns the page scalars: stroke width, leading and dominant ink
// hue. Metrics supplied with WithMetrics are returned unchanged.
//
// Example:
//
//	m, err := scriptorium.Open("page.png").Measure()
//	fmt.Printf("stroke %.1fpx, leading %.1fpx\n", m.StrokeWidth, m.Leading)
func (e *Extractor) Measure() (estimate.Metrics, error) {
	if err := e.ensurePage(); err != nil {
		return estimate.Metrics{}, err
	}
	if e.options.metrics != nil {
		return *e.options.metrics, nil
	}
	return estimate.Measure(e.page, e.options.config.Layout.Estimate), nil
}

// Layout finds the column zones and median lines of the page. Every column
// holds at most the requested number of lines; shortfalls are reported as
// warnings.
//
// Example:
//
//	result, warnings, err := scriptorium.Open("page.png").Columns(2).Lines(30).Layout()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, col := range result.Columns {
//	    fmt.Printf("column %d: %d lines\n", col.Zone.Index, len(col.Lines))
//	}
func (e *Extractor) Layout() (*model.PageLayout, []Warning, error) {
	metrics, err := e.Measure()
	if err != nil {
		return nil, nil, err
	}
	if len(e.options.lines) == 0 {
		return nil, nil, fmt.Errorf("no line count specified: %w", layout.ErrInvalidArgument)
	}

	cfg := e.options.config
	if e.options.workers > 0 {
		cfg.Layout.Workers = e.options.workers
	}

	analyzer := layout.NewAnalyzerWithConfig(cfg.Layout)
	result, warnings, err := analyzer.AnalyzeWithMetrics(e.page, metrics, e.options.columns, e.options.lines)
	if err != nil {
		return nil, nil, err
	}

	if e.options.signatures {
		if err := e.computeSignatures(result, metrics, cfg); err != nil {
			return nil, warnings, err
		}
	}

	return result, warnings, nil
}

// computeSignatures fills the signature cache of every line in result.
func (e *Extractor) computeSignatures(result *model.PageLayout, metrics estimate.Metrics, cfg Config) error {
	sigCfg := cfg.Signature
	if sigCfg.StrokeWidth <= 0 {
		sigCfg.StrokeWidth = metrics.StrokeWidth
	}
	extractor := signature.NewExtractorWithConfig(sigCfg)

	workers := cfg.Layout.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for c, col := range result.Columns {
		c := c
		for i, line := range col.Lines {
			i, line := i, line
			g.Go(func() error {
				if _, err := extractor.Extract(line, e.page); err != nil {
					return fmt.Errorf("column %d line %d: %w", c, i, err)
				}
				return nil
			})
		}
	}
	return g.Wait()
}

// WriteHOCR analyzes the page and writes the layout to w as an hOCR
// document. Signatures are included when WithSignatures was set.
//
// Example:
//
//	f, _ := os.Create("page.hocr")
//	defer f.Close()
//	warnings, err := scriptorium.Open("page.png").Lines(24).WithSignatures().WriteHOCR(f)
func (e *Extractor) WriteHOCR(w io.Writer) ([]Warning, error) {
	result, warnings, err := e.Layout()
	if err != nil {
		return warnings, err
	}

	opts := hocr.Options{
		Title:      e.filename,
		Image:      e.filename,
		Signatures: e.options.signatures,
	}
	if err := hocr.Write(w, result, opts); err != nil {
		return warnings, fmt.Errorf("failed to write hOCR: %w", err)
	}
	return warnings, nil
}
