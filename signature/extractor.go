package signature

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/tsawler/scriptorium/estimate"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
)

// ErrInvalidArgument is returned for a nil line or page, or a line whose
// polyline is not strictly increasing in x
var ErrInvalidArgument = errors.New("invalid argument")

// DiagnosticNoModes is the diagnostic of a signature for a line without ink
const DiagnosticNoModes = "no ink modes found"

// Extractor computes visual signatures of median lines
type Extractor struct {
	config Config
}

// NewExtractor creates an extractor with default configuration
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration
func NewExtractorWithConfig(config Config) *Extractor {
	return &Extractor{config: config}
}

// Extract returns the signature of line, computing and caching it on the line
// the first time. A line without ink yields an empty signature carrying a
// diagnostic, not an error.
func (e *Extractor) Extract(line *model.MedianLine, page *raster.Page) (model.Signature, error) {
	if line == nil {
		return model.Signature{}, fmt.Errorf("nil line: %w", ErrInvalidArgument)
	}
	if page == nil {
		return model.Signature{}, fmt.Errorf("nil page: %w", ErrInvalidArgument)
	}

	return line.SignatureOrCompute(func(p model.Polyline, height float64) (model.Signature, error) {
		if !p.IsValid() {
			return model.Signature{}, fmt.Errorf("polyline with %d points: %w", len(p), ErrInvalidArgument)
		}
		return e.compute(p, height, page), nil
	})
}

// Compute returns the signature of a polyline without touching any cache
func (e *Extractor) Compute(p model.Polyline, height float64, page *raster.Page) (model.Signature, error) {
	if page == nil {
		return model.Signature{}, fmt.Errorf("nil page: %w", ErrInvalidArgument)
	}
	if !p.IsValid() {
		return model.Signature{}, fmt.Errorf("polyline with %d points: %w", len(p), ErrInvalidArgument)
	}
	return e.compute(p, height, page), nil
}

func (e *Extractor) compute(p model.Polyline, height float64, page *raster.Page) model.Signature {
	sw := e.strokeWidth(p, height, page)
	if height <= 0 {
		height = e.config.DefaultHeightStrokes * sw
	}

	b := newBand(page, p, height)
	sigma := math.Max(0.7, sw/2)
	d := newDifferential(b.gray, []float64{sigma, 2 * sigma})

	ink := inkMask(d, b.width, b.height)
	m := e.projectModes(b, ink, sw)

	tags := e.strokeTags(b, ink, m, sw)
	e.markCurves(tags, d, b.width, b.height, sw)
	e.markDots(tags, d, b.width, b.height)

	elements := assemble(tags)
	if len(elements) == 0 {
		return model.Signature{Diagnostic: DiagnosticNoModes}
	}
	spread(elements, b.columnInk())

	sig := model.Signature{Elements: make([]model.SignatureElement, len(elements))}
	for i, el := range elements {
		sig.Elements[i] = model.SignatureElement{
			Box:            b.box(el.start, el.end),
			Symbol:         el.symbol,
			CutProbability: b.edgeGray(el.start),
		}
	}
	return sig
}

// strokeWidth returns the configured stroke width or measures it around the
// line
func (e *Extractor) strokeWidth(p model.Polyline, height float64, page *raster.Page) float64 {
	if e.config.StrokeWidth > 0 {
		return e.config.StrokeWidth
	}
	r := p.Bounds()
	pad := int(math.Ceil(math.Max(height, 8)))
	r = image.Rect(r.Min.X, r.Min.Y-pad, r.Max.X, r.Max.Y+pad).Intersect(page.Bounds())
	if r.Empty() {
		return 1
	}
	return estimate.StrokeWidth(page.Gray().SubImage(r).(*image.Gray), e.config.MaxRun)
}

// box returns the page rectangle of band columns [start, end)
func (b *band) box(start, end int) image.Rectangle {
	top, bottom := math.MaxInt, math.MinInt
	for c := start; c < end; c++ {
		top = min(top, b.pageY(c, 0))
		bottom = max(bottom, b.pageY(c, b.height-1)+1)
	}
	return image.Rect(b.pageX(start), top, b.pageX(end), bottom)
}

// edgeGray returns the mean gray value of band column c
func (b *band) edgeGray(c int) uint8 {
	sum := 0.0
	for r := 0; r < b.height; r++ {
		sum += float64(b.gray.At(c, r))
	}
	return uint8(math.Round(sum / float64(b.height)))
}
