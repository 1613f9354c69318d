// Package scriptorium provides a fluent API for finding the columns, median
// lines and visual signatures of scanned manuscript pages.
//
// Basic usage:
//
//	result, warnings, err := scriptorium.Open("folio-12r.png").
//	    Columns(2).
//	    Lines(30).
//	    Layout()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", scriptorium.FormatWarnings(warnings))
//	}
//
// With signatures and hOCR output:
//
//	warnings, err := scriptorium.Open("folio-12r.png").
//	    Columns(2).
//	    Lines(30, 28).
//	    WithSignatures().
//	    WriteHOCR(w)
//
// For advanced use cases, the lower-level layout and signature packages are
// also available.
package scriptorium

import (
	"image"

	"github.com/tsawler/scriptorium/raster"
)

// Open opens a page image (PNG, JPEG, GIF, TIFF, BMP or WebP) and returns an
// Extractor for fluent configuration. The file is read by the first terminal
// operation.
//
// Example:
//
//	result, warnings, err := scriptorium.Open("page.png").Columns(1).Lines(24).Layout()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromPage creates an Extractor for an already decoded page.
//
// Example:
//
//	page, err := raster.Open("page.tif")
//	if err != nil {
//	    // handle error
//	}
//	result, warnings, err := scriptorium.FromPage(page).Columns(2).Lines(30).Layout()
func FromPage(page *raster.Page) *Extractor {
	return &Extractor{
		page:    page,
		options: defaultOptions(),
	}
}

// New returns an Extractor without a source. It serves as the template
// for AnalyzeFiles.
//
// Example:
//
//	tmpl := scriptorium.New().Columns(2).Lines(30)
//	results := scriptorium.AnalyzeFiles(tmpl, paths)
func New() *Extractor {
	return &Extractor{options: defaultOptions()}
}

// FromImage creates an Extractor for an in-memory image.
func FromImage(img image.Image) *Extractor {
	page, err := raster.NewPage(img)
	return &Extractor{
		page:    page,
		err:     err,
		options: defaultOptions(),
	}
}

// FromRaw creates an Extractor for an uncompressed or CCITT-encoded sample
// buffer, as delivered by scanner SDKs and PDF image streams.
//
// Example:
//
//	raw := raster.RawImage{Width: w, Height: h, ColorSpace: "DeviceGray", BitsPerComponent: 8, Data: buf}
//	result, _, err := scriptorium.FromRaw(raw).Lines(24).Layout()
func FromRaw(raw raster.RawImage) *Extractor {
	page, err := raster.FromRaw(raw)
	return &Extractor{
		page:    page,
		err:     err,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	metrics := scriptorium.Must(scriptorium.Open("page.png").Measure())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustLayout is a helper that wraps a call to Layout() and panics if the
// error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	result := scriptorium.MustLayout(scriptorium.Open("page.png").Columns(2).Lines(30).Layout())
func MustLayout[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
