// Package raster holds the page image and the pixel buffers used by the
// analysis stages.
//
// A [Page] owns the RGB and grayscale views of one scanned page and a lazily
// computed, memoized [Gradient]. Pages are read-only once constructed and safe
// to share between goroutines.
//
// # Loading Pages
//
//	page, err := raster.Open("folio12r.tif")
//
// PNG, JPEG, GIF, TIFF, BMP and WebP are recognised. Sample buffers taken from
// other containers (for example image XObjects of a PDF) are converted with
// [FromRaw], which also understands CCITT Group 3/4 bi-level streams.
//
// # Buffers
//
// [FloatImage] and [Mask] are owned single-purpose planes. Reads through At
// clamp to the nearest edge pixel, Get reports whether the coordinate was in
// range, and Set ignores coordinates outside the plane, so callers never index
// the backing slices directly.
//
// # Gradient Backends
//
// The gradient is computed with a pure Go Sobel operator. Building with
//
//	go build -tags opencv
//
// uses OpenCV through gocv instead; both backends produce the same scale.
package raster
