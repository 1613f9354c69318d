// Package model provides the geometry produced by page analysis.
//
// This package defines the user-facing data structures handed back to callers:
// column zones, median lines and the visual signatures attached to them. The
// analysis stages in the layout and signature packages produce these types,
// making them the primary API for consuming analysis results.
//
// # Page Layout
//
// The [PageLayout] type represents one analysed page:
//
//	result, warnings, err := scriptorium.Open("folio12r.tif").Columns(2).Lines(28).Layout()
//	for _, col := range result.Columns {
//	    fmt.Println(col.Zone.Rect, len(col.Lines))
//	}
//
// Each [Column] carries its [ColumnZone] and the [MedianLine] values found in
// it, ordered top to bottom.
//
// # Median Lines
//
// A [MedianLine] is a [Polyline] that is strictly increasing in X plus a line
// height. Its visual signature is computed lazily and cached on the line:
//
//   - [MedianLine.Signature] returns the cached value, if any
//   - [MedianLine.SetPolyline] replaces the geometry and clears the cache
//   - [MedianLine.InvalidateSignature] clears the cache explicitly
//
// # Signatures
//
// A [Signature] is an ordered list of [SignatureElement] values, each with a
// pixel box, a [Symbol] and a cut probability. Element boxes are contiguous
// along X and span the line from its first to its last X.
//
// # Geometry
//
//   - [Point] - 2D point with distance calculation
//   - [Polyline] - piecewise-linear curve with interpolation
package model
