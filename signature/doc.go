// Package signature turns a median line into its visual signature: the
// sequence of strokes, dots and curves a reader would see along the line.
//
// Signatures are computed lazily and cached on the line:
//
//	extractor := signature.NewExtractor()
//	sig, err := extractor.Extract(line, page)
//	fmt.Println(sig.Codes()) // e.g. "iilpi.(i"
//
// Replacing the line's polyline clears the cache, and the next Extract call
// recomputes the signature.
package signature
