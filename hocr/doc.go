// Package hocr stores page layouts and visual signatures as hOCR.
//
// Column zones become ocr_carea blocks, median lines ocr_line spans and
// signature elements ocrx_cinfo spans:
//
//	<span class="ocr_line" title="bbox 40 70 180 82; x_polyline 40 75.5 180 75.5; x_height 75">
//	  <span class="ocrx_cinfo" title="bbox 40 38 52 113; x_symbol short-stroke; x_cut 231">i</span>
//	</span>
//
// Polylines, line heights and signature elements survive a Write/Read round
// trip. Anything else in the document is ignored by Read.
package hocr
