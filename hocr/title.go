package hocr

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/tsawler/scriptorium/model"
)

// parseTitle breaks an hOCR title attribute into its properties.
// Example input: "bbox 100 200 300 400; x_height 12"
func parseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBBox(r image.Rectangle) string {
	return fmt.Sprintf("bbox %d %d %d %d", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// parseBBox reads the bbox property of a title
func parseBBox(props map[string][]string) (image.Rectangle, error) {
	v, ok := props["bbox"]
	if !ok || len(v) != 4 {
		return image.Rectangle{}, fmt.Errorf("missing or malformed bbox: %w", ErrMalformed)
	}
	var n [4]int
	for i, s := range v {
		x, err := strconv.Atoi(s)
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("bbox value %q: %w", s, ErrMalformed)
		}
		n[i] = x
	}
	return image.Rect(n[0], n[1], n[2], n[3]), nil
}

// FormatLineTitle returns the title attribute of an ocr_line: its bounding
// box, polyline and height
func FormatLineTitle(p model.Polyline, height float64) string {
	var b strings.Builder
	b.WriteString(formatBBox(p.Bounds()))
	b.WriteString("; x_polyline")
	for _, pt := range p {
		b.WriteString(" ")
		b.WriteString(formatFloat(pt.X))
		b.WriteString(" ")
		b.WriteString(formatFloat(pt.Y))
	}
	b.WriteString("; x_height ")
	b.WriteString(formatFloat(height))
	return b.String()
}

// ParseLineTitle reads the polyline and height back from an ocr_line title
func ParseLineTitle(title string) (model.Polyline, float64, error) {
	props := parseTitle(title)

	coords, ok := props["x_polyline"]
	if !ok || len(coords) < 4 || len(coords)%2 != 0 {
		return nil, 0, fmt.Errorf("missing or malformed x_polyline: %w", ErrMalformed)
	}
	p := make(model.Polyline, len(coords)/2)
	for i := range p {
		x, errX := strconv.ParseFloat(coords[2*i], 64)
		y, errY := strconv.ParseFloat(coords[2*i+1], 64)
		if errX != nil || errY != nil {
			return nil, 0, fmt.Errorf("x_polyline point %d: %w", i, ErrMalformed)
		}
		p[i] = model.Point{X: x, Y: y}
	}
	if !p.IsValid() {
		return nil, 0, fmt.Errorf("x_polyline is not increasing in x: %w", ErrMalformed)
	}

	height := 0.0
	if v, ok := props["x_height"]; ok && len(v) == 1 {
		h, err := strconv.ParseFloat(v[0], 64)
		if err != nil {
			return nil, 0, fmt.Errorf("x_height %q: %w", v[0], ErrMalformed)
		}
		height = h
	}
	return p, height, nil
}

// FormatElementTitle returns the title attribute of an ocrx_cinfo span
func FormatElementTitle(el model.SignatureElement) string {
	return fmt.Sprintf("%s; x_symbol %s; x_cut %d", formatBBox(el.Box), el.Symbol, el.CutProbability)
}

// ParseElementTitle reads a signature element back from an ocrx_cinfo title
func ParseElementTitle(title string) (model.SignatureElement, error) {
	props := parseTitle(title)

	box, err := parseBBox(props)
	if err != nil {
		return model.SignatureElement{}, err
	}
	sym, ok := props["x_symbol"]
	if !ok || len(sym) != 1 {
		return model.SignatureElement{}, fmt.Errorf("missing x_symbol: %w", ErrMalformed)
	}
	symbol, err := model.ParseSymbol(sym[0])
	if err != nil {
		return model.SignatureElement{}, fmt.Errorf("x_symbol: %w", err)
	}

	var cut uint64
	if v, ok := props["x_cut"]; ok && len(v) == 1 {
		cut, err = strconv.ParseUint(v[0], 10, 8)
		if err != nil {
			return model.SignatureElement{}, fmt.Errorf("x_cut %q: %w", v[0], ErrMalformed)
		}
	}

	return model.SignatureElement{Box: box, Symbol: symbol, CutProbability: uint8(cut)}, nil
}
