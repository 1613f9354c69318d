package model

import (
	"fmt"
	"image"
)

// Symbol is the code of one visual signature element
type Symbol int

const (
	SymbolUnknown Symbol = iota
	SymbolShortStroke
	SymbolLongStroke
	SymbolDescender
	SymbolDot
	SymbolLeftCurve
	SymbolRightCurve
)

func (s Symbol) String() string {
	switch s {
	case SymbolShortStroke:
		return "short-stroke"
	case SymbolLongStroke:
		return "long-stroke"
	case SymbolDescender:
		return "descender-mark"
	case SymbolDot:
		return "dot"
	case SymbolLeftCurve:
		return "left-curve"
	case SymbolRightCurve:
		return "right-curve"
	default:
		return "unknown"
	}
}

// Code returns the one-letter code used when a signature is written as a
// compact string
func (s Symbol) Code() byte {
	switch s {
	case SymbolShortStroke:
		return 'i'
	case SymbolLongStroke:
		return 'l'
	case SymbolDescender:
		return 'p'
	case SymbolDot:
		return '.'
	case SymbolLeftCurve:
		return '('
	case SymbolRightCurve:
		return ')'
	default:
		return '?'
	}
}

// ParseSymbol parses the name returned by Symbol.String
func ParseSymbol(name string) (Symbol, error) {
	for s := SymbolShortStroke; s <= SymbolRightCurve; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return SymbolUnknown, fmt.Errorf("unknown signature symbol %q", name)
}

// SignatureElement is one symbolic token of a visual signature
type SignatureElement struct {
	// Box is the pixel rectangle of the element along the line
	Box image.Rectangle

	// Symbol is the element's symbol code
	Symbol Symbol

	// CutProbability is the mean gray level on the element's left edge
	CutProbability uint8
}

// Signature is the ordered visual signature of one median line
type Signature struct {
	Elements []SignatureElement

	// Diagnostic explains an empty signature
	Diagnostic string
}

// IsEmpty reports whether the signature has no elements
func (s Signature) IsEmpty() bool {
	return len(s.Elements) == 0
}

// Codes returns the signature as a compact string of symbol codes
func (s Signature) Codes() string {
	b := make([]byte, len(s.Elements))
	for i, e := range s.Elements {
		b[i] = e.Symbol.Code()
	}
	return string(b)
}

// Clone returns a deep copy of the signature
func (s Signature) Clone() Signature {
	out := Signature{Diagnostic: s.Diagnostic}
	if s.Elements != nil {
		out.Elements = make([]SignatureElement, len(s.Elements))
		copy(out.Elements, s.Elements)
	}
	return out
}
