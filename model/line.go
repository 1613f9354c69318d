package model

import "sync"

// MedianLine is a polyline approximating the vertical center of one text line,
// plus its line height. The visual signature of the line is cached on it and
// cleared whenever the polyline is replaced.
type MedianLine struct {
	mu        sync.Mutex
	polyline  Polyline
	height    float64
	signature *Signature
}

// NewMedianLine creates a median line; the polyline is copied
func NewMedianLine(p Polyline, height float64) *MedianLine {
	return &MedianLine{polyline: p.Clone(), height: height}
}

// Polyline returns a copy of the line's polyline
func (l *MedianLine) Polyline() Polyline {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.polyline.Clone()
}

// Height returns the line height in pixels
func (l *MedianLine) Height() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// SetPolyline replaces the polyline (e.g. after a manual edit) and clears the
// cached signature
func (l *MedianLine) SetPolyline(p Polyline) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.polyline = p.Clone()
	l.signature = nil
}

// SetHeight replaces the line height and clears the cached signature
func (l *MedianLine) SetHeight(h float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.height = h
	l.signature = nil
}

// Signature returns the cached signature and whether one is present
func (l *MedianLine) Signature() (Signature, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.signature == nil {
		return Signature{}, false
	}
	return l.signature.Clone(), true
}

// SetSignature stores a computed signature in the cache
func (l *MedianLine) SetSignature(s Signature) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := s.Clone()
	l.signature = &c
}

// InvalidateSignature clears the cached signature
func (l *MedianLine) InvalidateSignature() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.signature = nil
}

// SignatureOrCompute returns the cached signature, computing and storing it
// with compute when the cache is empty. The line's lock is held during
// compute, so concurrent callers compute once.
func (l *MedianLine) SignatureOrCompute(compute func(p Polyline, height float64) (Signature, error)) (Signature, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.signature != nil {
		return l.signature.Clone(), nil
	}

	s, err := compute(l.polyline.Clone(), l.height)
	if err != nil {
		return Signature{}, err
	}
	c := s.Clone()
	l.signature = &c
	return s, nil
}
