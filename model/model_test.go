package model

import (
	"errors"
	"image"
	"math"
	"sync"
	"testing"
)

func TestPoint_SegmentDistance(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		a, b Point
		want float64
	}{
		{"above middle", Point{5, 3}, Point{0, 0}, Point{10, 0}, 3},
		{"before start", Point{-4, 3}, Point{0, 0}, Point{10, 0}, 5},
		{"after end", Point{13, 4}, Point{0, 0}, Point{10, 0}, 5},
		{"degenerate segment", Point{3, 4}, Point{0, 0}, Point{0, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.SegmentDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SegmentDistance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolyline_YAt(t *testing.T) {
	p := Polyline{{0, 10}, {10, 20}, {20, 20}}

	tests := []struct {
		x, want float64
	}{
		{-5, 10},
		{0, 10},
		{5, 15},
		{10, 20},
		{15, 20},
		{25, 20},
	}

	for _, tt := range tests {
		if got := p.YAt(tt.x); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("YAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestPolyline_IsValid(t *testing.T) {
	if (Polyline{{0, 0}}).IsValid() {
		t.Error("single point should not be valid")
	}
	if (Polyline{{0, 0}, {0, 5}}).IsValid() {
		t.Error("repeated X should not be valid")
	}
	if !(Polyline{{0, 0}, {1, 5}, {3, 2}}).IsValid() {
		t.Error("increasing X should be valid")
	}
}

func TestPolyline_Clip(t *testing.T) {
	p := Polyline{{0, 0}, {10, 10}, {20, 0}}

	clipped := p.Clip(5, 15)
	if len(clipped) != 3 {
		t.Fatalf("expected 3 points, got %d", len(clipped))
	}
	if clipped.First() != (Point{5, 5}) || clipped.Last() != (Point{15, 5}) {
		t.Errorf("unexpected clip ends %v %v", clipped.First(), clipped.Last())
	}

	if got := p.Clip(30, 40); got != nil {
		t.Errorf("expected nil clip outside range, got %v", got)
	}
}

func TestPolyline_Bounds(t *testing.T) {
	p := Polyline{{1.5, 10}, {8, 4.2}}
	want := image.Rect(1, 4, 9, 11)
	if got := p.Bounds(); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestPolyline_MaxDeviation(t *testing.T) {
	simplified := Polyline{{0, 0}, {10, 0}}
	original := Polyline{{0, 0}, {5, 2}, {10, 0}}
	if got := simplified.MaxDeviation(original); math.Abs(got-2) > 1e-9 {
		t.Errorf("MaxDeviation = %v, want 2", got)
	}
}

func TestParseSymbol(t *testing.T) {
	for s := SymbolShortStroke; s <= SymbolRightCurve; s++ {
		got, err := ParseSymbol(s.String())
		if err != nil {
			t.Fatalf("ParseSymbol(%q) failed: %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseSymbol(%q) = %v", s.String(), got)
		}
	}

	if _, err := ParseSymbol("swash"); err == nil {
		t.Error("expected error for unknown symbol")
	}
}

func TestSignature_Codes(t *testing.T) {
	s := Signature{Elements: []SignatureElement{
		{Symbol: SymbolLongStroke},
		{Symbol: SymbolShortStroke},
		{Symbol: SymbolDot},
	}}
	if got := s.Codes(); got != "li." {
		t.Errorf("Codes = %q, want %q", got, "li.")
	}
}

func TestMedianLine_SignatureCache(t *testing.T) {
	line := NewMedianLine(Polyline{{0, 10}, {100, 12}}, 30)

	if _, ok := line.Signature(); ok {
		t.Fatal("new line should have no cached signature")
	}

	calls := 0
	compute := func(p Polyline, h float64) (Signature, error) {
		calls++
		return Signature{Elements: []SignatureElement{{Symbol: SymbolDot, Box: image.Rect(0, 0, 100, 30)}}}, nil
	}

	first, err := line.SignatureOrCompute(compute)
	if err != nil {
		t.Fatal(err)
	}
	second, err := line.SignatureOrCompute(compute)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected one computation, got %d", calls)
	}
	if first.Codes() != second.Codes() {
		t.Error("cached signature differs from first result")
	}

	// Mutating a returned copy must not touch the cache
	second.Elements[0].Symbol = SymbolLeftCurve
	cached, _ := line.Signature()
	if cached.Elements[0].Symbol != SymbolDot {
		t.Error("cache was mutated through a returned value")
	}

	line.SetPolyline(Polyline{{0, 11}, {100, 13}})
	if _, ok := line.Signature(); ok {
		t.Error("SetPolyline should invalidate the cache")
	}

	line.SetSignature(first)
	line.InvalidateSignature()
	if _, ok := line.Signature(); ok {
		t.Error("InvalidateSignature should clear the cache")
	}
}

func TestMedianLine_ComputeError(t *testing.T) {
	line := NewMedianLine(Polyline{{0, 0}, {1, 0}}, 10)
	boom := errors.New("boom")

	_, err := line.SignatureOrCompute(func(Polyline, float64) (Signature, error) {
		return Signature{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected compute error, got %v", err)
	}
	if _, ok := line.Signature(); ok {
		t.Error("failed computation must not be cached")
	}
}

func TestMedianLine_ConcurrentCompute(t *testing.T) {
	line := NewMedianLine(Polyline{{0, 0}, {10, 0}}, 10)

	var mu sync.Mutex
	calls := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = line.SignatureOrCompute(func(Polyline, float64) (Signature, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				return Signature{Diagnostic: "empty"}, nil
			})
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected exactly one computation, got %d", calls)
	}
}

func TestPageLayout_Line(t *testing.T) {
	layout := NewPageLayout(100, 200)
	line := NewMedianLine(Polyline{{0, 0}, {10, 0}}, 10)
	layout.AddColumn(Column{Zone: ColumnZone{Rect: image.Rect(0, 0, 100, 200)}, Lines: []*MedianLine{line}})

	if layout.Line(0, 0) != line {
		t.Error("expected line at (0,0)")
	}
	if layout.Line(1, 0) != nil || layout.Line(0, 1) != nil {
		t.Error("expected nil for out of range indexes")
	}
	if layout.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1", layout.LineCount())
	}
}
