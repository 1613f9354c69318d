package hocr

import (
	"bytes"
	"errors"
	"image"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/scriptorium/model"
)

func sampleLayout() *model.PageLayout {
	layout := model.NewPageLayout(400, 300)

	left := model.Column{Zone: model.ColumnZone{Index: 0, Rect: image.Rect(0, 0, 199, 300)}}
	signed := model.NewMedianLine(model.Polyline{{X: 36, Y: 75.5}, {X: 110.25, Y: 76}, {X: 183, Y: 75.5}}, 75)
	signed.SetSignature(model.Signature{Elements: []model.SignatureElement{
		{Box: image.Rect(36, 38, 60, 114), Symbol: model.SymbolShortStroke, CutProbability: 231},
		{Box: image.Rect(60, 38, 120, 114), Symbol: model.SymbolLongStroke, CutProbability: 12},
		{Box: image.Rect(120, 38, 183, 114), Symbol: model.SymbolRightCurve},
	}})
	left.Lines = append(left.Lines, signed,
		model.NewMedianLine(model.Polyline{{X: 36, Y: 150.5}, {X: 183, Y: 150.5}}, 75))

	right := model.Column{Zone: model.ColumnZone{Index: 1, Rect: image.Rect(199, 0, 400, 300)}}
	right.Lines = append(right.Lines,
		model.NewMedianLine(model.Polyline{{X: 217, Y: 75.5}, {X: 363, Y: 75.5}}, 75))

	layout.AddColumn(left)
	layout.AddColumn(right)
	return layout
}

func TestWriteRead_RoundTrip(t *testing.T) {
	layout := sampleLayout()

	var buf bytes.Buffer
	if err := Write(&buf, layout, Options{Title: "folio 12r", Image: "f12r.png", Signatures: true}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `class="ocrx_cinfo"`) {
		t.Fatal("expected signature elements in the output")
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Width != 400 || got.Height != 300 {
		t.Errorf("page size %dx%d, want 400x300", got.Width, got.Height)
	}
	if !reflect.DeepEqual(got.Zones(), layout.Zones()) {
		t.Errorf("zones %v, want %v", got.Zones(), layout.Zones())
	}
	if got.LineCount() != layout.LineCount() {
		t.Fatalf("expected %d lines, got %d", layout.LineCount(), got.LineCount())
	}

	for c, col := range layout.Columns {
		for i, want := range col.Lines {
			line := got.Line(c, i)
			if !reflect.DeepEqual(line.Polyline(), want.Polyline()) {
				t.Errorf("column %d line %d: polyline %v, want %v", c, i, line.Polyline(), want.Polyline())
			}
			if line.Height() != want.Height() {
				t.Errorf("column %d line %d: height %v, want %v", c, i, line.Height(), want.Height())
			}
			wantSig, wantOK := want.Signature()
			gotSig, gotOK := line.Signature()
			if gotOK != wantOK || !reflect.DeepEqual(gotSig.Elements, wantSig.Elements) {
				t.Errorf("column %d line %d: signature %v, want %v", c, i, gotSig, wantSig)
			}
		}
	}
}

func TestWrite_WithoutSignatures(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleLayout(), Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(buf.String(), `class="ocrx_cinfo"`) {
		t.Error("expected no signature elements")
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := got.Line(0, 0).Signature(); ok {
		t.Error("expected no cached signature")
	}
}

func TestRead_Latin1(t *testing.T) {
	doc := "<html><head><meta http-equiv=\"Content-Type\" content=\"text/html; charset=iso-8859-1\">" +
		"<title>Psautier \xe9crit</title></head><body>" +
		"<div class=\"ocr_page\" title=\"bbox 0 0 100 50\">" +
		"<div class=\"ocr_carea\" title=\"bbox 0 0 100 50\">" +
		"<span class=\"ocr_line\" title=\"bbox 10 20 90 21; x_polyline 10 20 90 20.5; x_height 12\"></span>" +
		"</div></div></body></html>"

	got, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", got.LineCount())
	}
	p := got.Line(0, 0).Polyline()
	if p.Last().Y != 20.5 || got.Line(0, 0).Height() != 12 {
		t.Errorf("unexpected line %v height %v", p, got.Line(0, 0).Height())
	}
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no page", "<html><body><p>nothing</p></body></html>"},
		{"page without bbox", `<div class="ocr_page" title="image x.png"></div>`},
		{"bad polyline", `<div class="ocr_page" title="bbox 0 0 10 10"><div class="ocr_carea" title="bbox 0 0 10 10">` +
			`<span class="ocr_line" title="x_polyline 5 1 2 1"></span></div></div>`},
		{"bad symbol", `<div class="ocr_page" title="bbox 0 0 10 10"><div class="ocr_carea" title="bbox 0 0 10 10">` +
			`<span class="ocr_line" title="x_polyline 1 1 5 1"><span class="ocrx_cinfo" title="bbox 1 0 5 2; x_symbol ligature">?</span></span></div></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLineTitle(t *testing.T) {
	p := model.Polyline{{X: 10, Y: 20.25}, {X: 55.5, Y: 21}, {X: 90, Y: 19}}
	title := FormatLineTitle(p, 14.5)

	want := "bbox 10 19 91 22; x_polyline 10 20.25 55.5 21 90 19; x_height 14.5"
	if title != want {
		t.Errorf("FormatLineTitle = %q, want %q", title, want)
	}

	got, height, err := ParseLineTitle(title)
	if err != nil {
		t.Fatalf("ParseLineTitle: %v", err)
	}
	if !reflect.DeepEqual(got, p) || height != 14.5 {
		t.Errorf("ParseLineTitle = %v %v", got, height)
	}
}

func TestParseLineTitle_Errors(t *testing.T) {
	tests := []string{
		"bbox 0 0 1 1",
		"x_polyline 1 2 3",
		"x_polyline 1 2 a 4",
		"x_polyline 1 2 3 4; x_height tall",
	}
	for _, title := range tests {
		if _, _, err := ParseLineTitle(title); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseLineTitle(%q): expected ErrMalformed, got %v", title, err)
		}
	}
}

func TestElementTitle(t *testing.T) {
	el := model.SignatureElement{Box: image.Rect(3, 4, 9, 20), Symbol: model.SymbolDescender, CutProbability: 200}
	title := FormatElementTitle(el)
	if title != "bbox 3 4 9 20; x_symbol descender-mark; x_cut 200" {
		t.Errorf("unexpected title %q", title)
	}
	got, err := ParseElementTitle(title)
	if err != nil {
		t.Fatalf("ParseElementTitle: %v", err)
	}
	if got != el {
		t.Errorf("got %v, want %v", got, el)
	}
}
