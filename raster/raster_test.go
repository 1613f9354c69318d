package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// createTestGray creates a white image with a black rectangle
func createTestGray(width, height int, black image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255)
			if (image.Point{x, y}).In(black) {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestNewPage_Empty(t *testing.T) {
	if _, err := NewPage(nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage for nil image, got %v", err)
	}
	if _, err := NewPage(image.NewGray(image.Rect(0, 0, 0, 10))); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage for zero width, got %v", err)
	}
}

func TestNewPage_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 14, 23))
	img.SetNRGBA(10, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	page, err := NewPage(img)
	if err != nil {
		t.Fatal(err)
	}
	if page.Width() != 4 || page.Height() != 3 {
		t.Fatalf("unexpected size %dx%d", page.Width(), page.Height())
	}
	if page.GrayAt(0, 0) != 255 {
		t.Errorf("expected white origin pixel, got %d", page.GrayAt(0, 0))
	}
	if page.GrayAt(-5, -5) != 255 {
		t.Error("GrayAt should clamp to the nearest pixel")
	}
}

func TestFloatImage_Access(t *testing.T) {
	f := NewFloatImage(3, 2)
	f.Set(2, 1, 7)
	f.Set(5, 5, 9) // ignored

	if got := f.At(10, 10); got != 7 {
		t.Errorf("At should clamp to bottom-right, got %v", got)
	}
	if _, ok := f.Get(3, 0); ok {
		t.Error("Get should report out of range")
	}
	if v, ok := f.Get(2, 1); !ok || v != 7 {
		t.Errorf("Get(2,1) = %v, %v", v, ok)
	}

	lo, hi := f.MinMax()
	if lo != 0 || hi != 7 {
		t.Errorf("MinMax = %v, %v", lo, hi)
	}
}

func TestMask_Components(t *testing.T) {
	m := NewMask(10, 5)
	// Diagonal pair joins under 8-connectivity
	m.Set(1, 1, true)
	m.Set(2, 2, true)
	// Separate block
	for y := 0; y < 2; y++ {
		for x := 6; x < 9; x++ {
			m.Set(x, y, true)
		}
	}

	comps := m.Components()
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if comps[0].Area() != 2 || comps[0].Width() != 2 || comps[0].Height() != 2 {
		t.Errorf("unexpected first component %+v", comps[0])
	}
	if comps[1].Area() != 6 || comps[1].Fill() != 1 {
		t.Errorf("unexpected second component %+v", comps[1])
	}
	if m.At(-1, 0) {
		t.Error("out of range pixels must be unset")
	}
}

func TestGradient_VerticalEdge(t *testing.T) {
	// Dark left half, light right half: gradient points right
	page, err := NewPage(createTestGray(20, 10, image.Rect(0, 0, 10, 10)))
	if err != nil {
		t.Fatal(err)
	}

	g := page.Gradient()
	if g != page.Gradient() {
		t.Error("gradient should be memoized")
	}

	mag, ok := g.MagnitudeAt(10, 5)
	if !ok || mag <= 0 {
		t.Fatalf("expected positive magnitude at the edge, got %v", mag)
	}
	if s := AngleSector(float64(g.Orientation.At(10, 5)), 4); s != 0 {
		t.Errorf("expected right-facing sector 0, got %d", s)
	}
	if m, _ := g.MagnitudeAt(3, 5); m != 0 {
		t.Errorf("expected zero magnitude in flat area, got %v", m)
	}
}

func TestAngleSector(t *testing.T) {
	tests := []struct {
		theta float64
		want  int
	}{
		{0, 0},
		{math.Pi / 2, 1},
		{math.Pi, 2},
		{-math.Pi / 2, 3},
		{math.Pi / 5, 0},
	}
	for _, tt := range tests {
		if got := AngleSector(tt.theta, 4); got != tt.want {
			t.Errorf("AngleSector(%v) = %d, want %d", tt.theta, got, tt.want)
		}
	}

	if AngleByte(0) != 0 || AngleByte(math.Pi) != 128 || AngleByte(-math.Pi/2+0.01) != 192 {
		t.Error("unexpected AngleByte quantization")
	}
}

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name string
		raw  RawImage
		want uint8 // gray at (1, 0)
	}{
		{
			name: "8-bit gray",
			raw:  RawImage{Width: 2, Height: 1, ColorSpace: "DeviceGray", BitsPerComponent: 8, Data: []byte{0, 200}},
			want: 200,
		},
		{
			name: "1-bit bilevel",
			raw:  RawImage{Width: 2, Height: 1, ColorSpace: "DeviceGray", BitsPerComponent: 1, Data: []byte{0x40}},
			want: 255,
		},
		{
			name: "4-bit gray",
			raw:  RawImage{Width: 2, Height: 1, ColorSpace: "DeviceGray", BitsPerComponent: 4, Data: []byte{0x0f}},
			want: 255,
		},
		{
			name: "RGB",
			raw:  RawImage{Width: 2, Height: 1, ColorSpace: "DeviceRGB", BitsPerComponent: 8, Data: []byte{0, 0, 0, 255, 255, 255}},
			want: 255,
		},
		{
			name: "CMYK",
			raw:  RawImage{Width: 2, Height: 1, ColorSpace: "DeviceCMYK", BitsPerComponent: 8, Data: []byte{0, 0, 0, 255, 0, 0, 0, 0}},
			want: 255,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := FromRaw(tt.raw)
			if err != nil {
				t.Fatalf("FromRaw failed: %v", err)
			}
			if got := page.GrayAt(1, 0); got != tt.want {
				t.Errorf("GrayAt(1,0) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromRaw_Errors(t *testing.T) {
	if _, err := FromRaw(RawImage{Width: 0, Height: 1}); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
	if _, err := FromRaw(RawImage{Width: 1, Height: 1, ColorSpace: "Lab", BitsPerComponent: 8, Data: []byte{1}}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := FromRaw(RawImage{Width: 4, Height: 4, ColorSpace: "DeviceGray", BitsPerComponent: 8, Data: []byte{1}}); err == nil {
		t.Error("expected error for short data")
	}
}

func TestOpen_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestGray(8, 6, image.Rect(2, 2, 4, 4))); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "page.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	page, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if page.Width() != 8 || page.Height() != 6 {
		t.Errorf("unexpected size %dx%d", page.Width(), page.Height())
	}
	if page.GrayAt(3, 3) != 0 || page.GrayAt(0, 0) != 255 {
		t.Error("unexpected pixel values after decode")
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Decode(bytes.NewReader([]byte("%PDF-1.7\n"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for a PDF, got %v", err)
	}
	// Valid magic, truncated body
	if _, err := Decode(bytes.NewReader([]byte("\x89PNG\r\n\x1a\n\x00\x00"))); err == nil || errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected a decode error, got %v", err)
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatPNG, "PNG"},
		{FormatJPEG, "JPEG"},
		{FormatGIF, "GIF"},
		{FormatTIFF, "TIFF"},
		{FormatBMP, "BMP"},
		{FormatWebP, "WebP"},
		{FormatUnknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"folio.png", FormatPNG},
		{"FOLIO.JPG", FormatJPEG},
		{"folio.jpeg", FormatJPEG},
		{"scan.tif", FormatTIFF},
		{"scan.TIFF", FormatTIFF},
		{"page.webp", FormatWebP},
		{"page.bmp", FormatBMP},
		{"anim.gif", FormatGIF},
		{"document.pdf", FormatUnknown},
		{"noextension", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := DetectFormat(tt.filename); got != tt.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectFormatFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PNG", []byte("\x89PNG\r\n\x1a\n...."), FormatPNG},
		{"JPEG", []byte{0xFF, 0xD8, 0xFF, 0xE0}, FormatJPEG},
		{"GIF89a", []byte("GIF89a"), FormatGIF},
		{"TIFF little endian", []byte("II*\x00\x08\x00"), FormatTIFF},
		{"TIFF big endian", []byte("MM\x00*\x00\x00"), FormatTIFF},
		{"BMP", []byte("BM\x36\x00"), FormatBMP},
		{"WebP", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), FormatWebP},
		{"RIFF without WebP", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), FormatUnknown},
		{"PDF", []byte("%PDF-1.4"), FormatUnknown},
		{"too short", []byte{0x89}, FormatUnknown},
		{"empty", nil, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormatFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFormatFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}
