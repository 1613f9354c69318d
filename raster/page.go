package raster

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// ErrEmptyImage is returned when a page image has no pixels.
var ErrEmptyImage = errors.New("raster: empty image")

// Page owns the RGB, grayscale and gradient views of one scanned page. The
// views are anchored at (0, 0) whatever the bounds of the source image.
type Page struct {
	rgb  *image.NRGBA
	gray *image.Gray

	gradOnce sync.Once
	grad     *Gradient
}

// NewPage builds a page from any decoded image.
func NewPage(img image.Image) (*Page, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	b := img.Bounds()
	rect := image.Rect(0, 0, b.Dx(), b.Dy())

	rgb := image.NewNRGBA(rect)
	draw.Draw(rgb, rect, img, b.Min, draw.Src)

	gray, ok := img.(*image.Gray)
	if !ok || b.Min != (image.Point{}) {
		gray = image.NewGray(rect)
		for y := 0; y < rect.Dy(); y++ {
			for x := 0; x < rect.Dx(); x++ {
				gray.SetGray(x, y, color.GrayModel.Convert(rgb.NRGBAAt(x, y)).(color.Gray))
			}
		}
	}

	return &Page{rgb: rgb, gray: gray}, nil
}

// Width returns the page width in pixels
func (p *Page) Width() int { return p.gray.Rect.Dx() }

// Height returns the page height in pixels
func (p *Page) Height() int { return p.gray.Rect.Dy() }

// Bounds returns the page rectangle
func (p *Page) Bounds() image.Rectangle { return p.gray.Rect }

// Gray returns the grayscale view. Callers must not modify it.
func (p *Page) Gray() *image.Gray { return p.gray }

// RGB returns the color view. Callers must not modify it.
func (p *Page) RGB() *image.NRGBA { return p.rgb }

// GrayAt returns the gray level at (x, y), clamped to the page
func (p *Page) GrayAt(x, y int) uint8 {
	x = clamp(x, 0, p.Width()-1)
	y = clamp(y, 0, p.Height()-1)
	return p.gray.Pix[y*p.gray.Stride+x]
}

// Gradient returns the page gradient, computing it on first use.
func (p *Page) Gradient() *Gradient {
	p.gradOnce.Do(func() {
		p.grad = computeGradient(p.gray)
	})
	return p.grad
}
