//go:build !opencv

package raster

import "image"

// computeGradient applies a 3×3 Sobel operator, normalized so that a unit
// intensity ramp yields a unit gradient.
func computeGradient(gray *image.Gray) *Gradient {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	gx := NewFloatImage(w, h)
	gy := NewFloatImage(w, h)

	at := func(x, y int) float32 {
		x = clamp(x, 0, w-1)
		y = clamp(y, 0, h-1)
		return float32(gray.Pix[y*gray.Stride+x])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			dy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			gx.Pix[y*w+x] = dx / 8
			gy.Pix[y*w+x] = dy / 8
		}
	}

	return NewGradient(gx, gy)
}
