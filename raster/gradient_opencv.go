//go:build opencv

package raster

import (
	"image"

	"gocv.io/x/gocv"
)

// computeGradient runs OpenCV's Sobel operator with replicated borders,
// normalized like the pure Go backend.
func computeGradient(gray *image.Gray) *Gradient {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()

	data := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(data[y*w:(y+1)*w], gray.Pix[y*gray.Stride:y*gray.Stride+w])
	}

	src, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8U, data)
	if err != nil {
		return NewGradient(NewFloatImage(w, h), NewFloatImage(w, h))
	}
	defer src.Close()

	dx := gocv.NewMat()
	defer dx.Close()
	dy := gocv.NewMat()
	defer dy.Close()

	gocv.Sobel(src, &dx, gocv.MatTypeCV32F, 1, 0, 3, 0.125, 0, gocv.BorderReplicate)
	gocv.Sobel(src, &dy, gocv.MatTypeCV32F, 0, 1, 3, 0.125, 0, gocv.BorderReplicate)

	gx := NewFloatImage(w, h)
	gy := NewFloatImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx.Pix[y*w+x] = dx.GetFloatAt(y, x)
			gy.Pix[y*w+x] = dy.GetFloatAt(y, x)
		}
	}

	return NewGradient(gx, gy)
}
