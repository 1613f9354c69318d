package filters

import (
	"image"

	"github.com/tsawler/scriptorium/raster"
	"golang.org/x/image/draw"
)

// Reduction is the result of MinReduce: the darkest gray value of every bucket
// and the page X coordinate of the pixel it came from
type Reduction struct {
	Values *raster.FloatImage
	ArgX   []int // page X of the darkest pixel, indexed like Values.Pix
	Bucket int
	Origin image.Point
}

// MinReduce shrinks rect of gray horizontally by bucket, keeping the darkest
// pixel of every bucket. Rows are kept as they are. rect is clipped to gray.
func MinReduce(gray *image.Gray, rect image.Rectangle, bucket int) *Reduction {
	rect = rect.Intersect(gray.Rect)
	if bucket < 1 {
		bucket = 1
	}

	w := (rect.Dx() + bucket - 1) / bucket
	h := rect.Dy()
	red := &Reduction{
		Values: raster.NewFloatImage(w, h),
		ArgX:   make([]int, w*h),
		Bucket: bucket,
		Origin: rect.Min,
	}

	for y := 0; y < h; y++ {
		py := rect.Min.Y + y
		for u := 0; u < w; u++ {
			x0 := rect.Min.X + u*bucket
			x1 := min(x0+bucket, rect.Max.X)
			best, bestX := uint8(255), x0
			for x := x0; x < x1; x++ {
				if v := gray.Pix[gray.PixOffset(x, py)]; v < best {
					best, bestX = v, x
				}
			}
			red.Values.Pix[y*w+u] = float32(best)
			red.ArgX[y*w+u] = bestX
		}
	}

	return red
}

// PageX returns the page X coordinate at the center of bucket u
func (r *Reduction) PageX(u int) float64 {
	return float64(r.Origin.X) + (float64(u)+0.5)*float64(r.Bucket)
}

// Downscale resamples gray to width×height with a bilinear kernel, which
// averages over the source footprint when shrinking.
func Downscale(gray *image.Gray, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.BiLinear.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)
	return dst
}
