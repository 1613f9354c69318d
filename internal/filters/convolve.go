package filters

import "github.com/tsawler/scriptorium/raster"

// ConvolveX correlates every row of src with kernel k
func ConvolveX(src *raster.FloatImage, k []float32) *raster.FloatImage {
	out := raster.NewFloatImage(src.Width, src.Height)
	r := len(k) / 2
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			var acc float32
			for i, w := range k {
				acc += w * src.At(x+i-r, y)
			}
			out.Pix[y*out.Width+x] = acc
		}
	}
	return out
}

// ConvolveY correlates every column of src with kernel k
func ConvolveY(src *raster.FloatImage, k []float32) *raster.FloatImage {
	out := raster.NewFloatImage(src.Width, src.Height)
	r := len(k) / 2
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			var acc float32
			for i, w := range k {
				acc += w * src.At(x, y+i-r)
			}
			out.Pix[y*out.Width+x] = acc
		}
	}
	return out
}

// Smooth applies a separable Gaussian of the given sigma
func Smooth(src *raster.FloatImage, sigma float64) *raster.FloatImage {
	k := GaussianKernel(sigma)
	return ConvolveY(ConvolveX(src, k), k)
}

// Derivatives returns the central-difference derivatives Lx, Ly, Lxx, Lxy and
// Lyy of src
func Derivatives(src *raster.FloatImage) (lx, ly, lxx, lxy, lyy *raster.FloatImage) {
	w, h := src.Width, src.Height
	lx = raster.NewFloatImage(w, h)
	ly = raster.NewFloatImage(w, h)
	lxx = raster.NewFloatImage(w, h)
	lxy = raster.NewFloatImage(w, h)
	lyy = raster.NewFloatImage(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.At(x, y)
			l, r := src.At(x-1, y), src.At(x+1, y)
			u, d := src.At(x, y-1), src.At(x, y+1)
			i := y*w + x
			lx.Pix[i] = (r - l) / 2
			ly.Pix[i] = (d - u) / 2
			lxx.Pix[i] = r - 2*c + l
			lyy.Pix[i] = d - 2*c + u
			lxy.Pix[i] = (src.At(x+1, y+1) - src.At(x+1, y-1) - src.At(x-1, y+1) + src.At(x-1, y-1)) / 4
		}
	}
	return lx, ly, lxx, lxy, lyy
}
