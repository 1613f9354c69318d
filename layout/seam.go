package layout

import (
	"image"
	"math"

	"github.com/tsawler/scriptorium/raster"
)

// seamField is the working state of the column seam search: an energy field
// over the downscaled page and the mask of pixels already claimed by seams.
type seamField struct {
	w, h    int
	energy  *raster.FloatImage
	claimed *raster.Mask
	cost    []float32
	back    []int32
	cfg     ColumnConfig
}

// newSeamField builds the energy field |dI/dy| of small, using central
// differences inside and one-sided differences on the top and bottom rows.
func newSeamField(small *image.Gray, cfg ColumnConfig) *seamField {
	w, h := small.Rect.Dx(), small.Rect.Dy()
	f := &seamField{
		w:       w,
		h:       h,
		energy:  raster.NewFloatImage(w, h),
		claimed: raster.NewMask(w, h),
		cost:    make([]float32, w*h),
		back:    make([]int32, w*h),
		cfg:     cfg,
	}

	at := func(x, y int) float32 {
		return float32(small.Pix[small.PixOffset(x, y)])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var e float32
			switch {
			case h == 1:
				e = 0
			case y == 0:
				e = at(x, 1) - at(x, 0)
			case y == h-1:
				e = at(x, y) - at(x, y-1)
			default:
				e = (at(x, y+1) - at(x, y-1)) / 2
			}
			if e < 0 {
				e = -e
			}
			f.energy.Set(x, y, e)
		}
	}

	return f
}

// probe walks from x along dir looking for an unclaimed pixel in row y. It
// reverses direction when it hits the edge or the probe limit, and gives up
// after MaxProbeFlips reversals.
func (f *seamField) probe(x, y, dir int) int {
	limit := max(0, f.cfg.ProbeLimit)
	for flips := 0; flips <= f.cfg.MaxProbeFlips; flips++ {
		for step := 0; step <= limit; step++ {
			p := x + dir*step
			if p < 0 || p >= f.w {
				break
			}
			if !f.claimed.At(p, y) {
				return p
			}
		}
		dir = -dir
	}
	return -1
}

// carve finds the cheapest top-to-bottom seam over unclaimed pixels, claims
// it and raises the energy beside it. It reports false when no seam remains.
func (f *seamField) carve() bool {
	inf := float32(math.Inf(1))
	w := f.w

	for x := 0; x < w; x++ {
		if f.claimed.At(x, 0) {
			f.cost[x] = inf
		} else {
			f.cost[x] = f.energy.At(x, 0)
		}
		f.back[x] = -1
	}

	for y := 1; y < f.h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			f.cost[i] = inf
			f.back[i] = -1
			if f.claimed.At(x, y) {
				continue
			}

			best, bestX := inf, -1
			// Straight down wins ties, which keeps seams in flat gutters straight
			candidates := [3]int{-1, -1, -1}
			if !f.claimed.At(x, y-1) {
				candidates[0] = x
			}
			if x > 0 {
				candidates[1] = f.probe(x-1, y-1, -1)
			}
			if x < w-1 {
				candidates[2] = f.probe(x+1, y-1, 1)
			}
			for _, px := range candidates {
				if px < 0 {
					continue
				}
				if c := f.cost[(y-1)*w+px]; c < best {
					best, bestX = c, px
				}
			}
			if bestX < 0 {
				continue
			}
			f.cost[i] = best + f.energy.At(x, y)
			f.back[i] = int32(bestX)
		}
	}

	last := (f.h - 1) * w
	end, endCost := -1, inf
	for x := 0; x < w; x++ {
		if c := f.cost[last+x]; c < endCost {
			end, endCost = x, c
		}
	}
	if end < 0 {
		return false
	}

	x := end
	for y := f.h - 1; y >= 0; y-- {
		f.claim(x, y)
		if y > 0 {
			x = int(f.back[y*w+x])
		}
	}
	return true
}

// claim marks (x, y) and discourages later seams from running alongside it
func (f *seamField) claim(x, y int) {
	f.claimed.Set(x, y, true)
	bump := f.cfg.ClaimPenalty*f.energy.At(x, y) + f.cfg.ClaimEpsilon
	for _, nx := range [2]int{x - 1, x + 1} {
		if !f.claimed.At(nx, y) {
			f.energy.Add(nx, y, bump)
		}
	}
}

// foldRuns adds one count to hist[x] for every vertical claimed run at x > 0
// longer than minRun rows
func (f *seamField) foldRuns(hist []int, minRun float64) {
	for x := 1; x < f.w; x++ {
		length := 0
		for y := 0; y <= f.h; y++ {
			if y < f.h && f.claimed.At(x, y) {
				length++
				continue
			}
			if length > 0 && float64(length) > minRun {
				hist[x]++
			}
			length = 0
		}
	}
}
