package signature

import (
	"math"

	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
)

// band is the straightened strip of page around a median line. Column c is
// page x x0+c; row half is the median line itself.
type band struct {
	x0      int
	width   int
	half    int
	height  int
	centers []int
	gray    *raster.FloatImage
}

// newBand samples a strip of the given height centered on line
func newBand(page *raster.Page, line model.Polyline, height float64) *band {
	x0 := int(math.Floor(line.First().X))
	x1 := int(math.Ceil(line.Last().X))
	half := max(1, int(math.Ceil(height/2)))

	b := &band{
		x0:      x0,
		width:   max(1, x1-x0),
		half:    half,
		height:  2*half + 1,
		centers: make([]int, max(1, x1-x0)),
	}
	b.gray = raster.NewFloatImage(b.width, b.height)
	for c := 0; c < b.width; c++ {
		b.centers[c] = int(math.Round(line.YAt(float64(x0+c) + 0.5)))
		for r := 0; r < b.height; r++ {
			b.gray.Set(c, r, float32(page.GrayAt(x0+c, b.pageY(c, r))))
		}
	}
	return b
}

// pageY returns the page row of band cell (c, r)
func (b *band) pageY(c, r int) int {
	return b.centers[c] + r - b.half
}

// pageX returns the page column of band column c
func (b *band) pageX(c int) int {
	return b.x0 + c
}

// columnInk returns the darkness summed over every band column
func (b *band) columnInk() []float64 {
	ink := make([]float64, b.width)
	for c := 0; c < b.width; c++ {
		for r := 0; r < b.height; r++ {
			ink[c] += 255 - float64(b.gray.At(c, r))
		}
	}
	return ink
}
