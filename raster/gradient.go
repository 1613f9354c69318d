package raster

import "math"

// Gradient holds the gradient magnitude and orientation of an image. The
// orientation is in radians in (-π, π], measured with y pointing down, and
// points from dark towards light.
type Gradient struct {
	Magnitude   *FloatImage
	Orientation *FloatImage
}

// NewGradient combines x and y derivative planes into a gradient
func NewGradient(gx, gy *FloatImage) *Gradient {
	g := &Gradient{
		Magnitude:   NewFloatImage(gx.Width, gx.Height),
		Orientation: NewFloatImage(gx.Width, gx.Height),
	}
	for i := range gx.Pix {
		dx, dy := float64(gx.Pix[i]), float64(gy.Pix[i])
		g.Magnitude.Pix[i] = float32(math.Hypot(dx, dy))
		g.Orientation.Pix[i] = float32(math.Atan2(dy, dx))
	}
	return g
}

// Width returns the gradient width
func (g *Gradient) Width() int { return g.Magnitude.Width }

// Height returns the gradient height
func (g *Gradient) Height() int { return g.Magnitude.Height }

// MagnitudeAt returns the magnitude at (x, y) and whether it was in range
func (g *Gradient) MagnitudeAt(x, y int) (float32, bool) {
	return g.Magnitude.Get(x, y)
}

// OrientationByte returns the orientation at (x, y) quantized to 0..255
func (g *Gradient) OrientationByte(x, y int) uint8 {
	return AngleByte(float64(g.Orientation.At(x, y)))
}

// AngleByte maps an angle in radians onto 0..255
func AngleByte(theta float64) uint8 {
	t := math.Mod(theta, 2*math.Pi)
	if t < 0 {
		t += 2 * math.Pi
	}
	return uint8(int(t/(2*math.Pi)*256) & 0xff)
}

// AngleSector maps an angle in radians onto n sectors, the first centered on
// the positive x axis
func AngleSector(theta float64, n int) int {
	width := 2 * math.Pi / float64(n)
	t := math.Mod(theta+width/2, 2*math.Pi)
	if t < 0 {
		t += 2 * math.Pi
	}
	return int(t/width) % n
}
