package raster

// FloatImage is a single-channel float32 plane
type FloatImage struct {
	Width  int
	Height int
	Pix    []float32
}

// NewFloatImage allocates a zeroed plane
func NewFloatImage(width, height int) *FloatImage {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &FloatImage{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height),
	}
}

// In reports whether (x, y) is inside the plane
func (f *FloatImage) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// At returns the value at (x, y), clamping the coordinate to the nearest edge
func (f *FloatImage) At(x, y int) float32 {
	if f.Width == 0 || f.Height == 0 {
		return 0
	}
	return f.Pix[clamp(y, 0, f.Height-1)*f.Width+clamp(x, 0, f.Width-1)]
}

// Get returns the value at (x, y) and whether the coordinate was in range
func (f *FloatImage) Get(x, y int) (float32, bool) {
	if !f.In(x, y) {
		return 0, false
	}
	return f.Pix[y*f.Width+x], true
}

// Set stores v at (x, y); out of range coordinates are ignored
func (f *FloatImage) Set(x, y int, v float32) {
	if f.In(x, y) {
		f.Pix[y*f.Width+x] = v
	}
}

// Add adds v to the value at (x, y); out of range coordinates are ignored
func (f *FloatImage) Add(x, y int, v float32) {
	if f.In(x, y) {
		f.Pix[y*f.Width+x] += v
	}
}

// Clone returns a deep copy
func (f *FloatImage) Clone() *FloatImage {
	out := NewFloatImage(f.Width, f.Height)
	copy(out.Pix, f.Pix)
	return out
}

// MinMax returns the smallest and largest value in the plane
func (f *FloatImage) MinMax() (float32, float32) {
	if len(f.Pix) == 0 {
		return 0, 0
	}
	lo, hi := f.Pix[0], f.Pix[0]
	for _, v := range f.Pix[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Mask is a single-channel boolean plane
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask allocates a cleared mask
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// In reports whether (x, y) is inside the mask
func (m *Mask) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At reports whether (x, y) is set; coordinates outside the mask are unset
func (m *Mask) At(x, y int) bool {
	if !m.In(x, y) {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set sets or clears (x, y); out of range coordinates are ignored
func (m *Mask) Set(x, y int, v bool) {
	if m.In(x, y) {
		m.bits[y*m.Width+x] = v
	}
}

// Count returns the number of set pixels
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a deep copy
func (m *Mask) Clone() *Mask {
	out := NewMask(m.Width, m.Height)
	copy(out.bits, m.bits)
	return out
}

// Component is one 8-connected set of mask pixels
type Component struct {
	Pixels     [][2]int // (x, y) pairs
	MinX, MinY int
	MaxX, MaxY int // inclusive
}

// Width returns the component's bounding box width
func (c Component) Width() int { return c.MaxX - c.MinX + 1 }

// Height returns the component's bounding box height
func (c Component) Height() int { return c.MaxY - c.MinY + 1 }

// Area returns the number of pixels in the component
func (c Component) Area() int { return len(c.Pixels) }

// Fill returns the fraction of the bounding box covered by the component
func (c Component) Fill() float64 {
	box := c.Width() * c.Height()
	if box == 0 {
		return 0
	}
	return float64(c.Area()) / float64(box)
}

// Components labels the 8-connected components of the mask in scan order
func (m *Mask) Components() []Component {
	seen := make([]bool, len(m.bits))
	var comps []Component
	var stack [][2]int

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := y*m.Width + x
			if !m.bits[idx] || seen[idx] {
				continue
			}

			c := Component{MinX: x, MinY: y, MaxX: x, MaxY: y}
			seen[idx] = true
			stack = append(stack[:0], [2]int{x, y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				c.Pixels = append(c.Pixels, p)
				c.MinX = min(c.MinX, p[0])
				c.MinY = min(c.MinY, p[1])
				c.MaxX = max(c.MaxX, p[0])
				c.MaxY = max(c.MaxY, p[1])

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p[0]+dx, p[1]+dy
						if !m.In(nx, ny) {
							continue
						}
						n := ny*m.Width + nx
						if m.bits[n] && !seen[n] {
							seen[n] = true
							stack = append(stack, [2]int{nx, ny})
						}
					}
				}
			}

			comps = append(comps, c)
		}
	}

	return comps
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
