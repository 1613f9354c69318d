package signature

import (
	"math"

	"github.com/tsawler/scriptorium/internal/stats"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
)

// Four-sector orientations of the gradient, which points from ink to
// parchment
const (
	facingRight = 0
	facingLeft  = 2
)

// inkMask fills every row interval that opens on a left-facing significant
// edge and closes on the next right-facing one
func inkMask(d *differential, width, height int) *raster.Mask {
	ink := raster.NewMask(width, height)
	for r := 0; r < height; r++ {
		open := -1
		for c := 0; c < width; c++ {
			if !d.significant(c, r) {
				continue
			}
			switch d.sector(c, r, 4) {
			case facingLeft:
				if open < 0 {
					open = c
				}
			case facingRight:
				if open >= 0 {
					for x := open; x <= c; x++ {
						ink.Set(x, r, true)
					}
					open = -1
				}
			}
		}
	}
	return ink
}

// modes holds the peaks of the ink projections above and below the core
type modes struct {
	top    []int
	bottom []int
}

// projectModes projects ink above and below the core of the band and returns
// the peaks of both projections
func (e *Extractor) projectModes(b *band, ink *raster.Mask, sw float64) modes {
	coreHalf := int(math.Round(e.config.CoreFraction * float64(b.height) / 2))
	topEnd := b.half - coreHalf          // rows [0, topEnd)
	bottomStart := b.half + coreHalf + 1 // rows [bottomStart, height)

	top := make([]float64, b.width)
	bottom := make([]float64, b.width)
	for c := 0; c < b.width; c++ {
		for r := 0; r < topEnd; r++ {
			if ink.At(c, r) {
				top[c]++
			}
		}
		for r := bottomStart; r < b.height; r++ {
			if ink.At(c, r) {
				bottom[c]++
			}
		}
	}

	sigma := sw / 2
	return modes{
		top:    stats.LocalMaxima(stats.Smooth(top, sigma), e.config.ModeMinFraction*float64(max(topEnd, 1))),
		bottom: stats.LocalMaxima(stats.Smooth(bottom, sigma), e.config.ModeMinFraction*float64(max(b.height-bottomStart, 1))),
	}
}

// strokeTags segments the median row into ink streams and tags them. A
// stream without modes is a short stroke. Otherwise top modes become long
// strokes, bottom modes descender marks, and a top and bottom mode closer
// than PairDistanceStrokes become one long bar spanning both; every column
// of the stream takes the tag of its nearest mode.
func (e *Extractor) strokeTags(b *band, ink *raster.Mask, m modes, sw float64) []model.Symbol {
	tags := make([]model.Symbol, b.width)
	pairDistance := e.config.PairDistanceStrokes * sw

	for s := 0; s < b.width; {
		if !ink.At(s, b.half) {
			s++
			continue
		}
		end := s
		for end < b.width && ink.At(end, b.half) {
			end++
		}

		marks := make(map[int]model.Symbol)
		top := within(m.top, s, end)
		bottom := within(m.bottom, s, end)
		paired := make(map[int]bool)
		for _, t := range top {
			nearest := -1
			for _, bm := range bottom {
				if paired[bm] {
					continue
				}
				if nearest < 0 || abs(bm-t) < abs(nearest-t) {
					nearest = bm
				}
			}
			if nearest >= 0 && float64(abs(nearest-t)) < pairDistance {
				paired[nearest] = true
				for c := min(t, nearest); c <= max(t, nearest); c++ {
					marks[c] = model.SymbolLongStroke
				}
				continue
			}
			marks[t] = model.SymbolLongStroke
		}
		for _, bm := range bottom {
			if _, ok := marks[bm]; !ok && !paired[bm] {
				marks[bm] = model.SymbolDescender
			}
		}

		for c := s; c < end; c++ {
			tags[c] = nearestMark(marks, c, s, end)
		}
		s = end
	}

	return dilate(tags, int(sw/2))
}

// nearestMark returns the mark closest to c within [start, end), or a short
// stroke when there is none; the left mark breaks ties
func nearestMark(marks map[int]model.Symbol, c, start, end int) model.Symbol {
	if len(marks) == 0 {
		return model.SymbolShortStroke
	}
	for d := 0; d < end-start; d++ {
		if sym, ok := marks[c-d]; ok && c-d >= start {
			return sym
		}
		if sym, ok := marks[c+d]; ok && c+d < end {
			return sym
		}
	}
	return model.SymbolShortStroke
}

// within returns the positions in [start, end)
func within(positions []int, start, end int) []int {
	var out []int
	for _, p := range positions {
		if p >= start && p < end {
			out = append(out, p)
		}
	}
	return out
}

// dilate spreads every tag into untagged neighbours up to radius columns
// away; the nearest tag wins and the left one breaks ties
func dilate(tags []model.Symbol, radius int) []model.Symbol {
	out := append([]model.Symbol(nil), tags...)
	if radius < 1 {
		return out
	}
	for c := range tags {
		if tags[c] != model.SymbolUnknown {
			continue
		}
		for d := 1; d <= radius; d++ {
			if c-d >= 0 && tags[c-d] != model.SymbolUnknown {
				out[c] = tags[c-d]
				break
			}
			if c+d < len(tags) && tags[c+d] != model.SymbolUnknown {
				out[c] = tags[c+d]
				break
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
