package signature

import "github.com/tsawler/scriptorium/model"

// element is a run of equal tags over band columns [start, end)
type element struct {
	start, end int
	symbol     model.Symbol
}

// assemble groups contiguous equal tags into elements
func assemble(tags []model.Symbol) []element {
	var out []element
	for c := 0; c < len(tags); {
		if tags[c] == model.SymbolUnknown {
			c++
			continue
		}
		end := c
		for end < len(tags) && tags[end] == tags[c] {
			end++
		}
		out = append(out, element{start: c, end: end, symbol: tags[c]})
		c = end
	}
	return out
}

// spread widens the elements until they tile the whole band. Neighbours meet
// at the column with the least ink in the gap between them; the leftmost
// such column wins.
func spread(elements []element, ink []float64) {
	if len(elements) == 0 {
		return
	}
	for i := 0; i+1 < len(elements); i++ {
		lo, hi := elements[i].end, elements[i+1].start
		cut := lo
		for c := lo + 1; c <= hi && c < len(ink); c++ {
			if ink[c] < ink[cut] {
				cut = c
			}
		}
		elements[i].end = cut
		elements[i+1].start = cut
	}
	elements[0].start = 0
	elements[len(elements)-1].end = len(ink)
}
