package layout

import (
	"math"
	"sort"

	"github.com/tsawler/scriptorium/internal/stats"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
)

// orientationBins is the size of the per-line orientation histogram
const orientationBins = 64

// ReconcileConfig holds configuration for line-count reconciliation
type ReconcileConfig struct {
	// BandHalfHeight is how many rows above and below the line are sampled
	// Default: 3 pixels
	BandHalfHeight int `yaml:"band_half_height"`
}

// DefaultReconcileConfig returns sensible default configuration
func DefaultReconcileConfig() ReconcileConfig {
	return ReconcileConfig{BandHalfHeight: 3}
}

// Reconciler prunes atypical median lines when a column has more candidates
// than expected
type Reconciler struct {
	config ReconcileConfig
}

// NewReconciler creates a reconciler with default configuration
func NewReconciler() *Reconciler {
	return &Reconciler{config: DefaultReconcileConfig()}
}

// NewReconcilerWithConfig creates a reconciler with custom configuration
func NewReconcilerWithConfig(config ReconcileConfig) *Reconciler {
	return &Reconciler{config: config}
}

// Reconcile keeps the expected most typical lines, in their original order,
// and returns them with their indices into lines. Lines are compared by the
// orientation histogram of the significant gradient around them. When there
// are no more lines than expected the input is returned as is.
func (r *Reconciler) Reconcile(lines []model.Polyline, gradient *raster.Gradient, expected int) ([]model.Polyline, []int) {
	if expected < 0 {
		expected = 0
	}
	if len(lines) <= expected {
		kept := make([]int, len(lines))
		for i := range kept {
			kept[i] = i
		}
		return lines, kept
	}

	hists := r.histograms(lines, gradient)

	n := len(lines)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	total := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := 0.0
			for b := 0; b < orientationBins; b++ {
				d += math.Abs(hists[i][b] - hists[j][b])
			}
			dist[i][j], dist[j][i] = d, d
			total += 2 * d
		}
	}

	scores := make([]float64, n)
	if total > 0 {
		for i := 0; i < n; i++ {
			sum := 0.0
			for _, d := range dist[i] {
				sum += d
			}
			scores[i] = sum / total
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})
	kept := order[:expected]
	sort.Ints(kept)

	out := make([]model.Polyline, len(kept))
	for i, k := range kept {
		out[i] = lines[k]
	}
	return out, kept
}

// histograms builds one normalized orientation histogram per line from the
// pixels whose magnitude passes the Fisher threshold of all sampled pixels
func (r *Reconciler) histograms(lines []model.Polyline, gradient *raster.Gradient) [][]float64 {
	type sample struct{ x, y int }
	samples := make([][]sample, len(lines))
	var magnitudes []float32

	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		x0 := int(math.Ceil(line.First().X))
		x1 := int(math.Floor(line.Last().X))
		for x := x0; x <= x1; x++ {
			cy := int(math.Round(line.YAt(float64(x))))
			for y := cy - r.config.BandHalfHeight; y <= cy+r.config.BandHalfHeight; y++ {
				m, ok := gradient.MagnitudeAt(x, y)
				if !ok {
					continue
				}
				samples[i] = append(samples[i], sample{x, y})
				magnitudes = append(magnitudes, m)
			}
		}
	}

	threshold := stats.FisherThreshold(magnitudes)
	hists := make([][]float64, len(lines))
	for i := range lines {
		h := make([]float64, orientationBins)
		for _, s := range samples[i] {
			if m, _ := gradient.MagnitudeAt(s.x, s.y); m <= threshold {
				continue
			}
			h[int(gradient.OrientationByte(s.x, s.y))/4]++
		}
		peak := 0.0
		for _, v := range h {
			peak = math.Max(peak, v)
		}
		if peak > 0 {
			for b := range h {
				h[b] /= peak
			}
		}
		hists[i] = h
	}
	return hists
}
