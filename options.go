package scriptorium

import "github.com/tsawler/scriptorium/estimate"

// ExtractOptions holds configuration for page analysis.
type ExtractOptions struct {
	// Expected layout
	columns int
	lines   []int

	// Scalars from another imaging tool; nil means measure the page
	metrics *estimate.Metrics

	// Processing options
	config     Config
	signatures bool
	workers    int
}

// defaultOptions returns the default analysis options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		columns:    1,
		lines:      nil, // nil means the caller must set them
		metrics:    nil,
		config:     DefaultConfig(),
		signatures: false,
		workers:    0,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		columns:    o.columns,
		config:     o.config,
		signatures: o.signatures,
		workers:    o.workers,
	}

	// Deep copy lines slice
	if o.lines != nil {
		newOpts.lines = make([]int, len(o.lines))
		copy(newOpts.lines, o.lines)
	}
	if o.metrics != nil {
		m := *o.metrics
		newOpts.metrics = &m
	}

	return newOpts
}
