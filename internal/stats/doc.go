// Package stats provides the small numeric helpers shared by the analysis
// stages: data-derived thresholds, medians, running regressions and 1-D
// histogram smoothing and mode extraction.
package stats
