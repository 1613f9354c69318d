// Package layout finds the text columns of a scanned manuscript page and the
// median lines of the text inside each column.
//
// # Layout Analysis
//
// The [Analyzer] runs every stage over a page:
//
//	analyzer := layout.NewAnalyzer()
//	result, warnings, err := analyzer.Analyze(page, 2, []int{30})
//
// When stroke width and leading are known from another tool:
//
//	result, warnings, err := analyzer.AnalyzeWithMetrics(page, metrics, 2, []int{30, 28})
//
// # Stages
//
//   - [ColumnLocator] - cuts the page into column zones along gutter seams
//   - [LineTracker] - follows the vertical ink differential into median lines
//   - [Reconciler] - prunes atypical lines when a column has too many
//   - [Refiner] - moves line ends onto the ink and aligns line starts
//   - [Simplify] - drops redundant polyline vertices
//
// Local failures, such as a line whose refined span collapses, are reported
// as [Warning] values and never abort the page.
//
// # Configuration
//
// Each stage can be configured independently:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.Columns.Iterations = 4
//	config.Tracker.MergeLeadingFraction = 0.75
//	analyzer := layout.NewAnalyzerWithConfig(config)
package layout
