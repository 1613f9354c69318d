// batch.go analyzes several pages of one manuscript with shared settings
package scriptorium

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/scriptorium/model"
)

// PageResult is the outcome of analyzing one page of a batch
type PageResult struct {
	Path     string
	Layout   *model.PageLayout
	Warnings []Warning
	Err      error
}

// AnalyzeFiles applies the configuration of template to every path,
// analyzing up to GOMAXPROCS pages at a time (or the template's Workers
// value). A page that fails records its error in the result instead of
// aborting the batch. Results are in the order of paths.
//
// Example:
//
//	tmpl := scriptorium.New().Columns(2).Lines(30)
//	for _, res := range scriptorium.AnalyzeFiles(tmpl, paths) {
//	    if res.Err != nil {
//	        log.Printf("%s: %v", res.Path, res.Err)
//	        continue
//	    }
//	    fmt.Printf("%s: %d lines\n", res.Path, res.Layout.LineCount())
//	}
func AnalyzeFiles(template *Extractor, paths []string) []PageResult {
	results := make([]PageResult, len(paths))

	workers := template.options.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			ext := template.clone()
			ext.filename = path
			ext.page = nil
			// Pages run in parallel; keep each page's stages sequential
			ext.options.workers = 1

			res := PageResult{Path: path}
			res.Layout, res.Warnings, res.Err = ext.Layout()
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}
