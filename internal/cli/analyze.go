package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/scriptorium"
	"github.com/tsawler/scriptorium/hocr"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
)

var (
	analyzeColumns    int
	analyzeLines      []int
	analyzeSignatures bool
	analyzeOutDir     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [image...]",
	Short: "Find the columns and median lines of pages",
	Long: `Analyzes one or more page images sharing the same layout. Without --out
a summary is printed; with --out an hOCR file is written per page.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeColumns, "columns", "c", 1, "expected number of columns")
	analyzeCmd.Flags().IntSliceVarP(&analyzeLines, "lines", "l", nil, "expected lines, one value for every column or one per column")
	analyzeCmd.Flags().BoolVarP(&analyzeSignatures, "signatures", "s", false, "compute line signatures")
	analyzeCmd.Flags().StringVarP(&analyzeOutDir, "out", "o", "", "directory receiving one .hocr file per page")
	_ = analyzeCmd.MarkFlagRequired("lines")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tmpl := scriptorium.New().
		WithConfig(cfg).
		Columns(analyzeColumns).
		Lines(analyzeLines...).
		Workers(workers)
	if analyzeSignatures {
		tmpl = tmpl.WithSignatures()
	}

	if analyzeOutDir != "" {
		if err := os.MkdirAll(analyzeOutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for _, path := range args {
		if raster.DetectFormat(path) == raster.FormatUnknown {
			logger.Debug("unrecognized extension, probing content", "page", path)
		}
	}

	failed := 0
	for _, res := range scriptorium.AnalyzeFiles(tmpl, args) {
		if res.Err != nil {
			logger.Error("analysis failed", "page", res.Path, "error", res.Err)
			failed++
			continue
		}
		logWarnings(res.Path, res.Warnings)
		logger.Debug("analyzed page", "page", res.Path, "columns", len(res.Layout.Columns), "lines", res.Layout.LineCount())

		if analyzeOutDir == "" {
			printSummary(cmd, res.Path, res.Layout)
			continue
		}
		out := filepath.Join(analyzeOutDir, hocrName(res.Path))
		if err := writeHOCR(out, res.Path, res.Layout, analyzeSignatures); err != nil {
			logger.Error("write failed", "page", res.Path, "error", err)
			failed++
			continue
		}
		logger.Info("wrote hOCR", "page", res.Path, "out", out)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(args))
	}
	return nil
}

// hocrName replaces the extension of an image path with .hocr
func hocrName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".hocr"
}

func writeHOCR(out, image string, layout *model.PageLayout, signatures bool) (err error) {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return hocr.Write(f, layout, hocr.Options{
		Title:      image,
		Image:      image,
		Signatures: signatures,
	})
}

func printSummary(cmd *cobra.Command, path string, layout *model.PageLayout) {
	cmd.Printf("%s: %dx%d, %d lines\n", path, layout.Width, layout.Height, layout.LineCount())
	for _, col := range layout.Columns {
		r := col.Zone.Rect
		cmd.Printf("  column %d [%d..%d): %d lines\n", col.Zone.Index, r.Min.X, r.Max.X, len(col.Lines))
		for i, line := range col.Lines {
			p := line.Polyline()
			cmd.Printf("    %3d  x %.0f..%.0f  y %.1f", i, p.First().X, p.Last().X, p.First().Y)
			if sig, ok := line.Signature(); ok {
				if sig.IsEmpty() {
					cmd.Printf("  (%s)", sig.Diagnostic)
				} else {
					cmd.Printf("  %s", sig.Codes())
				}
			}
			cmd.Println()
		}
	}
}
