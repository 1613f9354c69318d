package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/scriptorium/hocr"
	"github.com/tsawler/scriptorium/model"
	"github.com/tsawler/scriptorium/raster"
	"github.com/tsawler/scriptorium/signature"
)

var (
	signatureLayout string
	signatureColumn int
	signatureLine   int
	signatureWrite  bool
)

var signatureCmd = &cobra.Command{
	Use:   "signature [image]",
	Short: "Compute line signatures from an edited hOCR layout",
	Long: `Reads median lines from an hOCR file, typically after manual correction,
and computes their signatures against the page image. Use --column and --line
to select one line; --write stores the signatures back into the hOCR file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSignature,
}

func init() {
	signatureCmd.Flags().StringVar(&signatureLayout, "hocr", "", "hOCR file holding the median lines")
	signatureCmd.Flags().IntVar(&signatureColumn, "column", -1, "column of the line (all columns when negative)")
	signatureCmd.Flags().IntVar(&signatureLine, "line", -1, "line within the column (all lines when negative)")
	signatureCmd.Flags().BoolVar(&signatureWrite, "write", false, "write the signatures back into the hOCR file")
	_ = signatureCmd.MarkFlagRequired("hocr")
	rootCmd.AddCommand(signatureCmd)
}

func runSignature(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	page, err := raster.Open(args[0])
	if err != nil {
		return err
	}
	layout, err := readLayout(signatureLayout)
	if err != nil {
		return err
	}
	if layout.Width != page.Width() || layout.Height != page.Height() {
		logger.Warn("layout and image sizes differ",
			"layout", fmt.Sprintf("%dx%d", layout.Width, layout.Height),
			"image", fmt.Sprintf("%dx%d", page.Width(), page.Height()))
	}

	extractor := signature.NewExtractorWithConfig(cfg.Signature)
	found := false
	for c, col := range layout.Columns {
		if signatureColumn >= 0 && c != signatureColumn {
			continue
		}
		for i, line := range col.Lines {
			if signatureLine >= 0 && i != signatureLine {
				continue
			}
			found = true
			line.InvalidateSignature()
			sig, err := extractor.Extract(line, page)
			if err != nil {
				return fmt.Errorf("column %d line %d: %w", c, i, err)
			}
			if sig.IsEmpty() {
				logger.Warn("empty signature", "column", c, "line", i, "reason", sig.Diagnostic)
			}
			cmd.Printf("%d %d %s\n", c, i, sig.Codes())
		}
	}
	if !found {
		return fmt.Errorf("no line matches column %d line %d", signatureColumn, signatureLine)
	}

	if signatureWrite {
		if err := writeHOCR(signatureLayout, args[0], layout, true); err != nil {
			return fmt.Errorf("failed to update %s: %w", signatureLayout, err)
		}
		logger.Info("updated hOCR", "out", signatureLayout)
	}
	return nil
}

func readLayout(path string) (*model.PageLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return hocr.Read(f)
}
