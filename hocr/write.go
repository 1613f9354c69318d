package hocr

import (
	"embed"
	"fmt"
	"html/template"
	"image"
	"io"

	"github.com/tsawler/scriptorium/model"
)

//go:embed templates/page.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.tmpl"))

// System is written to the ocr-system meta tag
const System = "scriptorium"

// Options controls what Write puts into the document
type Options struct {
	// Title is the document title
	Title string

	// Image is the path of the page image, written to the ocr_page title
	Image string

	// Signatures writes the cached signature of every line. Lines without a
	// cached signature are written without elements.
	Signatures bool
}

type pageData struct {
	Title     string
	System    string
	PageTitle string
	Areas     []areaData
}

type areaData struct {
	ID    string
	Title string
	Lines []lineData
}

type lineData struct {
	ID       string
	Title    string
	Elements []elementData
}

type elementData struct {
	Title string
	Text  string
}

// Write renders layout as an hOCR document
func Write(w io.Writer, layout *model.PageLayout, opts Options) error {
	if layout == nil {
		return fmt.Errorf("nil layout: %w", ErrMalformed)
	}

	data := pageData{
		Title:     opts.Title,
		System:    System,
		PageTitle: formatBBox(image.Rect(0, 0, layout.Width, layout.Height)),
	}
	if opts.Image != "" {
		data.PageTitle = fmt.Sprintf("image %q; %s", opts.Image, data.PageTitle)
	}

	for c, col := range layout.Columns {
		area := areaData{
			ID:    fmt.Sprintf("carea_1_%d", c),
			Title: formatBBox(col.Zone.Rect),
		}
		for l, line := range col.Lines {
			ld := lineData{
				ID:    fmt.Sprintf("line_1_%d_%d", c, l),
				Title: FormatLineTitle(line.Polyline(), line.Height()),
			}
			if opts.Signatures {
				if sig, ok := line.Signature(); ok {
					for _, el := range sig.Elements {
						ld.Elements = append(ld.Elements, elementData{
							Title: FormatElementTitle(el),
							Text:  string(el.Symbol.Code()),
						})
					}
				}
			}
			area.Lines = append(area.Lines, ld)
		}
		data.Areas = append(data.Areas, area)
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return nil
}
