package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/scriptorium/model"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// ErrMalformed is returned for documents and titles that cannot be read
var ErrMalformed = errors.New("malformed hOCR")

// Read parses an hOCR document written by Write, or any hOCR document using
// the same classes, into a page layout. Lines carrying ocrx_cinfo elements get
// their signature cached.
func Read(r io.Reader) (*model.PageLayout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read hOCR: %w", err)
	}

	if enc := declaredCharset(data); enc != "" && enc != "utf-8" && enc != "utf8" {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", enc, err)
		}
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	page := findClass(doc, "ocr_page")
	if page == nil {
		return nil, fmt.Errorf("no ocr_page element found: %w", ErrMalformed)
	}
	bbox, err := parseBBox(parseTitle(attr(page, "title")))
	if err != nil {
		return nil, fmt.Errorf("ocr_page: %w", err)
	}

	layout := model.NewPageLayout(bbox.Dx(), bbox.Dy())
	for _, area := range findAllClass(page, "ocr_carea") {
		zone, err := parseBBox(parseTitle(attr(area, "title")))
		if err != nil {
			return nil, fmt.Errorf("ocr_carea %q: %w", attr(area, "id"), err)
		}
		col := model.Column{Zone: model.ColumnZone{Index: len(layout.Columns), Rect: zone}}

		for _, ln := range findAllClass(area, "ocr_line") {
			p, height, err := ParseLineTitle(attr(ln, "title"))
			if err != nil {
				return nil, fmt.Errorf("ocr_line %q: %w", attr(ln, "id"), err)
			}
			line := model.NewMedianLine(p, height)

			cinfos := findAllClass(ln, "ocrx_cinfo")
			if len(cinfos) > 0 {
				var sig model.Signature
				for _, ci := range cinfos {
					el, err := ParseElementTitle(attr(ci, "title"))
					if err != nil {
						return nil, fmt.Errorf("ocr_line %q: %w", attr(ln, "id"), err)
					}
					sig.Elements = append(sig.Elements, el)
				}
				line.SetSignature(sig)
			}
			col.Lines = append(col.Lines, line)
		}
		layout.AddColumn(col)
	}

	return layout, nil
}

// declaredCharset returns the lower-cased charset named in the document, if
// any
func declaredCharset(data []byte) string {
	content := string(data)
	i := strings.Index(strings.ToLower(content), "charset=")
	if i < 0 {
		return ""
	}
	rest := content[i+len("charset="):]
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' ' || r == '/'
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findClass returns the first node below n carrying class
func findClass(n *html.Node, class string) *html.Node {
	if hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// findAllClass returns the outermost nodes below n carrying class, in
// document order
func findAllClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasClass(c, class) {
			out = append(out, c)
			continue
		}
		out = append(out, findAllClass(c, class)...)
	}
	return out
}
