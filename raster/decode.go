package raster

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// Decode reads an encoded page image and returns its Page. Data that is not
// a PNG, JPEG, GIF, TIFF, BMP or WebP image yields ErrUnsupportedFormat.
func Decode(r io.Reader) (*Page, error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(magicLen)
	if DetectFormatFromMagic(magic) == FormatUnknown {
		return nil, fmt.Errorf("%w: not a page image", ErrUnsupportedFormat)
	}

	img, format, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}

	page, err := NewPage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s page: %w", format, err)
	}
	return page, nil
}

// Open reads the page image stored at path.
func Open(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	page, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page, nil
}
