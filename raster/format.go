package raster

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format is an encoded page image format.
type Format int

const (
	// FormatUnknown indicates an unrecognized format.
	FormatUnknown Format = iota
	// FormatPNG indicates a PNG image.
	FormatPNG
	// FormatJPEG indicates a JPEG image.
	FormatJPEG
	// FormatGIF indicates a GIF image.
	FormatGIF
	// FormatTIFF indicates a TIFF image, the usual archival scan format.
	FormatTIFF
	// FormatBMP indicates a Windows bitmap.
	FormatBMP
	// FormatWebP indicates a WebP image.
	FormatWebP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatJPEG:
		return "JPEG"
	case FormatGIF:
		return "GIF"
	case FormatTIFF:
		return "TIFF"
	case FormatBMP:
		return "BMP"
	case FormatWebP:
		return "WebP"
	default:
		return "Unknown"
	}
}

// DetectFormat determines the format from a filename extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".gif":
		return FormatGIF
	case ".tif", ".tiff":
		return FormatTIFF
	case ".bmp":
		return FormatBMP
	case ".webp":
		return FormatWebP
	default:
		return FormatUnknown
	}
}

// magicLen is the number of leading bytes DetectFormatFromMagic inspects.
const magicLen = 12

// DetectFormatFromMagic determines the format from the leading bytes of an
// encoded image. It is more reliable than DetectFormat.
func DetectFormatFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return FormatJPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return FormatGIF
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return FormatTIFF
	case bytes.HasPrefix(data, []byte("BM")):
		return FormatBMP
	case len(data) >= magicLen && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return FormatWebP
	default:
		return FormatUnknown
	}
}
