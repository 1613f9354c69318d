package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/ccitt"
)

// ErrUnsupportedFormat is returned for data that is not a page image and
// for sample layouts FromRaw cannot convert.
var ErrUnsupportedFormat = errors.New("raster: unsupported format")

// RawImage describes an undecoded sample buffer, such as an image XObject
// pulled out of a PDF.
type RawImage struct {
	Width            int
	Height           int
	ColorSpace       string // DeviceGray, DeviceRGB, DeviceCMYK, etc.
	BitsPerComponent int
	Data             []byte
	Filter           string // CCITTFaxDecode for fax-compressed bi-level data
	CCITTGroup4      bool   // Group 4 instead of Group 3 for CCITT data
	BlackIs1         bool   // CCITT bit interpretation
}

// FromRaw converts a raw sample buffer into a Page.
func FromRaw(raw RawImage) (*Page, error) {
	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, ErrEmptyImage
	}

	var img image.Image
	var err error

	if raw.Filter == "CCITTFaxDecode" {
		img, err = raw.decodeCCITT()
	} else {
		switch raw.ColorSpace {
		case "DeviceGray", "CalGray", "ICCBased", "":
			img, err = raw.toGrayImage()
		case "DeviceRGB", "CalRGB":
			img, err = raw.toRGBImage()
		case "DeviceCMYK":
			img, err = raw.toCMYKImage()
		default:
			return nil, fmt.Errorf("%w: color space %s", ErrUnsupportedFormat, raw.ColorSpace)
		}
	}
	if err != nil {
		return nil, err
	}

	return NewPage(img)
}

// decodeCCITT decodes CCITT Group 3/4 fax compressed data to 8-bit gray.
func (raw RawImage) decodeCCITT() (*image.Gray, error) {
	sf := ccitt.Group3
	if raw.CCITTGroup4 {
		sf = ccitt.Group4
	}

	r := ccitt.NewReader(bytes.NewReader(raw.Data), ccitt.MSB, sf, raw.Width, raw.Height,
		&ccitt.Options{Invert: raw.BlackIs1})
	packed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CCITT data: %w", err)
	}

	bits := raw
	bits.Data = packed
	bits.BitsPerComponent = 1
	return bits.toBilevelGray()
}

// toGrayImage converts grayscale sample data to an image.Gray.
func (raw RawImage) toGrayImage() (*image.Gray, error) {
	switch raw.BitsPerComponent {
	case 1:
		return raw.toBilevelGray()
	case 4:
		return raw.to4BitGray()
	case 8:
		img := image.NewGray(image.Rect(0, 0, raw.Width, raw.Height))
		expectedSize := raw.Width * raw.Height
		if len(raw.Data) < expectedSize {
			return nil, fmt.Errorf("insufficient data: got %d, expected %d", len(raw.Data), expectedSize)
		}
		copy(img.Pix, raw.Data[:expectedSize])
		return img, nil
	default:
		return nil, fmt.Errorf("%w: %d bits per component", ErrUnsupportedFormat, raw.BitsPerComponent)
	}
}

// toBilevelGray converts 1-bit data (MSB first, rows padded to bytes) to 8-bit
// gray, with 0 as black.
func (raw RawImage) toBilevelGray() (*image.Gray, error) {
	img := image.NewGray(image.Rect(0, 0, raw.Width, raw.Height))

	bytesPerRow := (raw.Width + 7) / 8
	expectedSize := bytesPerRow * raw.Height
	if len(raw.Data) < expectedSize {
		return nil, fmt.Errorf("insufficient data for 1-bit image: got %d, expected %d", len(raw.Data), expectedSize)
	}

	for y := 0; y < raw.Height; y++ {
		rowStart := y * bytesPerRow
		for x := 0; x < raw.Width; x++ {
			bit := (raw.Data[rowStart+x/8] >> (7 - x%8)) & 1
			if bit != 0 {
				img.Pix[y*raw.Width+x] = 255
			}
		}
	}

	return img, nil
}

// to4BitGray converts 4-bit gray data (high nibble first) to 8-bit gray.
func (raw RawImage) to4BitGray() (*image.Gray, error) {
	img := image.NewGray(image.Rect(0, 0, raw.Width, raw.Height))

	bytesPerRow := (raw.Width + 1) / 2
	expectedSize := bytesPerRow * raw.Height
	if len(raw.Data) < expectedSize {
		return nil, fmt.Errorf("insufficient data for 4-bit image: got %d, expected %d", len(raw.Data), expectedSize)
	}

	for y := 0; y < raw.Height; y++ {
		rowStart := y * bytesPerRow
		for x := 0; x < raw.Width; x++ {
			b := raw.Data[rowStart+x/2]
			nibble := b & 0x0f
			if x%2 == 0 {
				nibble = b >> 4
			}
			img.Pix[y*raw.Width+x] = nibble * 17
		}
	}

	return img, nil
}

// toRGBImage converts 8-bit RGB sample data to an image.NRGBA.
func (raw RawImage) toRGBImage() (*image.NRGBA, error) {
	if raw.BitsPerComponent != 8 {
		return nil, fmt.Errorf("%w: %d bits per component for RGB", ErrUnsupportedFormat, raw.BitsPerComponent)
	}

	expectedSize := raw.Width * raw.Height * 3
	if len(raw.Data) < expectedSize {
		return nil, fmt.Errorf("insufficient data for RGB image: got %d, expected %d", len(raw.Data), expectedSize)
	}

	img := image.NewNRGBA(image.Rect(0, 0, raw.Width, raw.Height))
	for i := 0; i < raw.Width*raw.Height; i++ {
		img.Pix[i*4+0] = raw.Data[i*3+0]
		img.Pix[i*4+1] = raw.Data[i*3+1]
		img.Pix[i*4+2] = raw.Data[i*3+2]
		img.Pix[i*4+3] = 255
	}

	return img, nil
}

// toCMYKImage converts 8-bit CMYK sample data to an image.NRGBA.
func (raw RawImage) toCMYKImage() (*image.NRGBA, error) {
	if raw.BitsPerComponent != 8 {
		return nil, fmt.Errorf("%w: %d bits per component for CMYK", ErrUnsupportedFormat, raw.BitsPerComponent)
	}

	expectedSize := raw.Width * raw.Height * 4
	if len(raw.Data) < expectedSize {
		return nil, fmt.Errorf("insufficient data for CMYK image: got %d, expected %d", len(raw.Data), expectedSize)
	}

	img := image.NewNRGBA(image.Rect(0, 0, raw.Width, raw.Height))
	for i := 0; i < raw.Width*raw.Height; i++ {
		d := raw.Data[i*4 : i*4+4]
		r, g, b := color.CMYKToRGB(d[0], d[1], d[2], d[3])
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = 255
	}

	return img, nil
}
