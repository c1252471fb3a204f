// Package imaging decodes PNG, JPEG and GIF data into a common raster form
// and loads image bytes from inline, network and filesystem sources through a
// request-deduplicating cache.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
)

// ErrUnsupportedFormat is returned for leading bytes that match none of the
// known image signatures.
var ErrUnsupportedFormat = errors.New("imaging: unsupported image format")

// Image is the common decoded representation: a row-major byte raster with
// 3 (RGB) or 4 (RGBA) bytes per pixel.
type Image struct {
	Width  int
	Height int
	Pix    []byte
	BPP    int
}

// Format identifies an image container by its magic bytes.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
)

// DetectFormat sniffs the leading bytes.
// PNG = 89 50 4E 47, JPEG = FF D8 FF, GIF = "GIF87a"/"GIF89a".
func DetectFormat(data []byte) Format {
	switch {
	case len(data) >= 4 && data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
		return FormatPNG
	case len(data) >= 3 && data[0] == 0xff && data[1] == 0xd8 && data[2] == 0xff:
		return FormatJPEG
	case len(data) >= 6 && string(data[:4]) == "GIF8" &&
		(data[4] == '7' || data[4] == '9') && data[5] == 'a':
		return FormatGIF
	}
	return FormatUnknown
}

// Decode identifies the format from the leading bytes and decodes to the
// common raster form. Unknown leading bytes yield ErrUnsupportedFormat.
func Decode(data []byte) (*Image, error) {
	switch DetectFormat(data) {
	case FormatPNG:
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("imaging: decode png: %w", err)
		}
		return normalize(img), nil
	case FormatJPEG:
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("imaging: decode jpeg: %w", err)
		}
		return normalize(img), nil
	case FormatGIF:
		// first frame only
		img, err := gif.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("imaging: decode gif: %w", err)
		}
		return normalize(img), nil
	}
	return nil, ErrUnsupportedFormat
}

// normalize flattens every source encoding: 16-bit channels truncate to the
// high byte, palette indices expand through the color table, grayscale
// replicates the luminance channel, true RGB/RGBA passes through.
func normalize(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := src.(type) {
	case *image.Gray:
		out := newImage(w, h, 3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := src.GrayAt(b.Min.X+x, b.Min.Y+y).Y
				out.set3(x, y, v, v, v)
			}
		}
		return out
	case *image.Gray16:
		out := newImage(w, h, 3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := uint8(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
				out.set3(x, y, v, v, v)
			}
		}
		return out
	case *image.YCbCr:
		out := newImage(w, h, 3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := nrgbaAt(src, b.Min.X+x, b.Min.Y+y)
				out.set3(x, y, r, g, bl)
			}
		}
		return out
	case *image.NRGBA:
		out := newImage(w, h, 4)
		for y := 0; y < h; y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*w*4:(y+1)*w*4], src.Pix[i:i+w*4])
		}
		return out
	default:
		// paletted, NRGBA64, RGBA64, gray+alpha wrappers and anything else
		out := newImage(w, h, 4)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, a := nrgbaAt(src, b.Min.X+x, b.Min.Y+y)
				out.set4(x, y, r, g, bl, a)
			}
		}
		return out
	}
}

func newImage(w, h, bpp int) *Image {
	return &Image{Width: w, Height: h, BPP: bpp, Pix: make([]byte, w*h*bpp)}
}

func (m *Image) set3(x, y int, r, g, b byte) {
	i := (y*m.Width + x) * 3
	m.Pix[i] = r
	m.Pix[i+1] = g
	m.Pix[i+2] = b
}

func (m *Image) set4(x, y int, r, g, b, a byte) {
	i := (y*m.Width + x) * 4
	m.Pix[i] = r
	m.Pix[i+1] = g
	m.Pix[i+2] = b
	m.Pix[i+3] = a
}

// At returns the pixel at (x, y) as non-premultiplied RGBA bytes.
func (m *Image) At(x, y int) (r, g, b, a byte) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0, 0, 0, 0
	}
	i := (y*m.Width + x) * m.BPP
	if m.BPP == 3 {
		return m.Pix[i], m.Pix[i+1], m.Pix[i+2], 0xff
	}
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]
}

func nrgbaAt(src image.Image, x, y int) (byte, byte, byte, byte) {
	r, g, b, a := src.At(x, y).RGBA()
	if a == 0 {
		return 0, 0, 0, 0
	}
	if a == 0xffff {
		return byte(r >> 8), byte(g >> 8), byte(b >> 8), 0xff
	}
	// un-premultiply
	return byte(r * 0xff / a), byte(g * 0xff / a), byte(b * 0xff / a), byte(a >> 8)
}
