package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 128, A: 255})
		}
	}
	return img
}

func TestDetectFormat(t *testing.T) {
	pngData := encodePNG(t, testNRGBA(2, 2))
	assert.Equal(t, FormatPNG, DetectFormat(pngData))

	var jb bytes.Buffer
	require.NoError(t, jpeg.Encode(&jb, testNRGBA(2, 2), nil))
	assert.Equal(t, FormatJPEG, DetectFormat(jb.Bytes()))

	var gb bytes.Buffer
	require.NoError(t, gif.Encode(&gb, testNRGBA(2, 2), nil))
	assert.Equal(t, FormatGIF, DetectFormat(gb.Bytes()))

	assert.Equal(t, FormatUnknown, DetectFormat([]byte("not an image")))
	assert.Equal(t, FormatUnknown, DetectFormat(nil))
	assert.Equal(t, FormatUnknown, DetectFormat([]byte{0x89}))
}

func TestDecodePNG(t *testing.T) {
	img, err := Decode(encodePNG(t, testNRGBA(3, 2)))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, 4, img.BPP)
	r, g, b, a := img.At(1, 1)
	assert.Equal(t, byte(40), r)
	assert.Equal(t, byte(40), g)
	assert.Equal(t, byte(128), b)
	assert.Equal(t, byte(255), a)
}

func TestDecodePNGPreservesAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img, err := Decode(encodePNG(t, src))
	require.NoError(t, err)
	require.Equal(t, 4, img.BPP)
	r, _, _, a := img.At(0, 0)
	assert.Equal(t, byte(200), r, "channels stay unpremultiplied")
	assert.Equal(t, byte(128), a)
}

func TestDecodeGrayToRGB(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 77})
	img, err := Decode(encodePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, 3, img.BPP)
	r, g, b, a := img.At(0, 0)
	assert.Equal(t, byte(77), r)
	assert.Equal(t, byte(77), g)
	assert.Equal(t, byte(77), b)
	assert.Equal(t, byte(255), a)
}

func TestDecodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testNRGBA(4, 4), &jpeg.Options{Quality: 90}))
	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.BPP, "jpeg decodes without alpha")
}

func TestDecodeGIFFirstFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, testNRGBA(2, 2), nil))
	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte("BM this is not a real bitmap"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestScale(t *testing.T) {
	src, err := Decode(encodePNG(t, testNRGBA(4, 4)))
	require.NoError(t, err)
	dst := Scale(src, 8, 2)
	assert.Equal(t, 8, dst.Width)
	assert.Equal(t, 2, dst.Height)
	assert.Equal(t, 4, dst.BPP)
	assert.Len(t, dst.Pix, 8*2*4)
}
