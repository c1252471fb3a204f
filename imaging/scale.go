package imaging

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Scale resamples the raster to w x h with bilinear filtering. The result is
// always RGBA.
func Scale(src *Image, w, h int) *Image {
	if w <= 0 || h <= 0 {
		return newImage(0, 0, 4)
	}
	if w == src.Width && h == src.Height && src.BPP == 4 {
		out := newImage(w, h, 4)
		copy(out.Pix, src.Pix)
		return out
	}

	in := image.NewNRGBA(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			r, g, b, a := src.At(x, y)
			i := in.PixOffset(x, y)
			in.Pix[i] = r
			in.Pix[i+1] = g
			in.Pix[i+2] = b
			in.Pix[i+3] = a
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), in, in.Bounds(), xdraw.Src, nil)

	out := newImage(w, h, 4)
	copy(out.Pix, dst.Pix)
	return out
}
