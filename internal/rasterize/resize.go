package rasterize

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// decodeAndFitPNG decodes a PNG screenshot and resamples it onto an
// image.RGBA exactly width x height, using bilinear interpolation. Chromium's
// screenshot is taken at the requested viewport size already, but device
// pixel rounding can leave it a pixel or two off the exact A4 canvas; x/image
// closes that gap instead of requiring byte-for-byte agreement with the
// browser's own layout rounding.
func decodeAndFitPNG(shot []byte, width, height int) (*image.RGBA, error) {
	return fitPNG(shot, width, height, false)
}

// fitPNG decodes a PNG screenshot, optionally rotates it 90 degrees
// clockwise (used when the adapter captured a landscape page into a
// swapped-dimension viewport), and resamples the result onto an image.RGBA
// exactly width x height.
func fitPNG(shot []byte, width, height int, rotateCW bool) (*image.RGBA, error) {
	src, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, err
	}

	var rotated image.Image = src
	if rotateCW {
		rotated = rotate90CW(src)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), rotated, rotated.Bounds(), draw.Over, nil)
	return dst, nil
}

// rotate90CW rotates src 90 degrees clockwise into a freshly allocated RGBA
// image, swapping its width and height.
func rotate90CW(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// packBGR writes img row-major into dst as packed 24-bpp BGR, the layout the
// core pipeline's channel-extraction step expects.
func packBGR(img *image.RGBA, dst []byte) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	i := 0
	for y := 0; y < h; y++ {
		rowStart := img.PixOffset(0, y)
		row := img.Pix[rowStart : rowStart+w*4]
		for x := 0; x < w; x++ {
			r := row[x*4+0]
			g := row[x*4+1]
			b := row[x*4+2]
			dst[i+0] = b
			dst[i+1] = g
			dst[i+2] = r
			i += 3
		}
	}
}
