// Package canvas derives the pixel geometry of an A4 raster page from a DPI
// and color mode, the way both wire formats' page headers describe it.
package canvas

import "fmt"

// Mode selects whether a Canvas describes the 24-bpp bitmap the rasterizer
// fills in, or the 8-bpp bitmap the compressor consumes.
type Mode int

const (
	Gray  Mode = 8
	Color Mode = 24
)

// a4Table maps a supported DPI to the A4 pixel box at that resolution.
// 300 -> 2480x3508, 400 -> 3307x4667, 600 -> 4960x7016.
var a4Table = map[int][2]int{
	300: {2480, 3508},
	400: {3307, 4667},
	600: {4960, 7016},
}

// Canvas is an immutable description of one render target: pixel dimensions,
// bits per pixel, and the derived byte geometry of its scanlines.
type Canvas struct {
	WidthPx      int
	HeightPx     int
	DPIWidth     int
	DPIHeight    int
	BPP          int
	BytesPerLine int
	ByteLen      int
}

// New builds a Canvas for A4 at the given feed/cross-feed DPI pair and color
// mode. Both dpiW and dpiH must be one of 300, 400, 600; the width/cross-feed
// DPI drives the pixel width, the height/feed DPI drives the pixel height.
func New(dpiW, dpiH int, mode Mode) (Canvas, error) {
	w, ok := a4Table[dpiW]
	if !ok {
		return Canvas{}, fmt.Errorf("canvas: unsupported cross-feed dpi %d", dpiW)
	}
	h, ok := a4Table[dpiH]
	if !ok {
		return Canvas{}, fmt.Errorf("canvas: unsupported feed dpi %d", dpiH)
	}

	widthPx := w[0]
	heightPx := h[1]
	bpp := int(mode)
	bytesPerLine := (widthPx*bpp + 7) / 8

	return Canvas{
		WidthPx:      widthPx,
		HeightPx:     heightPx,
		DPIWidth:     dpiW,
		DPIHeight:    dpiH,
		BPP:          bpp,
		BytesPerLine: bytesPerLine,
		ByteLen:      heightPx * bytesPerLine,
	}, nil
}

// PageSizePoints returns the page's width/height in PDL points (1/72 inch),
// rounded to nearest using the PWG header's round(px*72/dpi) convention.
func (c Canvas) PageSizePoints() (widthPts, heightPts uint32) {
	widthPts = roundPoints(c.WidthPx, c.DPIWidth)
	heightPts = roundPoints(c.HeightPx, c.DPIHeight)
	return
}

// roundPoints computes round(px*72/dpi) with 64-bit intermediates, saturated
// to uint32's maximum on overflow.
func roundPoints(px, dpi int) uint32 {
	num := uint64(px)*72 + uint64(dpi)/2
	val := num / uint64(dpi)
	if val > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(val)
}
