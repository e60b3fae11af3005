// Package pipeline implements render(), the orchestration that turns PDF
// bytes into a complete PWG-Raster or URF byte stream: build the canvases,
// open the document with the rasterizer, then for each page write the
// per-format header, rasterize, convert to grayscale, and RLE-compress.
package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/printraster/rasterpress/internal/raster/canvas"
	"github.com/printraster/rasterpress/internal/raster/pwg"
	"github.com/printraster/rasterpress/internal/raster/rasterr"
	"github.com/printraster/rasterpress/internal/raster/rle"
	"github.com/printraster/rasterpress/internal/raster/urf"
	"github.com/printraster/rasterpress/internal/rasterize"
)

// Format selects the output wire format.
type Format int

const (
	PWG Format = iota
	URF
)

func (f Format) String() string {
	switch f {
	case PWG:
		return "PWG"
	case URF:
		return "URF"
	default:
		return "unknown"
	}
}

// estimatedCompressionRatio is the typical text-page compression factor used
// to size the output buffer up front, avoiding most of the reallocation
// growth a naive append-only buffer would incur.
const estimatedCompressionRatio = 50

// Render converts pdf into a complete raster byte stream at dpiW x dpiH (each
// one of 300, 400, 600) in the requested format, using r to rasterize pages.
// It is single-threaded and runs one render to completion or returns the
// first error encountered; callers that need to bound render time should
// derive ctx with a deadline, and callers running on a cooperative/
// event-driven runtime should offload the call to a blocking-safe worker,
// since rasterization is CPU- and I/O-bound throughout.
func Render(ctx context.Context, r rasterize.Rasterizer, pdf []byte, dpiW, dpiH int, format Format) ([]byte, error) {
	color, err := canvas.New(dpiW, dpiH, canvas.Color)
	if err != nil {
		return nil, rasterr.Render(fmt.Errorf("building color canvas: %w", err))
	}
	gray, err := canvas.New(dpiW, dpiH, canvas.Gray)
	if err != nil {
		return nil, rasterr.Render(fmt.Errorf("building gray canvas: %w", err))
	}

	doc, err := r.Open(ctx, pdf, color.WidthPx, color.HeightPx)
	if err != nil {
		return nil, rasterr.Render(fmt.Errorf("opening PDF: %w", err))
	}
	defer doc.Close()

	pageCount := doc.PageCount()

	estimate := pageCount*gray.ByteLen/estimatedCompressionRatio + 4096
	out := bytes.NewBuffer(make([]byte, 0, estimate))

	if err := writeFileHeader(out, format, uint32(pageCount)); err != nil {
		return nil, rasterr.IO(err)
	}

	colorBuf := make([]byte, color.ByteLen)
	grayBuf := make([]byte, gray.ByteLen)

	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, rasterr.Render(err)
		}

		if err := writePageHeader(out, format, gray, uint32(pageCount)); err != nil {
			return nil, rasterr.IO(err)
		}

		if err := doc.RenderPage(ctx, i, colorBuf); err != nil {
			return nil, err
		}

		extractGray(colorBuf, grayBuf)

		if err := rle.Compress(grayBuf, gray.WidthPx, gray.BPP, out); err != nil {
			return nil, rasterr.IO(err)
		}
	}

	return out.Bytes(), nil
}

func writeFileHeader(out *bytes.Buffer, format Format, pageCount uint32) error {
	switch format {
	case PWG:
		return pwg.WriteFileHeader(out)
	case URF:
		return urf.WriteFileHeader(pageCount, out)
	default:
		return fmt.Errorf("pipeline: unknown format %v", format)
	}
}

func writePageHeader(out *bytes.Buffer, format Format, gray canvas.Canvas, pageCount uint32) error {
	switch format {
	case PWG:
		return pwg.WritePageHeader(gray, pwg.Options{TotalPageCount: pageCount}, out)
	case URF:
		return urf.WritePageHeader(gray, out)
	default:
		return fmt.Errorf("pipeline: unknown format %v", format)
	}
}

// extractGray converts a packed 24-bpp BGR buffer to 8-bpp grayscale into a
// caller-owned destination using the integer luminance
// (299*R + 587*G + 114*B) / 1000, rounded. The rasterizer's screenshot is not
// guaranteed to be gray (B=G=R), so a single channel cannot stand in for the
// pixel; for pixels that are already gray the result equals that value. It
// avoids allocating a new slice per page.
func extractGray(bgr, gray []byte) {
	for i := range gray {
		b, g, r := uint32(bgr[i*3]), uint32(bgr[i*3+1]), uint32(bgr[i*3+2])
		gray[i] = byte((299*r + 587*g + 114*b + 500) / 1000)
	}
}
