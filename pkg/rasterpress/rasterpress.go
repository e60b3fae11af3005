package rasterpress

import (
	"context"

	"github.com/printraster/rasterpress/internal/pipeline"
	"github.com/printraster/rasterpress/internal/rasterize"
)

// Format selects the output wire format.
type Format = pipeline.Format

const (
	// PWG is PWG-Raster (PWG 5102.4), used by IPP Everywhere.
	PWG = pipeline.PWG
	// URF is Apple's URF/UNIRAST format, used by AirPrint.
	URF = pipeline.URF
)

// Options controls a single Render call.
type Options struct {
	// DPI is the feed and cross-feed resolution; must be 300, 400, or 600.
	DPI int
	// Format selects PWG or URF.
	Format Format
	// ChromeBin overrides the Chromium/Chrome executable lookup.
	ChromeBin string
}

// Render converts pdf into a complete raster byte stream per opts. See
// package pipeline for the step-by-step contract this wraps.
func Render(ctx context.Context, pdf []byte, opts Options) ([]byte, error) {
	r := rasterize.ChromeRasterizer{ChromeBin: opts.ChromeBin}
	return pipeline.Render(ctx, r, pdf, opts.DPI, opts.DPI, opts.Format)
}
