// Package rasterpress converts PDF documents into driverless-print raster
// streams: PWG-Raster (PWG 5102.4) and Apple URF (UNIRAST).
//
// # Quick Start
//
//	import "github.com/printraster/rasterpress/pkg/rasterpress"
//
//	pdfBytes, _ := os.ReadFile("invoice.pdf")
//	out, err := rasterpress.Render(context.Background(), pdfBytes, rasterpress.Options{
//	    DPI:    600,
//	    Format: rasterpress.PWG,
//	})
//
// # Formats
//
// PWG-Raster is used by IPP Everywhere printers; URF is Apple's AirPrint
// format. Both wrap an 8-bpp grayscale bitmap per page in a format-specific
// binary header and the same two-level PackBits-style run-length encoding.
//
// # Rasterizer dependency
//
// Render drives a locally installed headless Chromium/Chrome binary over the
// DevTools protocol to rasterize PDF pages; see [Options.ChromeBin] to pin a
// specific executable. The binary is located once per process and reused
// across calls.
package rasterpress
