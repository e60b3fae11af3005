// Package pdfinfo opens a PDF with pdfcpu far enough to learn its page count
// and per-page orientation, so the rasterizer can reject malformed input
// before spending a browser round-trip on it and can request a portrait
// rotation for landscape source pages (§4.5's rotate_if_landscape hint).
package pdfinfo

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Info is the subset of a PDF's structure the rasterizer needs.
type Info struct {
	PageCount int
	// Landscape[i] is true when page i (0-based) is wider than it is tall
	// in its own media box, before any viewer rotation is applied.
	Landscape []bool
}

// Inspect reads the PDF at path far enough to report its page count and
// per-page orientation. It takes a path rather than raw bytes because
// pdfcpu's dimension inspection is exposed as a File-suffixed API; callers
// that start from an in-memory PDF write it to a temp file first.
//
// Its errors are plain, unclassified errors; ChromeRasterizer.Open wraps them
// as render-class errors rather than I/O errors, since failure here reflects
// the document (missing, malformed or encrypted), not the output stream.
func Inspect(path string) (Info, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("pdfinfo: reading page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return Info{}, fmt.Errorf("pdfinfo: PDF has no pages")
	}

	landscape := make([]bool, len(dims))
	for i, d := range dims {
		landscape[i] = d.Width > d.Height
	}

	return Info{
		PageCount: len(dims),
		Landscape: landscape,
	}, nil
}
