// Package rasterize drives an external PDF rasterizer and adapts its output
// to the packed 24-bpp BGR bitmaps the render pipeline converts to 8-bpp
// grayscale. It treats the
// rasterizer as a pluggable capability behind the Rasterizer/Document
// interfaces; the concrete implementation in this package drives a locally
// installed headless Chromium instance over the Chrome DevTools Protocol via
// chromedp (see DESIGN.md for the rationale).
package rasterize

import "context"

// Document is an opened PDF ready to render pages from, at a fixed target
// pixel size agreed at Open time.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// RenderPage fills dst, which must be exactly width*height*3 bytes, with
	// a packed 24-bpp BGR bitmap of the 0-based page index, rotated to
	// portrait if the source page is landscape.
	RenderPage(ctx context.Context, index int, dst []byte) error

	// Close releases resources associated with the document (temp files,
	// browser tabs). It does not shut down the shared browser process.
	Close() error
}

// Rasterizer opens PDF bytes for rendering at a fixed target pixel size.
type Rasterizer interface {
	Open(ctx context.Context, pdf []byte, widthPx, heightPx int) (Document, error)
}
