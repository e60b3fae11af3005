package rasterize

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/printraster/rasterpress/internal/pdfinfo"
	"github.com/printraster/rasterpress/internal/raster/rasterr"
)

// settleDelay is how long the adapter waits after navigation for Chromium's
// built-in PDF viewer to finish laying out a page before it screenshots.
// There is no DOM-ready event for the PDF plugin's internal renderer, so this
// is a fixed grace period rather than an explicit wait condition.
const settleDelay = 200 * time.Millisecond

// navigateTimeout bounds a single page's navigate+capture round trip so a
// hung viewer (corrupt embedded font, pathological content stream) fails the
// page, and with it the render(), instead of hanging indefinitely.
const navigateTimeout = 30 * time.Second

// ChromeRasterizer opens PDFs by driving a locally installed headless
// Chromium instance over the DevTools protocol (see DESIGN.md for the
// rationale for using chromedp here rather than a cgo/pdfium binding).
type ChromeRasterizer struct {
	// ChromeBin overrides the binary search in browser.go, e.g. from config.
	ChromeBin string
}

// Open satisfies Rasterizer. It writes pdf to a temp file (Chromium navigates
// by URL, not by bytes) and inspects it with pdfinfo for page count and
// per-page orientation.
func (r ChromeRasterizer) Open(ctx context.Context, pdf []byte, widthPx, heightPx int) (Document, error) {
	f, err := os.CreateTemp("", "rasterpress-*.pdf")
	if err != nil {
		return nil, rasterr.IO(fmt.Errorf("staging PDF: %w", err))
	}
	if _, err := f.Write(pdf); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, rasterr.IO(fmt.Errorf("staging PDF: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, rasterr.IO(fmt.Errorf("staging PDF: %w", err))
	}

	info, err := pdfinfo.Inspect(f.Name())
	if err != nil {
		os.Remove(f.Name())
		return nil, rasterr.Render(fmt.Errorf("opening document: %w", err))
	}

	browserCtx, err := global.acquire(r.ChromeBin)
	if err != nil {
		os.Remove(f.Name())
		return nil, rasterr.Render(err)
	}

	return &chromeDocument{
		browserCtx: browserCtx,
		path:       f.Name(),
		info:       info,
		widthPx:    widthPx,
		heightPx:   heightPx,
	}, nil
}

type chromeDocument struct {
	browserCtx context.Context
	path       string
	info       pdfinfo.Info
	widthPx    int
	heightPx   int
}

func (d *chromeDocument) PageCount() int { return d.info.PageCount }

// RenderPage satisfies Document. It opens a fresh tab on the shared browser
// for the page, to keep one slow or crashing page from poisoning tabs used
// by other pages or other concurrent render() calls.
func (d *chromeDocument) RenderPage(ctx context.Context, index int, dst []byte) error {
	if index < 0 || index >= d.info.PageCount {
		return rasterr.RenderPage(index, fmt.Errorf("page index out of range"))
	}

	tabCtx, cancelTab := chromedp.NewContext(d.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, navigateTimeout)
	defer cancelTimeout()

	landscape := index < len(d.info.Landscape) && d.info.Landscape[index]
	viewportW, viewportH := d.widthPx, d.heightPx
	if landscape {
		// Render into a swapped-dimension viewport so the wide page fills
		// it; the result is rotated back to portrait below.
		viewportW, viewportH = d.heightPx, d.widthPx
	}

	url := fmt.Sprintf("file://%s#page=%d&zoom=100", d.path, index+1)

	var shot []byte
	err := chromedp.Run(tabCtx,
		emulation.SetDeviceMetricsOverride(int64(viewportW), int64(viewportH), 1, false),
		chromedp.Navigate(url),
		chromedp.Sleep(settleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, err := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{
					X: 0, Y: 0,
					Width:  float64(viewportW),
					Height: float64(viewportH),
					Scale:  1,
				}).Do(ctx)
			if err != nil {
				return err
			}
			shot = buf
			return nil
		}),
	)
	if err != nil {
		return rasterr.RenderPage(index, err)
	}

	fitted, err := fitPNG(shot, d.widthPx, d.heightPx, landscape)
	if err != nil {
		return rasterr.RenderPage(index, fmt.Errorf("decoding screenshot: %w", err))
	}

	packBGR(fitted, dst)
	return nil
}

func (d *chromeDocument) Close() error {
	return os.Remove(d.path)
}
