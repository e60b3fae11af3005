package rasterize

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
)

// sharedBrowser is the process-global headless Chromium instance. Spec §5
// describes the native rasterizer back-end as typically process-global,
// acquired lazily, and shared across concurrent render calls with either a
// process-wide lock or an independent binding per caller. This adapter shares
// one browser process, since launching a second Chromium process per request
// would defeat the point of a long-lived headless browser; its mutex guards
// only launch and shutdown, and page rendering runs in per-page tabs that are
// not serialized against each other.
type sharedBrowser struct {
	mu        sync.Mutex
	allocCtx  context.Context
	allocStop context.CancelFunc
	browserStop context.CancelFunc
	chromeBin string
}

var global sharedBrowser

// acquire returns a context rooted in the shared browser, launching it on
// first use. Subsequent calls reuse the same browser process; each caller
// should derive its own tab with chromedp.NewContext(ctx) so pages within
// one render() call run single-threaded without blocking unrelated callers
// once the browser itself is up.
func (b *sharedBrowser) acquire(chromeBinOverride string) (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.allocCtx != nil {
		return b.allocCtx, nil
	}

	bin, err := findBrowserBinary(chromeBinOverride)
	if err != nil {
		return nil, fmt.Errorf("rasterize: locating browser: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(bin),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("force-color-profile", "srgb"),
	)

	allocCtx, allocStop := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserStop := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserStop()
		allocStop()
		return nil, fmt.Errorf("rasterize: starting browser: %w", err)
	}

	b.allocCtx = browserCtx
	b.allocStop = allocStop
	b.browserStop = browserStop
	b.chromeBin = bin

	return b.allocCtx, nil
}

// Shutdown tears down the shared browser, if one was launched. It is
// intended for tests and graceful server shutdown, not for use between
// render() calls.
func Shutdown() {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.browserStop != nil {
		global.browserStop()
	}
	if global.allocStop != nil {
		global.allocStop()
	}
	global.allocCtx = nil
	global.browserStop = nil
	global.allocStop = nil
}
