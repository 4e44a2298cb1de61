package http

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// RenderWait is how long the browser waits after the body is ready so that
// client-side scripts can inject the link section of a track page.
const RenderWait = 2 * time.Second

// BrowserFetcher renders pages in headless Chrome and returns the resulting
// DOM. It is slower than Client but sees links that SoundCloud only inserts
// with JavaScript.
//
// A single browser process is started lazily on the first Fetch and reused
// until Close is called. Requires Chrome or Chromium on the system.
type BrowserFetcher struct {
	userAgent string

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewBrowserFetcher creates a BrowserFetcher. An empty userAgent keeps
// DefaultUserAgent.
func NewBrowserFetcher(userAgent string) *BrowserFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &BrowserFetcher{userAgent: userAgent}
}

// Fetch navigates to rawURL and returns the rendered outer HTML. Navigation
// errors and timeouts are reported as *Error. The status code of a rendered
// page is always 200; HTTP-level failures surface as navigation errors.
func (b *BrowserFetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) (*Page, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	b.start(ctx)

	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout+RenderWait)
	defer cancelTimeout()

	// stop the tab when the caller gives up
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(RenderWait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "browser rendering failed", Attempts: 1, Cause: err}
	}

	return &Page{URL: rawURL, StatusCode: 200, Body: html}, nil
}

// Close shuts the browser down. The fetcher may be reused afterwards; a new
// browser is started on the next Fetch.
func (b *BrowserFetcher) Close() {
	if b.browserCancel != nil {
		b.browserCancel()
		b.browserCancel = nil
	}
	if b.allocCancel != nil {
		b.allocCancel()
		b.allocCancel = nil
	}
	b.browserCtx = nil
}

func (b *BrowserFetcher) start(ctx context.Context) {
	if b.browserCtx != nil {
		return
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(b.userAgent),
		)...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	b.allocCancel = allocCancel
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel
}
