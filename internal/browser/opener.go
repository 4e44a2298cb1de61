package browser

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// DefaultPacing is the minimum time between two launches.
const DefaultPacing = 100 * time.Millisecond

// Launcher opens a URL in a browser. An empty browser name means the
// system default.
type Launcher interface {
	Launch(ctx context.Context, browser, url string) error
}

// Report counts what Open did.
type Report struct {
	// Opened is the number of links handed to the browser.
	Opened int
	// ShopLinks counts opened store links.
	ShopLinks int
	// TrackFallbacks counts opened track URLs of entries without a store link.
	TrackFallbacks int
	// Skipped counts entries with neither a store link nor a track URL.
	Skipped int
	// Failed counts links the browser refused to open.
	Failed int
}

// Opener opens selected summary entries in a browser, one after another.
//
// For each entry the shop link is opened when it is set and differs from the
// track URL; otherwise the track URL is opened. If the requested browser
// cannot be launched, the Opener warns once and switches to the system
// default for the remaining links.
//
// Example:
//
//	opener := NewOpener(SystemLauncher{}, "firefox", logger)
//	report := opener.Open(ctx, items)
//	fmt.Printf("opened %d (%d shop links)\n", report.Opened, report.ShopLinks)
type Opener struct {
	launcher Launcher
	browser  string
	logger   *log.Logger

	// limiter spaces launches by the pacing; nil opens back to back.
	limiter *rate.Limiter
	wait    func(ctx context.Context) error
}

// NewOpener creates a new Opener. browser is one of BrowserNames; "" and
// "default" both mean the system default.
func NewOpener(launcher Launcher, browser string, logger *log.Logger) *Opener {
	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == DefaultBrowser {
		browser = ""
	}
	o := &Opener{
		launcher: launcher,
		browser:  browser,
		logger:   logger,
	}
	o.SetPacing(DefaultPacing)
	return o
}

// SetPacing changes the minimum time between two launches. Zero or less
// disables pacing.
func (o *Opener) SetPacing(d time.Duration) {
	if d <= 0 {
		o.limiter, o.wait = nil, nil
		return
	}
	o.limiter = rate.NewLimiter(rate.Every(d), 1)
	o.wait = o.limiter.Wait
}

// Open opens every item in order. It stops early, returning the counts so
// far, when ctx is cancelled.
func (o *Opener) Open(ctx context.Context, items []Item) Report {
	var report Report
	browser := o.browser

	for _, item := range items {
		if ctx.Err() != nil {
			return report
		}

		link, shop := item.Entry.LinkToOpen()
		link = strings.TrimSpace(link)
		if link == "" {
			o.warn("Skipping entry without usable link", "category", item.Category, "title", item.Entry.Title)
			report.Skipped++
			continue
		}

		if o.limiter != nil {
			if err := o.wait(ctx); err != nil {
				return report
			}
		}

		err := o.launcher.Launch(ctx, browser, link)
		if err != nil && browser != "" {
			o.warn("Could not use browser, falling back to system default", "browser", browser, "err", err)
			browser = ""
			err = o.launcher.Launch(ctx, browser, link)
		}
		if err != nil {
			o.logError("Failed to open link", "url", link, "err", err)
			report.Failed++
			continue
		}

		report.Opened++
		if shop {
			report.ShopLinks++
		} else {
			report.TrackFallbacks++
		}
	}

	return report
}

func (o *Opener) warn(msg string, keyvals ...any) {
	if o.logger != nil {
		o.logger.Warn(msg, keyvals...)
	}
}

func (o *Opener) logError(msg string, keyvals ...any) {
	if o.logger != nil {
		o.logger.Error(msg, keyvals...)
	}
}
