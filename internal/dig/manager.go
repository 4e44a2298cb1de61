package dig

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/handiism/soundcloud-digger/internal/http"
	"github.com/handiism/soundcloud-digger/internal/model"
	"github.com/handiism/soundcloud-digger/internal/soundcloud"
)

// DefaultCacheSize bounds the number of classified pages kept per run.
const DefaultCacheSize = 512

// ErrNoTracks is returned by Run when there is nothing to fetch.
var ErrNoTracks = errors.New("no track URLs to process")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent reports the outcome of one step of a run.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Index is the 1-based position of the track in the run, 0 for events
	// that are not about a single track.
	Index    int
	Total    int
	TrackURL string

	// Categories lists where the track's links were filed.
	Categories []model.Category
}

// Fetcher retrieves one page. *http.Client and *http.BrowserFetcher both
// satisfy it.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (*http.Page, error)
}

// Options configures a run.
type Options struct {
	// Delay is the minimum spacing between the starts of two track requests.
	Delay time.Duration
	// Timeout bounds each fetch. Zero leaves the fetcher's default.
	Timeout time.Duration
	// MaxTracks truncates the track list; a negative value means no limit
	// and zero processes nothing.
	MaxTracks int
	// CacheSize bounds the per-run page cache; zero means DefaultCacheSize.
	CacheSize int
}

// DefaultOptions returns the options used by the CLI when nothing is set.
func DefaultOptions() Options {
	return Options{
		Delay:     500 * time.Millisecond,
		Timeout:   20 * time.Second,
		MaxTracks: -1,
		CacheSize: DefaultCacheSize,
	}
}

// Manager fetches and classifies track pages one at a time.
//
// Every track produces at least one record: a page that cannot be fetched,
// or is served with an error status, yields a catch-all record pointing back
// at the track. Results keep the order of the input URLs.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	fetcher    Fetcher
	classifier *soundcloud.Classifier
	opts       Options
	cache      *lru.Cache[string, model.TrackLinks]

	// limiter spaces track requests Options.Delay apart; nil means no delay.
	limiter *rate.Limiter

	onProgress func(ProgressEvent)
	wait       func(ctx context.Context) error
}

// NewManager creates a new Manager. onProgress may be nil.
func NewManager(fetcher Fetcher, opts Options, onProgress func(ProgressEvent)) (*Manager, error) {
	if fetcher == nil {
		return nil, errors.New("dig: fetcher is required")
	}
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, model.TrackLinks](size)
	if err != nil {
		return nil, fmt.Errorf("dig: creating page cache: %w", err)
	}

	m := &Manager{
		fetcher:    fetcher,
		classifier: soundcloud.NewClassifier(),
		opts:       opts,
		cache:      cache,
		onProgress: onProgress,
	}
	if opts.Delay > 0 {
		m.limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
		m.wait = m.limiter.Wait
	}
	return m, nil
}

// Run fetches and classifies every track URL in order.
//
// If ctx is cancelled, Run stops before the next track and returns the
// results gathered so far together with ctx.Err(). Per-track failures are
// never returned as errors.
func (m *Manager) Run(ctx context.Context, trackURLs []string) ([]model.TrackLinks, error) {
	urls := Limit(trackURLs, m.opts.MaxTracks)
	if len(urls) == 0 {
		return nil, ErrNoTracks
	}
	if len(urls) < len(trackURLs) {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Limiting run to %d of %d tracks", len(urls), len(trackURLs)),
			Level:   LevelInfo,
			Total:   len(urls),
		})
	}

	m.cache.Purge()
	results := make([]model.TrackLinks, 0, len(urls))

	for i, trackURL := range urls {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if err := m.pace(ctx); err != nil {
			return results, err
		}

		links := m.process(ctx, trackURL, i+1, len(urls))
		results = append(results, links)
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Processed %d tracks", len(results)),
		Level:   LevelSuccess,
		Total:   len(urls),
	})
	return results, nil
}

func (m *Manager) process(ctx context.Context, trackURL string, index, total int) model.TrackLinks {
	event := ProgressEvent{Index: index, Total: total, TrackURL: trackURL}

	if cached, ok := m.cache.Get(trackURL); ok {
		event.Message = fmt.Sprintf("[%d/%d] Reusing result for %s", index, total, trackURL)
		event.Level = LevelVerbose
		event.Categories = cached.Categories()
		m.progress(event)
		return cached
	}

	m.progress(ProgressEvent{
		Message:  fmt.Sprintf("[%d/%d] Fetching %s", index, total, trackURL),
		Level:    LevelVerbose,
		Index:    index,
		Total:    total,
		TrackURL: trackURL,
	})

	page, err := m.fetcher.Fetch(ctx, trackURL, m.opts.Timeout)
	if err != nil || !page.OK() {
		links := FetchFailed(trackURL)
		if err != nil {
			event.Message = fmt.Sprintf("[%d/%d] Could not fetch %s: %v", index, total, trackURL, err)
		} else {
			event.Message = fmt.Sprintf("[%d/%d] Could not fetch %s: HTTP %d", index, total, trackURL, page.StatusCode)
		}
		event.Level = LevelWarning
		event.Categories = links.Categories()
		m.progress(event)
		return links
	}

	links := m.classifier.Classify(trackURL, page.Body)
	m.cache.Add(trackURL, links)

	event.Message = fmt.Sprintf("[%d/%d] %s: %d link(s)", index, total, links.Title, links.Len())
	event.Level = LevelInfo
	event.Categories = links.Categories()
	m.progress(event)
	return links
}

// pace blocks until the limiter lets the next request start. The first
// request of a Manager goes out immediately.
func (m *Manager) pace(ctx context.Context) error {
	if m.limiter == nil {
		return nil
	}
	if err := m.wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// Wait refuses up front when the delay would outlast the deadline.
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// FetchFailed builds the catch-all result recorded for a track whose page
// could not be retrieved.
func FetchFailed(trackURL string) model.TrackLinks {
	links := model.NewTrackLinks(trackURL, model.UnknownTitle)
	links.Add(model.CategoryOthers, trackURL, model.FetchFailedText)
	return links
}

// Limit returns at most n leading URLs. A negative n returns urls unchanged.
func Limit(urls []string, n int) []string {
	if n < 0 || n >= len(urls) {
		return urls
	}
	return urls[:n]
}
