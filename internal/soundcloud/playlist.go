package soundcloud

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	ioutils "github.com/handiism/soundcloud-digger/internal/io"
)

var (
	containsTracksPattern = regexp.MustCompile(`(?i)Contains tracks\s*(\d+)`)
	inlineTracksPattern   = regexp.MustCompile(`(?i)\b(\d{1,4})\s+tracks?\b`)
)

// Playlist is the result of extracting a saved playlist page.
type Playlist struct {
	// TrackURLs are the canonical track URLs, de-duplicated and sorted.
	TrackURLs []string

	// DeclaredCount is the number of tracks the page claims to contain, nil
	// when the page does not say. It is only a cross-check.
	DeclaredCount *int

	// Stats describes where the URLs came from.
	Stats ExtractStats
}

// ExtractStats counts the contributions of each extraction source.
type ExtractStats struct {
	AnchorLinks       int
	HydrationLinks    int
	HydrationBlocks   int
	HydrationFailures int
}

// Extractor recovers the track list of a saved SoundCloud playlist page.
//
// Two sources are combined:
//  1. Anchors whose href is a track URL
//  2. The window.__sc_hydration data island embedded in inline scripts
//
// Example usage:
//
//	extractor := NewExtractor(logger)
//
//	playlist, err := extractor.ExtractFile("playlist.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, u := range playlist.TrackURLs {
//	    fmt.Println(u)
//	}
type Extractor struct {
	logger *log.Logger
}

// NewExtractor creates a new Extractor. A nil logger disables logging.
func NewExtractor(logger *log.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractFile reads a saved playlist page from disk and extracts it.
//
// Returns an error wrapping ioutils.ErrNotFound if the file does not exist,
// or a decode error if the file is neither UTF-8 nor Latin-1 text.
func (e *Extractor) ExtractFile(path string) (*Playlist, error) {
	content, err := ioutils.ReadText(path)
	if err != nil {
		return nil, fmt.Errorf("could not load playlist page: %w", err)
	}
	e.debug("Parsing playlist page", "path", path, "bytes", len(content))
	return e.Extract(content), nil
}

// Extract recovers the track URLs and declared count from playlist HTML.
//
// This method performs the following steps:
//  1. Collects candidate track URLs from every <a href>
//  2. Scans inline scripts for hydration arrays and reads playlist records
//  3. Unions both sets and sorts them lexicographically
//  4. Falls back to page metadata and visible text for the declared count
//
// Malformed markup or hydration data never fails the extraction; the
// affected source simply contributes nothing.
func (e *Extractor) Extract(content string) *Playlist {
	playlist := &Playlist{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		e.warn("Could not parse playlist HTML", "err", err)
		return playlist
	}

	set := make(map[string]struct{})

	for _, link := range anchorTrackLinks(doc) {
		if _, seen := set[link]; !seen {
			playlist.Stats.AnchorLinks++
		}
		set[link] = struct{}{}
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		body := s.Text()
		if !strings.Contains(body, HydrationMarker) {
			return
		}
		res := scanHydration(body)
		playlist.Stats.HydrationBlocks += res.blocks
		playlist.Stats.HydrationFailures += res.failures
		for _, link := range res.links {
			if _, seen := set[link]; !seen {
				playlist.Stats.HydrationLinks++
			}
			set[link] = struct{}{}
		}
		if playlist.DeclaredCount == nil {
			playlist.DeclaredCount = res.declared
		}
	})

	if playlist.Stats.HydrationFailures > 0 {
		e.debug("Skipped unreadable hydration blocks", "count", playlist.Stats.HydrationFailures)
	}

	playlist.TrackURLs = make([]string, 0, len(set))
	for link := range set {
		playlist.TrackURLs = append(playlist.TrackURLs, link)
	}
	slices.Sort(playlist.TrackURLs)

	if playlist.DeclaredCount == nil {
		playlist.DeclaredCount = declaredTrackCount(doc)
	}

	e.debug("Extracted playlist",
		"tracks", len(playlist.TrackURLs),
		"from_anchors", playlist.Stats.AnchorLinks,
		"from_hydration", playlist.Stats.HydrationLinks,
	)

	return playlist
}

// anchorTrackLinks returns the cleaned candidate track URLs of every anchor,
// in document order, possibly with duplicates.
func anchorTrackLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		abs := NormalizeRelative(SiteRoot, href)
		if !IsCandidateTrackURL(abs) {
			return
		}
		links = append(links, Clean(abs))
	})
	return links
}

// declaredTrackCount reads the declared count from the numTracks microdata,
// then from "Contains tracks N" and "N tracks" phrases in the visible text.
func declaredTrackCount(doc *goquery.Document) *int {
	if meta := doc.Find(`meta[itemprop="numTracks"]`).First(); meta.Length() > 0 {
		value := meta.AttrOr("content", "")
		if value == "" {
			value = meta.AttrOr("value", "")
		}
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return &n
		}
	}

	text := visibleText(doc)
	for _, pattern := range []*regexp.Regexp{containsTracksPattern, inlineTracksPattern} {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return &n
			}
		}
	}
	return nil
}

// visibleText joins the trimmed text nodes of the document with single
// spaces, skipping script, style, noscript and template contents.
func visibleText(doc *goquery.Document) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

func (e *Extractor) debug(msg string, keyvals ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, keyvals...)
	}
}

func (e *Extractor) warn(msg string, keyvals ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, keyvals...)
	}
}
