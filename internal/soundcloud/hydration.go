package soundcloud

import (
	"strings"

	"github.com/handiism/soundcloud-digger/internal/soundcloud/dto"
)

// HydrationMarker is the global variable SoundCloud assigns its hydration
// state to inside an inline script.
const HydrationMarker = "__sc_hydration"

// MaxHydrationScan bounds how many characters the bracket scanner inspects
// after the opening '[' of a hydration array.
const MaxHydrationScan = 50000

// hydrationResult is what a single script body contributes to a playlist.
type hydrationResult struct {
	links    []string
	declared *int
	blocks   int
	failures int
}

// findArrayBlock returns the bracket-balanced substring starting at the first
// '[' at or after from, scanning at most MaxHydrationScan characters. ok is
// false when no '[' follows or the block does not close within the window.
//
// Bracket counting is purely textual: brackets inside JSON strings are
// counted too, which at worst yields a block that then fails to decode.
func findArrayBlock(script string, from int) (block string, ok bool) {
	rel := strings.IndexByte(script[from:], '[')
	if rel < 0 {
		return "", false
	}
	start := from + rel
	end := min(start+MaxHydrationScan, len(script))

	depth := 0
	for i := start; i < end; i++ {
		switch script[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return script[start : i+1], true
			}
		}
	}
	return "", false
}

// scanHydration extracts track permalinks and the declared track count from
// every hydration marker occurrence in a script body.
//
// A block that is unterminated within the scan window or fails to decode is
// skipped; scanning continues with the next marker occurrence.
func scanHydration(script string) hydrationResult {
	var res hydrationResult

	pos := 0
	for {
		idx := strings.Index(script[pos:], HydrationMarker)
		if idx < 0 {
			return res
		}
		markerAt := pos + idx
		pos = markerAt + len(HydrationMarker)

		block, ok := findArrayBlock(script, markerAt)
		if !ok {
			res.failures++
			continue
		}

		entries, err := dto.DecodeHydration([]byte(block))
		if err != nil {
			res.failures++
			continue
		}
		res.blocks++

		links, declared := collectPlaylistEntries(entries)
		res.links = append(res.links, links...)
		if res.declared == nil {
			res.declared = declared
		}
	}
}

// collectPlaylistEntries walks decoded hydration entries and returns the
// cleaned permalinks of every playlist record together with the declared
// track count.
//
// Permalinks that do not resolve to a candidate track URL are dropped so the
// result keeps the canonical URL shape.
//
// The first track_count wins. When a playlist record has no track_count,
// the length of its track list is used, but only if no count has been set
// by an earlier record.
func collectPlaylistEntries(entries []dto.Entry) ([]string, *int) {
	var (
		links    []string
		declared *int
	)

	for _, entry := range entries {
		if entry.Kind != dto.KindPlaylist || entry.Playlist == nil {
			continue
		}
		pl := entry.Playlist

		if declared == nil && pl.TrackCount != nil && *pl.TrackCount != 0 {
			n := *pl.TrackCount
			declared = &n
		}
		if declared == nil && pl.HasTrackList {
			n := len(pl.Tracks)
			declared = &n
		}

		for _, track := range pl.Tracks {
			if track.PermalinkURL == "" {
				continue
			}
			link := Clean(NormalizeRelative(SiteRoot, track.PermalinkURL))
			if !IsCandidateTrackURL(link) {
				continue
			}
			links = append(links, link)
		}
	}

	return links, declared
}
