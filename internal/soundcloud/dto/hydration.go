// Package dto holds the wire shapes of SoundCloud's embedded hydration data.
package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// HydratablePlaylist is the tag of a playlist hydration record.
const HydratablePlaylist = "playlist"

// EntryKind distinguishes the hydration records the digger understands.
type EntryKind int

const (
	// KindUnknown is any record that is not a well-formed playlist record.
	KindUnknown EntryKind = iota
	// KindPlaylist is a playlist record with its track list.
	KindPlaylist
)

// Entry is one decoded element of the hydration array.
//
// Only playlist records carry data; every other record decodes to
// KindUnknown and is ignored by callers.
type Entry struct {
	Kind     EntryKind
	Playlist *Playlist
}

// Playlist is the part of a playlist hydration record the digger reads.
type Playlist struct {
	// TrackCount is the declared number of tracks, nil when absent or not a
	// number.
	TrackCount *int

	// Tracks holds one descriptor per element of the "tracks" array, nil when
	// the field is missing or not an array.
	Tracks []Track

	// HasTrackList reports whether "tracks" was present as an array.
	HasTrackList bool
}

// Track is a track descriptor inside a playlist record.
type Track struct {
	PermalinkURL string
}

type jsonEntry struct {
	Hydratable string          `json:"hydratable"`
	Data       json.RawMessage `json:"data"`
}

type jsonPlaylist struct {
	TrackCount json.RawMessage `json:"track_count"`
	Tracks     json.RawMessage `json:"tracks"`
}

type jsonTrack struct {
	PermalinkURL json.RawMessage `json:"permalink_url"`
	Permalink    json.RawMessage `json:"permalink"`
}

// DecodeHydration decodes a hydration array into entries.
//
// The outer value must be a JSON array; anything else is an error. Inside the
// array decoding is lenient: elements that are not objects, records with a
// different tag, and fields of the wrong type degrade to KindUnknown or empty
// values instead of failing the whole block.
func DecodeHydration(data []byte) ([]Entry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		entries = append(entries, decodeEntry(item))
	}
	return entries, nil
}

func decodeEntry(item json.RawMessage) Entry {
	var je jsonEntry
	if err := json.Unmarshal(item, &je); err != nil {
		return Entry{Kind: KindUnknown}
	}
	if je.Hydratable != HydratablePlaylist {
		return Entry{Kind: KindUnknown}
	}

	playlist := &Playlist{}
	var jp jsonPlaylist
	if len(je.Data) > 0 {
		// a non-object "data" leaves the playlist empty
		_ = json.Unmarshal(je.Data, &jp)
	}

	playlist.TrackCount = decodeCount(jp.TrackCount)

	var tracks []json.RawMessage
	if !isNull(jp.Tracks) && json.Unmarshal(jp.Tracks, &tracks) == nil {
		playlist.HasTrackList = true
		playlist.Tracks = make([]Track, 0, len(tracks))
		for _, t := range tracks {
			playlist.Tracks = append(playlist.Tracks, decodeTrack(t))
		}
	}

	return Entry{Kind: KindPlaylist, Playlist: playlist}
}

func decodeTrack(item json.RawMessage) Track {
	var jt jsonTrack
	if err := json.Unmarshal(item, &jt); err != nil {
		return Track{}
	}
	if link := decodeString(jt.PermalinkURL); link != "" {
		return Track{PermalinkURL: link}
	}
	return Track{PermalinkURL: decodeString(jt.Permalink)}
}

// decodeCount accepts a JSON number or a numeric string.
func decodeCount(raw json.RawMessage) *int {
	if isNull(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		n := int(f)
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &n
		}
	}
	return nil
}

func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}
