package model

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Entry is the simplified per-track record persisted in a summary.
//
// ShopLink holds the storefront link; it equals TrackURL for catch-all
// entries that have no real link.
type Entry struct {
	Title    string `json:"title" yaml:"title"`
	TrackURL string `json:"track_url" yaml:"track_url"`
	ShopLink string `json:"shop_link" yaml:"shop_link"`
}

// LinkToOpen returns the link a user should visit for this entry: the shop
// link when present and different from the track URL, otherwise the track URL.
// The boolean reports whether the shop link was chosen.
func (e Entry) LinkToOpen() (string, bool) {
	if e.ShopLink != "" && e.ShopLink != e.TrackURL {
		return e.ShopLink, true
	}
	return e.TrackURL, false
}

// Summary is the category-partitioned result of a dig run.
//
// Every category of the closed set is always present, possibly empty. A
// Summary is built once (see the summary package) and not modified
// afterwards; accessors return copies.
type Summary struct {
	entries [NumCategories][]Entry
}

// NewSummary builds a Summary from per-category entries. The input slices
// are copied.
func NewSummary(entries [NumCategories][]Entry) *Summary {
	s := &Summary{}
	for c, list := range entries {
		s.entries[c] = slices.Clone(list)
	}
	return s
}

// Entries returns a copy of the entries of category c.
func (s *Summary) Entries(c Category) []Entry {
	if s == nil || !c.Valid() {
		return nil
	}
	return slices.Clone(s.entries[c])
}

// Count returns the number of entries in category c.
func (s *Summary) Count(c Category) int {
	if s == nil || !c.Valid() {
		return 0
	}
	return len(s.entries[c])
}

// Total returns the number of entries across all categories.
func (s *Summary) Total() int {
	n := 0
	for _, c := range Categories() {
		n += s.Count(c)
	}
	return n
}

// Equal reports whether two summaries hold the same entries in the same order.
func (s *Summary) Equal(other *Summary) bool {
	for _, c := range Categories() {
		if !slices.Equal(s.Entries(c), other.Entries(c)) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the summary as an object whose keys follow the fixed
// category order. Empty categories are encoded as empty arrays.
func (s *Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range Categories() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		entries := s.Entries(c)
		if entries == nil {
			entries = []Entry{}
		}
		value, err := marshalNoEscape(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape encodes v without HTML escaping so that URLs containing
// '&' stay readable in exported files.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
