package model

// Placeholder texts for synthetic records.
const (
	// UnknownTitle is used when a track page has no usable <title>, or could
	// not be fetched at all.
	UnknownTitle = "Unknown title"

	// NoStoreLinkText marks the catch-all record emitted for a page that has
	// no download/purchase-worded anchor.
	NoStoreLinkText = "No store link found"

	// FetchFailedText marks the catch-all record emitted for a track whose
	// page could not be retrieved.
	FetchFailedText = "Could not fetch track page"
)

// LinkRecord is one outbound candidate link found on a track page.
//
// LinkURL equals TrackURL when no real link was found; LinkText then holds
// one of the placeholder texts above.
type LinkRecord struct {
	Category Category
	Title    string
	TrackURL string
	LinkURL  string
	LinkText string
}

// Entry converts the record to its simplified summary form.
func (r LinkRecord) Entry() Entry {
	return Entry{
		Title:    r.Title,
		TrackURL: r.TrackURL,
		ShopLink: r.LinkURL,
	}
}

// TrackLinks holds the classification result for a single track.
//
// Records are grouped by category in a fixed-size array, so a result can
// never carry a tag outside the closed set. Within a category, records keep
// the order in which their anchors appeared on the page.
type TrackLinks struct {
	Title    string
	TrackURL string
	Links    [NumCategories][]LinkRecord
}

// NewTrackLinks creates an empty result for trackURL.
func NewTrackLinks(trackURL, title string) TrackLinks {
	return TrackLinks{Title: title, TrackURL: trackURL}
}

// Add appends a record under the given category. The record's Category,
// TrackURL and Title fields are overwritten to match the result.
func (tl *TrackLinks) Add(c Category, linkURL, linkText string) {
	if !c.Valid() {
		c = CategoryOthers
	}
	tl.Links[c] = append(tl.Links[c], LinkRecord{
		Category: c,
		Title:    tl.Title,
		TrackURL: tl.TrackURL,
		LinkURL:  linkURL,
		LinkText: linkText,
	})
}

// WithTitle returns a copy of the result with title applied to every record.
func (tl TrackLinks) WithTitle(title string) TrackLinks {
	out := TrackLinks{Title: title, TrackURL: tl.TrackURL}
	for c, records := range tl.Links {
		if len(records) == 0 {
			continue
		}
		out.Links[c] = make([]LinkRecord, len(records))
		for i, r := range records {
			r.Title = title
			out.Links[c][i] = r
		}
	}
	return out
}

// Records returns all records in fixed category order.
func (tl TrackLinks) Records() []LinkRecord {
	var all []LinkRecord
	for _, records := range tl.Links {
		all = append(all, records...)
	}
	return all
}

// Categories returns the categories that received at least one record.
func (tl TrackLinks) Categories() []Category {
	var cats []Category
	for c, records := range tl.Links {
		if len(records) > 0 {
			cats = append(cats, Category(c))
		}
	}
	return cats
}

// HasStorefront reports whether any known storefront category has a record.
func (tl TrackLinks) HasStorefront() bool {
	for _, c := range Storefronts() {
		if len(tl.Links[c]) > 0 {
			return true
		}
	}
	return false
}

// Len returns the total number of records.
func (tl TrackLinks) Len() int {
	n := 0
	for _, records := range tl.Links {
		n += len(records)
	}
	return n
}
