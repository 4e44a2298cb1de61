package summary

import (
	"github.com/handiism/soundcloud-digger/internal/model"
)

// Aggregator folds per-track classification results into a Summary.
//
// Records are buffered as they arrive and only resolved when Summary is
// called, so the exclusivity rules see every track at once:
//   - a track that has a record in any storefront category is dropped from
//     the catch-all category
//   - a track listed under several storefronts is kept only under the first
//     one in category order
//   - identical entries (same track and shop link) within a category are
//     collapsed, keeping the first one
//
// The zero value is ready to use. An Aggregator is not safe for concurrent
// use.
type Aggregator struct {
	records [model.NumCategories][]model.LinkRecord
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends every record of one track in category order.
func (a *Aggregator) Add(links model.TrackLinks) {
	for c, records := range links.Links {
		a.records[c] = append(a.records[c], records...)
	}
}

// AddRecord appends a record filed under a string tag, as found in summary
// files written by earlier runs. The legacy "other" tag and any unknown tag
// are filed under the catch-all category.
func (a *Aggregator) AddRecord(tag string, rec model.LinkRecord) {
	c, _ := model.ParseCategory(tag)
	rec.Category = c
	a.records[c] = append(a.records[c], rec)
}

// AddSummary re-ingests the entries of an existing summary.
func (a *Aggregator) AddSummary(s *model.Summary) {
	for _, c := range model.Categories() {
		for _, e := range s.Entries(c) {
			a.records[c] = append(a.records[c], model.LinkRecord{
				Category: c,
				Title:    e.Title,
				TrackURL: e.TrackURL,
				LinkURL:  e.ShopLink,
			})
		}
	}
}

// Len returns the number of buffered records.
func (a *Aggregator) Len() int {
	n := 0
	for _, records := range a.records {
		n += len(records)
	}
	return n
}

// Summary resolves the buffered records into a category-partitioned
// summary. Every category is present in the result, possibly empty.
func (a *Aggregator) Summary() *model.Summary {
	var out [model.NumCategories][]model.Entry

	// owner maps a track URL to the first storefront category holding it.
	owner := make(map[string]model.Category)
	for _, c := range model.Storefronts() {
		for _, rec := range a.records[c] {
			if _, ok := owner[rec.TrackURL]; !ok {
				owner[rec.TrackURL] = c
			}
		}
	}

	for _, c := range model.Categories() {
		out[c] = []model.Entry{}
		seen := make(map[model.Entry]struct{})

		for _, rec := range a.records[c] {
			if ownerCat, ok := owner[rec.TrackURL]; ok && ownerCat != c {
				continue
			}

			entry := rec.Entry()
			key := model.Entry{TrackURL: entry.TrackURL, ShopLink: entry.ShopLink}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			out[c] = append(out[c], entry)
		}
	}

	return model.NewSummary(out)
}

// Aggregate builds a summary from the results of a single dig run.
func Aggregate(results []model.TrackLinks) *model.Summary {
	a := NewAggregator()
	for _, links := range results {
		a.Add(links)
	}
	return a.Summary()
}

// Merge combines summaries from separate runs into one. The same
// exclusivity rules apply across runs as within a single run, so a track
// confirmed on a storefront in one run is removed from the catch-all list
// of another.
func Merge(summaries ...*model.Summary) *model.Summary {
	a := NewAggregator()
	for _, s := range summaries {
		if s == nil {
			continue
		}
		a.AddSummary(s)
	}
	return a.Summary()
}
