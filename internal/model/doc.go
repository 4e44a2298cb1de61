// Package model defines the core data structures used throughout
// soundcloud-digger.
//
// # Category
//
// Category is the closed set of storefront tags plus the catch-all bucket,
// in the fixed order used by every summary:
//
//	hypeddit, bandcamp, beatport, junodownload, others
//
// ParseCategory folds the legacy "other" tag and any unknown tag into
// CategoryOthers.
//
// # Link Records
//
// LinkRecord is one candidate download/purchase link found on a track page.
// TrackLinks groups the records of a single track by category:
//
//	tl := model.NewTrackLinks(trackURL, "Artist - Title")
//	tl.Add(model.CategoryBandcamp, "https://artist.bandcamp.com/track/x", "Free Download")
//
// # Summary
//
// Summary is the category-partitioned, de-duplicated result of a run. It is
// built by the summary package and encodes to JSON with keys in the fixed
// category order:
//
//	{"hypeddit": [...], "bandcamp": [...], "beatport": [], "junodownload": [], "others": [...]}
package model
