package model

import "strings"

// Category identifies the storefront a download/purchase link points to.
//
// The set is closed: four known storefronts plus the catch-all Others bucket.
// The declaration order is the fixed category order used everywhere a summary
// is built, printed or persisted.
//
// Example:
//
//	for _, c := range model.Categories() {
//	    fmt.Println(c) // hypeddit, bandcamp, beatport, junodownload, others
//	}
type Category int

const (
	// CategoryHypeddit covers hypeddit.com and its hypd.it short links.
	CategoryHypeddit Category = iota

	// CategoryBandcamp covers bandcamp.com and artist subdomains.
	CategoryBandcamp

	// CategoryBeatport covers beatport.com.
	CategoryBeatport

	// CategoryJunoDownload covers junodownload.com and juno.co.uk.
	CategoryJunoDownload

	// CategoryOthers is the catch-all bucket for tracks without a confirmed
	// storefront link.
	CategoryOthers

	// NumCategories is the size of the closed category set.
	NumCategories = int(CategoryOthers) + 1
)

// legacyOthersTag is the catch-all tag written by older exports.
const legacyOthersTag = "other"

var categoryTags = [NumCategories]string{
	CategoryHypeddit:     "hypeddit",
	CategoryBandcamp:     "bandcamp",
	CategoryBeatport:     "beatport",
	CategoryJunoDownload: "junodownload",
	CategoryOthers:       "others",
}

// Categories returns every category in the fixed order.
func Categories() []Category {
	cats := make([]Category, NumCategories)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// Storefronts returns the known storefront categories (everything but Others)
// in the fixed order.
func Storefronts() []Category {
	return Categories()[:CategoryOthers]
}

// String returns the category tag as used in exported summaries.
func (c Category) String() string {
	if !c.Valid() {
		return categoryTags[CategoryOthers]
	}
	return categoryTags[c]
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < NumCategories
}

// IsStorefront reports whether c is a known storefront rather than the catch-all.
func (c Category) IsStorefront() bool {
	return c.Valid() && c != CategoryOthers
}

// ParseCategory maps a tag to its Category.
//
// Matching is case-insensitive. The legacy "other" tag is an alias of
// "others", and any tag outside the closed set is coerced to CategoryOthers.
// The boolean reports whether the tag was recognised (aliases count as
// recognised).
func ParseCategory(tag string) (Category, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == legacyOthersTag {
		return CategoryOthers, true
	}
	for i, name := range categoryTags {
		if name == tag {
			return Category(i), true
		}
	}
	return CategoryOthers, false
}

// LookupCategory is like ParseCategory but rejects unknown tags instead of
// coercing them. Used where a user names a category explicitly.
func LookupCategory(tag string) (Category, bool) {
	c, ok := ParseCategory(tag)
	if !ok {
		return 0, false
	}
	return c, true
}
