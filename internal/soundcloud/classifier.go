package soundcloud

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/handiism/soundcloud-digger/internal/model"
)

// titleSuffixes are stripped from track page titles; the first match wins.
var titleSuffixes = []string{
	" | SoundCloud",
	" | Listen online for free on SoundCloud",
}

// linkKeywords mark an anchor as a download/purchase link candidate. They
// are matched as substrings of the lower-cased anchor text ("kup" is Polish
// for "buy").
var linkKeywords = []string{
	"download",
	"free download",
	"free d/l",
	"buy",
	"purchase",
	"premiere",
	"kup",
}

// storefrontDomains maps each storefront category to the hosts it owns. The
// table is consulted in fixed category order.
var storefrontDomains = map[model.Category][]string{
	model.CategoryHypeddit:     {"hypeddit.com", "hypd.it"},
	model.CategoryBandcamp:     {"bandcamp.com"},
	model.CategoryBeatport:     {"beatport.com"},
	model.CategoryJunoDownload: {"junodownload.com", "juno.co.uk"},
}

// Classifier sorts the download/purchase links of a track page into
// storefront categories.
//
// Only anchors whose text contains a buy/download keyword are considered.
// When at least one of them points at a known storefront, every other
// keyword anchor on the page is ignored; otherwise they all land in the
// catch-all category. A page without any keyword anchor yields a single
// catch-all record pointing back at the track.
//
// Example:
//
//	c := NewClassifier()
//	links := c.Classify("https://soundcloud.com/artist/track", pageHTML)
//	for _, r := range links.Records() {
//	    fmt.Printf("%s: %s\n", r.Category, r.LinkURL)
//	}
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

type candidate struct {
	url  string
	text string
}

// Classify extracts and categorizes the outbound links of one track page.
//
// The returned TrackLinks carries the page title on every record and always
// holds at least one record.
func (c *Classifier) Classify(trackURL, content string) model.TrackLinks {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		result := model.NewTrackLinks(trackURL, model.UnknownTitle)
		result.Add(model.CategoryOthers, trackURL, model.NoStoreLinkText)
		return result
	}

	result := model.NewTrackLinks(trackURL, "")
	var unknown []candidate
	knownStoreFound := false

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		linkURL := NormalizeRelative(trackURL, href)
		text := strings.TrimSpace(s.Text())
		if !hasLinkKeyword(strings.ToLower(text)) {
			return
		}

		if category, ok := StorefrontFor(linkURL); ok {
			result.Add(category, linkURL, text)
			knownStoreFound = true
			return
		}
		unknown = append(unknown, candidate{url: linkURL, text: text})
	})

	if !knownStoreFound {
		for _, cand := range unknown {
			result.Add(model.CategoryOthers, cand.url, cand.text)
		}
		if len(unknown) == 0 {
			result.Add(model.CategoryOthers, trackURL, model.NoStoreLinkText)
		}
	}

	return result.WithTitle(ExtractTitle(doc))
}

// ExtractTitle returns the track title from the page <title>, without the
// SoundCloud suffix. Pages without a usable title yield model.UnknownTitle.
func ExtractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	for _, suffix := range titleSuffixes {
		if before, _, found := strings.Cut(title, suffix); found {
			title = strings.TrimSpace(before)
			break
		}
	}
	if title == "" {
		return model.UnknownTitle
	}
	return title
}

// StorefrontFor reports the storefront category whose domains contain the
// host of linkURL. A host matches a domain when it equals it or is a
// subdomain of it.
func StorefrontFor(linkURL string) (model.Category, bool) {
	u, err := url.Parse(linkURL)
	if err != nil {
		return model.CategoryOthers, false
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return model.CategoryOthers, false
	}

	for _, category := range model.Storefronts() {
		for _, domain := range storefrontDomains[category] {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return category, true
			}
		}
	}
	return model.CategoryOthers, false
}

func hasLinkKeyword(lowerText string) bool {
	for _, kw := range linkKeywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}
