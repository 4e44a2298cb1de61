package soundcloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/soundcloud-digger/internal/model"
)

const testTrackURL = "https://soundcloud.com/ownerA/trackA"

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name string
		page string
		want []model.LinkRecord
	}{
		{
			name: "known store wins over unknown",
			page: `<html><head><title>Song X | Listen online for free on SoundCloud</title></head><body>
				<a href="https://hypeddit.com/track/abc">Free Download</a>
				<a href="https://example.com/dl">Download</a>
			</body></html>`,
			want: []model.LinkRecord{
				{Category: model.CategoryHypeddit, Title: "Song X", TrackURL: testTrackURL, LinkURL: "https://hypeddit.com/track/abc", LinkText: "Free Download"},
			},
		},
		{
			name: "unknown links collected when no store matches",
			page: `<html><head><title>Song Y | SoundCloud</title></head><body>
				<a href="https://example.com/dl">Download</a>
				<a href="https://gate.example.org/x">BUY</a>
				<a href="https://example.net/about">About</a>
			</body></html>`,
			want: []model.LinkRecord{
				{Category: model.CategoryOthers, Title: "Song Y", TrackURL: testTrackURL, LinkURL: "https://example.com/dl", LinkText: "Download"},
				{Category: model.CategoryOthers, Title: "Song Y", TrackURL: testTrackURL, LinkURL: "https://gate.example.org/x", LinkText: "BUY"},
			},
		},
		{
			name: "no keyword anchors falls back to the track",
			page: `<html><head><title>Song Z</title></head><body>
				<a href="https://artist.bandcamp.com/track/z">Listen</a>
			</body></html>`,
			want: []model.LinkRecord{
				{Category: model.CategoryOthers, Title: "Song Z", TrackURL: testTrackURL, LinkURL: testTrackURL, LinkText: model.NoStoreLinkText},
			},
		},
		{
			name: "bandcamp free download",
			page: `<html><head><title>Tune | SoundCloud</title></head><body>
				<a href="https://artist.bandcamp.com/track/tune">Free Download</a>
			</body></html>`,
			want: []model.LinkRecord{
				{Category: model.CategoryBandcamp, Title: "Tune", TrackURL: testTrackURL, LinkURL: "https://artist.bandcamp.com/track/tune", LinkText: "Free Download"},
			},
		},
		{
			name: "several stores keep category order",
			page: `<html><head><title>Multi | SoundCloud</title></head><body>
				<a href="//www.junodownload.com/products/x">Buy on Juno</a>
				<a href="https://www.beatport.com/track/x/1">Buy</a>
				<a href="https://hypd.it/abc">Download</a>
			</body></html>`,
			want: []model.LinkRecord{
				{Category: model.CategoryHypeddit, Title: "Multi", TrackURL: testTrackURL, LinkURL: "https://hypd.it/abc", LinkText: "Download"},
				{Category: model.CategoryBeatport, Title: "Multi", TrackURL: testTrackURL, LinkURL: "https://www.beatport.com/track/x/1", LinkText: "Buy"},
				{Category: model.CategoryJunoDownload, Title: "Multi", TrackURL: testTrackURL, LinkURL: "https://www.junodownload.com/products/x", LinkText: "Buy on Juno"},
			},
		},
		{
			name: "missing title",
			page: `<html><body><a href="https://example.com/p">Purchase</a></body></html>`,
			want: []model.LinkRecord{
				{Category: model.CategoryOthers, Title: model.UnknownTitle, TrackURL: testTrackURL, LinkURL: "https://example.com/p", LinkText: "Purchase"},
			},
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(testTrackURL, tt.page)

			assert.Equal(t, testTrackURL, got.TrackURL)
			assert.Equal(t, tt.want, got.Records())
		})
	}
}

func TestClassifier_Classify_AlwaysYieldsRecord(t *testing.T) {
	pages := []string{
		"",
		"<html></html>",
		"not html at all",
		`<a href="">Download</a>`,
	}

	c := NewClassifier()
	for _, page := range pages {
		got := c.Classify(testTrackURL, page)
		require.NotZero(t, got.Len(), "page %q", page)
		for _, r := range got.Records() {
			assert.NotEmpty(t, r.Title)
			assert.Equal(t, testTrackURL, r.TrackURL)
		}
	}
}

func TestStorefrontFor(t *testing.T) {
	tests := []struct {
		url    string
		want   model.Category
		wantOK bool
	}{
		{"https://hypeddit.com/track/x", model.CategoryHypeddit, true},
		{"https://www.hypeddit.com/track/x", model.CategoryHypeddit, true},
		{"https://hypd.it/x", model.CategoryHypeddit, true},
		{"https://label.bandcamp.com/album/x", model.CategoryBandcamp, true},
		{"https://www.beatport.com/release/x/1", model.CategoryBeatport, true},
		{"https://www.junodownload.com/products/x", model.CategoryJunoDownload, true},
		{"https://www.juno.co.uk/products/x", model.CategoryJunoDownload, true},
		{"https://notbandcamp.com/x", model.CategoryOthers, false},
		{"https://example.com/?u=bandcamp.com", model.CategoryOthers, false},
		{"mailto:someone@example.com", model.CategoryOthers, false},
		{"::", model.CategoryOthers, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := StorefrontFor(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		page string
		want string
	}{
		{`<title>Track | SoundCloud</title>`, "Track"},
		{`<title>  Track | Listen online for free on SoundCloud </title>`, "Track"},
		{`<title>Plain</title>`, "Plain"},
		{`<title></title>`, model.UnknownTitle},
		{`<p>no title</p>`, model.UnknownTitle},
	}

	c := NewClassifier()
	for _, tt := range tests {
		got := c.Classify(testTrackURL, tt.page)
		records := got.Records()
		require.NotEmpty(t, records)
		assert.Equal(t, tt.want, records[0].Title, "page %q", tt.page)
	}
}
