package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/soundcloud-digger/internal/model"
	"github.com/handiism/soundcloud-digger/internal/summary"
)

func createTestSummary() *model.Summary {
	return model.NewSummary([model.NumCategories][]model.Entry{
		model.CategoryBandcamp: {
			{Title: "Zażółć & Co", TrackURL: "https://soundcloud.com/a/z", ShopLink: "https://a.bandcamp.com/track/z?x=1&y=2"},
		},
		model.CategoryBeatport: {
			{Title: "Beat", TrackURL: "https://soundcloud.com/a/beat", ShopLink: "https://www.beatport.com/track/beat/1"},
		},
		model.CategoryOthers: {
			{Title: "Fallback", TrackURL: "https://soundcloud.com/a/fb", ShopLink: "https://soundcloud.com/a/fb"},
		},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" m3u ", FormatM3U, false},
		{"pls", FormatPLS, false},
		{"wpl", FormatWPL, false},
		{"none", FormatNone, false},
		{"xml", FormatNone, true},
		{"", FormatNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "soundcloud_links.json", DefaultPath(FormatJSON))
	assert.Equal(t, "soundcloud_links.yaml", DefaultPath(FormatYAML))
	assert.Equal(t, "soundcloud_links.m3u", DefaultPath(FormatM3U))
}

func TestEncode_JSON(t *testing.T) {
	data, err := Encode(createTestSummary(), FormatJSON)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, `"title": "Zażółć & Co"`)
	assert.Contains(t, content, `?x=1&y=2`)
	assert.True(t, strings.HasPrefix(content, "{\n  \"hypeddit\": []"))

	order := []string{`"hypeddit"`, `"bandcamp"`, `"beatport"`, `"junodownload"`, `"others"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(content, key)
		require.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
}

func TestEncode_JSONRoundTrip(t *testing.T) {
	original := createTestSummary()

	path, err := Write(context.Background(), original, FormatJSON, filepath.Join(t.TempDir(), "out", "links.json"))
	require.NoError(t, err)

	loaded, err := summary.LoadFile(path)
	require.NoError(t, err)
	assert.True(t, original.Equal(loaded))
}

func TestEncode_YAML(t *testing.T) {
	data, err := Encode(createTestSummary(), FormatYAML)
	require.NoError(t, err)

	want := `hypeddit: []
bandcamp:
  - title: Zażółć & Co
    track_url: https://soundcloud.com/a/z
    shop_link: https://a.bandcamp.com/track/z?x=1&y=2
beatport:
  - title: Beat
    track_url: https://soundcloud.com/a/beat
    shop_link: https://www.beatport.com/track/beat/1
junodownload: []
others:
  - title: Fallback
    track_url: https://soundcloud.com/a/fb
    shop_link: https://soundcloud.com/a/fb
`
	assert.Equal(t, want, string(data))
}

func TestEncode_M3U(t *testing.T) {
	data, err := Encode(createTestSummary(), FormatM3U)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"#EXTM3U",
		"#EXTINF:-1,[bandcamp] Zażółć & Co",
		"https://a.bandcamp.com/track/z?x=1&y=2",
		"#EXTINF:-1,[beatport] Beat",
		"https://www.beatport.com/track/beat/1",
		"#EXTINF:-1,[others] Fallback",
		"https://soundcloud.com/a/fb",
	}, lines)
}

func TestEncode_PLS(t *testing.T) {
	data, err := Encode(createTestSummary(), FormatPLS)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "[playlist]\n"))
	assert.Contains(t, content, "File1=https://a.bandcamp.com/track/z?x=1&y=2\n")
	assert.Contains(t, content, "Title2=[beatport] Beat\n")
	assert.Contains(t, content, "NumberOfEntries=3\n")
	assert.True(t, strings.HasSuffix(content, "Version=2\n"))
}

func TestEncode_WPLEscapes(t *testing.T) {
	data, err := Encode(createTestSummary(), FormatWPL)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "<?wpl")
	assert.Contains(t, content, `<media src="https://a.bandcamp.com/track/z?x=1&amp;y=2" trackTitle="[bandcamp] Zażółć &amp; Co"/>`)
	assert.Contains(t, content, `<meta name="ItemCount" content="3"/>`)
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode(createTestSummary(), FormatNone)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Encode(createTestSummary(), Format(42))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWrite_DefaultPathAndNone(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path, err := Write(context.Background(), createTestSummary(), FormatYAML, "")
	require.NoError(t, err)
	assert.Equal(t, "soundcloud_links.yaml", path)
	_, err = os.Stat(filepath.Join(dir, path))
	assert.NoError(t, err)

	path, err = Write(context.Background(), createTestSummary(), FormatNone, "")
	require.NoError(t, err)
	assert.Empty(t, path)
}
