package soundcloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "drops tracking parameter",
			input: "https://x/a/b?in=abc&q=1",
			want:  "https://x/a/b?q=1",
		},
		{
			name:  "drops only tracking parameter",
			input: "https://soundcloud.com/artist/track?in=artist/sets/mix",
			want:  "https://soundcloud.com/artist/track",
		},
		{
			name:  "drops fragment",
			input: "https://soundcloud.com/artist/track#t=1:00",
			want:  "https://soundcloud.com/artist/track",
		},
		{
			name:  "strips trailing question mark",
			input: "https://soundcloud.com/artist/track?",
			want:  "https://soundcloud.com/artist/track",
		},
		{
			name:  "keeps other parameters in order",
			input: "https://soundcloud.com/artist/track?si=1&in=x&utm_source=y",
			want:  "https://soundcloud.com/artist/track?si=1&utm_source=y",
		},
		{
			name:  "keeps parameter that only starts with in",
			input: "https://soundcloud.com/artist/track?index=2",
			want:  "https://soundcloud.com/artist/track?index=2",
		},
		{
			name:  "lower-cases scheme and host",
			input: "HTTPS://SoundCloud.com/A/B/?in=x",
			want:  "https://soundcloud.com/A/B/",
		},
		{
			name:  "unparsable url still drops tracking parameter",
			input: "https://x/a%zz/b?in=1",
			want:  "https://x/a%zz/b",
		},
		{
			name:  "unparsable url keeps other parameters",
			input: "https://x/a%zz/b?q=1&in=2#frag",
			want:  "https://x/a%zz/b?q=1",
		},
		{
			name:  "unchanged",
			input: "https://soundcloud.com/artist/track",
			want:  "https://soundcloud.com/artist/track",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"https://x/a/b?in=abc&q=1",
		"https://soundcloud.com/a/b?in=a/sets/x#frag",
		"https://soundcloud.com/a/b??",
		"https://soundcloud.com/a/b?q=1&",
		"https://soundcloud.com/a/b%20c?x=%2F",
		"not a url#at all?",
		"",
		"https://soundcloud.com/a/b?&&in=1",
		"HTTPS://SoundCloud.COM/a/b?in=1",
		"https://x/a%zz/b?in=1&q=2#f",
		"https://x/a%zz/b??in=1",
	}

	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean not idempotent for %q", in)
	}
}

func TestNormalizeRelative(t *testing.T) {
	base := "https://soundcloud.com/artist/track"

	tests := []struct {
		href string
		want string
	}{
		{"//hypeddit.com/track/x", "https://hypeddit.com/track/x"},
		{"/artist/other", "https://soundcloud.com/artist/other"},
		{"http://artist.bandcamp.com/track/x", "http://artist.bandcamp.com/track/x"},
		{"https://www.beatport.com/track/x/1", "https://www.beatport.com/track/x/1"},
		{"other", "https://soundcloud.com/artist/other"},
		{"../up", "https://soundcloud.com/up"},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRelative(base, tt.href))
		})
	}
}

func TestIsReservedPath(t *testing.T) {
	tests := []struct {
		segments []string
		want     bool
	}{
		{nil, true},
		{[]string{"about"}, true},
		{[]string{"alice", "popular-tracks"}, true},
		{[]string{"alice", "my-track"}, false},
		{[]string{"company", "jobs"}, true},
		{[]string{"Charts", "top"}, true},
		{[]string{"pages-legacy", "x"}, true},
		{[]string{"alice", "Likes"}, true},
		{[]string{"alice", "sets", "mix"}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsReservedPath(tt.segments), "segments %v", tt.segments)
	}
}

func TestIsCandidateTrackURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://soundcloud.com/ownerA/trackA", true},
		{"HTTPS://SoundCloud.com/ownerA/trackA", true},
		{"https://soundcloud.com/ownerA/trackA?in=ownerA/sets/x", true},
		{"https://soundcloud.com/ownerA/trackA/", true},
		{"https://soundcloud.com/ownerA/trackA#comments", true},
		{"https://soundcloud.com/ownerA", false},
		{"https://soundcloud.com/ownerA/sets", false},
		{"https://soundcloud.com/ownerA/likes", false},
		{"https://soundcloud.com/company/jobs", false},
		{"https://soundcloud.com/pages/cookies", false},
		{"http://soundcloud.com/ownerA/trackA", false},
		{"https://m.soundcloud.com/ownerA/trackA", false},
		{"https://soundcloud.com.evil.com/ownerA/trackA", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCandidateTrackURL(tt.url))
		})
	}
}
