package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/soundcloud-digger/internal/export"
)

// isolate runs the test in an empty directory with an empty home, so no
// settings file on the machine is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.Validate())
	assert.Equal(t, 0.5, s.Delay)
	assert.Equal(t, 20.0, s.Timeout)
	assert.Equal(t, -1, s.MaxTracks)
	assert.Equal(t, 5, s.MaxRetries)
	assert.Equal(t, "json", s.ExportFormat)
	assert.Equal(t, "default", s.Browser)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	s, err := Load("")
	require.NoError(t, err)

	want := DefaultSettings()
	assert.Equal(t, want.Delay, s.Delay)
	assert.Equal(t, want.UserAgent, s.UserAgent)
	assert.Equal(t, want.CacheSize, s.CacheSize)
	assert.Empty(t, s.File())
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	content := "delay: 1.5\nmax_tracks: 10\nrender: browser\nexport_format: yaml\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".soundcloud-digger.yaml"), []byte(content), 0644))

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1.5, s.Delay)
	assert.Equal(t, 10, s.MaxTracks)
	assert.Equal(t, RenderBrowser, s.Render)
	assert.Equal(t, export.FormatYAML, s.Format())
	assert.Equal(t, 20.0, s.Timeout, "unset keys keep their defaults")
	assert.NotEmpty(t, s.File())
}

func TestLoad_ExplicitJSONFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "digger.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"browser": "firefox", "open_pacing": 0.25}`), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "firefox", s.Browser)
	assert.Equal(t, 250*time.Millisecond, s.PacingDuration())
	assert.Equal(t, path, s.File())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DIGGER_MAX_TRACKS", "3")
	t.Setenv("DIGGER_RESPECT_ROBOTS", "true")
	t.Setenv("DIGGER_LOG_LEVEL", "debug")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3, s.MaxTracks)
	assert.True(t, s.RespectRobots)
	assert.Equal(t, log.DebugLevel, s.Level())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"delay": `), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"negative delay", func(s *Settings) { s.Delay = -1 }},
		{"zero timeout", func(s *Settings) { s.Timeout = 0 }},
		{"max tracks below -1", func(s *Settings) { s.MaxTracks = -2 }},
		{"too many retries", func(s *Settings) { s.MaxRetries = 21 }},
		{"empty user agent", func(s *Settings) { s.UserAgent = "" }},
		{"unknown render", func(s *Settings) { s.Render = "curl" }},
		{"zero cache", func(s *Settings) { s.CacheSize = 0 }},
		{"unknown format", func(s *Settings) { s.ExportFormat = "csv" }},
		{"unknown browser", func(s *Settings) { s.Browser = "lynx" }},
		{"unknown log level", func(s *Settings) { s.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestValidate_AcceptsAliases(t *testing.T) {
	s := DefaultSettings()
	s.ExportFormat = "YML"
	s.Browser = "Safari"

	assert.NoError(t, s.Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	for _, name := range []string{"settings.json", "nested/settings.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, name)

			s := DefaultSettings()
			s.MaxTracks = 7
			s.ExportFormat = "m3u"
			s.OutputPath = "out/links.m3u"
			require.NoError(t, s.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 7, loaded.MaxTracks)
			assert.Equal(t, export.FormatM3U, loaded.Format())
			assert.Equal(t, "out/links.m3u", loaded.OutputPath)
		})
	}
}

func TestSettings_DigOptions(t *testing.T) {
	s := DefaultSettings()
	s.Delay = 0.25
	s.MaxTracks = 4

	opts := s.DigOptions()

	assert.Equal(t, 250*time.Millisecond, opts.Delay)
	assert.Equal(t, 20*time.Second, opts.Timeout)
	assert.Equal(t, 4, opts.MaxTracks)
	assert.Equal(t, s.CacheSize, opts.CacheSize)
	assert.Len(t, s.ClientOptions(nil), 4)
}
