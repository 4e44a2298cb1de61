package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned for a format name the exporter does not
// know.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export file format.
//
// Each format serves a different purpose:
//   - JSON: the summary schema that the open command reads back
//   - YAML: the same structure, easier to read by hand
//   - M3U, PLS, WPL: playlists of the links to open, for players and
//     browsers that accept playlist files
//   - None: export disabled
type Format int

const (
	// FormatJSON writes the summary as a JSON object keyed by category.
	FormatJSON Format = iota

	// FormatYAML writes the summary as a YAML mapping keyed by category.
	FormatYAML

	// FormatM3U writes an extended M3U playlist of the links to open.
	FormatM3U

	// FormatPLS writes an INI-style PLS playlist.
	FormatPLS

	// FormatWPL writes a Windows Media Player SMIL playlist.
	FormatWPL

	// FormatNone disables export.
	FormatNone
)

var formatNames = [...]string{
	FormatJSON: "json",
	FormatYAML: "yaml",
	FormatM3U:  "m3u",
	FormatPLS:  "pls",
	FormatWPL:  "wpl",
	FormatNone: "none",
}

// Formats returns every format name, for flag help and validation.
func Formats() []string {
	return formatNames[:]
}

// ParseFormat resolves a format name, case-insensitively. "yml" is accepted
// as an alias of "yaml".
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "yml" {
		name = "yaml"
	}
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	return FormatNone, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Extension returns the file extension of the format, without the dot.
func (f Format) Extension() string {
	if f == FormatNone {
		return ""
	}
	return f.String()
}

// DefaultPath returns the file name used when no output path is given.
func DefaultPath(f Format) string {
	return "soundcloud_links." + f.Extension()
}
