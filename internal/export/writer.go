package export

import (
	"context"
	"fmt"

	ioutils "github.com/handiism/soundcloud-digger/internal/io"
	"github.com/handiism/soundcloud-digger/internal/model"
)

// Encode renders the summary in the given format.
//
// Returns an error wrapping ErrUnsupportedFormat for FormatNone or an
// unknown format.
func Encode(s *model.Summary, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return encodeJSON(s)
	case FormatYAML:
		return encodeYAML(s)
	case FormatM3U:
		return encodeM3U(s), nil
	case FormatPLS:
		return encodePLS(s), nil
	case FormatWPL:
		return encodeWPL(s), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// Write encodes the summary and writes it to path, creating parent
// directories as needed. An empty path means DefaultPath(f).
//
// It returns the path written, or "" when f is FormatNone.
//
// Example:
//
//	path, err := export.Write(ctx, s, export.FormatJSON, "")
//	// path == "soundcloud_links.json"
func Write(ctx context.Context, s *model.Summary, f Format, path string) (string, error) {
	if f == FormatNone {
		return "", nil
	}

	data, err := Encode(s, f)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = DefaultPath(f)
	}
	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		return "", fmt.Errorf("could not write %s export: %w", f, err)
	}
	return path, nil
}
