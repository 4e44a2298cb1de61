package summary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	ioutils "github.com/handiism/soundcloud-digger/internal/io"
	"github.com/handiism/soundcloud-digger/internal/model"
)

// ErrInvalidSummary is wrapped by every error that reports a summary file
// not matching the expected schema.
var ErrInvalidSummary = errors.New("invalid summary")

// SchemaError describes where a summary document breaks the schema.
type SchemaError struct {
	// Category is the offending key, empty for root-level problems.
	Category string
	// Index is the offending array position, -1 when not applicable.
	Index   int
	Message string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Category == "":
		return fmt.Sprintf("invalid summary: %s", e.Message)
	case e.Index < 0:
		return fmt.Sprintf("invalid summary: category %q: %s", e.Category, e.Message)
	default:
		return fmt.Sprintf("invalid summary: category %q item %d: %s", e.Category, e.Index, e.Message)
	}
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidSummary
}

// LoadFile reads and validates a summary file written by the JSON exporter.
//
// Returns an error wrapping ioutils.ErrNotFound if the file does not exist
// and an error wrapping ErrInvalidSummary if it does not match the schema.
func LoadFile(path string) (*model.Summary, error) {
	content, err := ioutils.ReadText(path)
	if err != nil {
		return nil, fmt.Errorf("could not load summary: %w", err)
	}
	s, err := Load(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Load decodes a summary document.
//
// The root must be an object whose values are arrays of objects with string
// fields "title", "track_url" and "shop_link"; "track_url" is required. Keys
// are read in document order. The legacy "other" key and unknown keys are
// folded into the catch-all category.
func Load(r io.Reader) (*model.Summary, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, &SchemaError{Index: -1, Message: "document is not valid JSON"}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &SchemaError{Index: -1, Message: "root must be an object"}
	}

	var entries [model.NumCategories][]model.Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &SchemaError{Index: -1, Message: "malformed object key"}
		}
		tag, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &SchemaError{Category: tag, Index: -1, Message: "malformed value"}
		}

		items, err := decodeItems(tag, raw)
		if err != nil {
			return nil, err
		}
		c, _ := model.ParseCategory(tag)
		entries[c] = append(entries[c], items...)
	}

	if _, err := dec.Token(); err != nil {
		return nil, &SchemaError{Index: -1, Message: "unterminated root object"}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &SchemaError{Index: -1, Message: "trailing data after root object"}
	}

	return model.NewSummary(entries), nil
}

func decodeItems(tag string, raw json.RawMessage) ([]model.Entry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &SchemaError{Category: tag, Index: -1, Message: "value must be an array"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &SchemaError{Category: tag, Index: -1, Message: "value must be an array"}
	}

	entries := make([]model.Entry, 0, len(items))
	for i, item := range items {
		entry, msg := decodeEntry(item)
		if msg != "" {
			return nil, &SchemaError{Category: tag, Index: i, Message: msg}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(item json.RawMessage) (model.Entry, string) {
	var fields map[string]json.RawMessage
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Unmarshal(trimmed, &fields) != nil {
		return model.Entry{}, "item must be an object"
	}

	var entry model.Entry
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"title", &entry.Title},
		{"track_url", &entry.TrackURL},
		{"shop_link", &entry.ShopLink},
	} {
		name, dst := f.name, f.dst
		raw, ok := fields[name]
		if !ok || string(bytes.TrimSpace(raw)) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return model.Entry{}, fmt.Sprintf("field %q must be a string", name)
		}
	}

	if strings.TrimSpace(entry.TrackURL) == "" {
		return model.Entry{}, `missing "track_url"`
	}
	return entry, ""
}
