package export

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/handiism/soundcloud-digger/internal/model"
)

// encodeJSON writes the summary with two-space indentation. Keys follow the
// fixed category order and non-ASCII text is written as is.
func encodeJSON(s *model.Summary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeYAML writes the summary as a YAML mapping. The document is built as
// a node tree so the category order survives encoding.
func encodeYAML(s *model.Summary) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, c := range model.Categories() {
		entries := s.Entries(c)
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		if len(entries) == 0 {
			seq.Style = yaml.FlowStyle
		}
		for _, e := range entries {
			item := &yaml.Node{}
			if err := item.Encode(e); err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, item)
		}
		root.Content = append(root.Content, scalar(c.String()), seq)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
