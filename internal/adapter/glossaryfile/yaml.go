package glossaryfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

const yamlStrTag = "!!str"

// decodeYAML reads a single YAML mapping of string to string through
// yaml.Node so that document order survives decoding.
func decodeYAML(data []byte) ([]domain.Entry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty YAML document")
		}
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("expected a single YAML document")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) != 1 {
			return nil, errors.New("empty YAML document")
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("top level must be a mapping")
	}

	entries := make([]domain.Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := resolveAlias(root.Content[i]), resolveAlias(root.Content[i+1])
		if k.Kind != yaml.ScalarNode || k.ShortTag() != yamlStrTag {
			return nil, fmt.Errorf("line %d: term must be a string", k.Line)
		}
		if v.Kind != yaml.ScalarNode || v.ShortTag() != yamlStrTag {
			return nil, fmt.Errorf("line %d: term %q: definition must be a string", v.Line, k.Value)
		}
		entries = append(entries, domain.Entry{Term: k.Value, Definition: v.Value})
	}
	return entries, nil
}

// resolveAlias follows *anchor references to the node they name.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// encodeYAML writes entries as a YAML mapping in order.
func encodeYAML(entries []domain.Entry) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range entries {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStrTag, Value: e.Term},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStrTag, Value: e.Definition},
		)
	}
	if len(entries) == 0 {
		root.Style = yaml.FlowStyle
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}
