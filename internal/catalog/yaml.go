package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML catalog. file is used for error positions and
// the default name.
func ParseYAML(file string, data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, File: file, Message: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &LoadError{Code: ErrCodeNoItems, File: file, Message: "catalog is empty"}
	}

	root := doc.Content[0]
	var name string
	var list *yaml.Node

	switch root.Kind {
	case yaml.SequenceNode:
		list = root
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, val := root.Content[i], root.Content[i+1]
			switch key.Value {
			case "name":
				if val.Kind != yaml.ScalarNode {
					return nil, yamlError(file, val, ErrCodeParse, "name must be a string")
				}
				name = val.Value
			case "items":
				if val.Kind != yaml.SequenceNode {
					return nil, yamlError(file, val, ErrCodeNoItems, "items must be a list")
				}
				list = val
			default:
				return nil, yamlError(file, key, ErrCodeParse, fmt.Sprintf("unknown field %q", key.Value))
			}
		}
	default:
		return nil, yamlError(file, root, ErrCodeParse, "catalog must be a list or a mapping with an items list")
	}

	if list == nil {
		return nil, &LoadError{Code: ErrCodeNoItems, File: file, Message: "missing items list"}
	}

	entries := make([]entry, 0, len(list.Content))
	for _, n := range list.Content {
		if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
			return nil, yamlError(file, n, ErrCodeInvalidItem, "item must be a string")
		}
		entries = append(entries, entry{id: n.Value, line: n.Line, column: n.Column})
	}
	return build(file, name, entries)
}

func yamlError(file string, n *yaml.Node, code, msg string) *LoadError {
	return &LoadError{Code: code, File: file, Line: n.Line, Column: n.Column, Message: msg}
}
