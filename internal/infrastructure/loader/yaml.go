package loader

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"langjs/internal/domain"
	"langjs/internal/domain/entities"
	"langjs/internal/ports/output"
)

var _ output.MessageLoader = YAML{}

// YAML loads message group files written as YAML mappings. Mapping order
// is kept.
type YAML struct{}

func (YAML) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAML) StringsDomain() bool { return false }

func (YAML) Load(name string, data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML file %s: %v", domain.ErrInvalidInput, name, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return entities.NewTree(), nil
	}
	v, err := yamlValue(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML file %s: %v", domain.ErrInvalidInput, name, err)
	}
	return v, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		tree := entities.NewTree()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Content[i].Line, err)
			}
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			tree.Set(key, v)
		}
		return tree, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return nil, fmt.Errorf("line %d: %s has no JSON representation", n.Line, n.Value)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node", n.Line)
	}
}
