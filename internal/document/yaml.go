package document

import (
	"bytes"
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a YAML document whose top level is a mapping. An empty
// document decodes to an empty map.
func DecodeYAML(name string, data []byte) (*Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewMap(), nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDocumentSyntax, name, err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return NewMap(), nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s:%d: top level must be a mapping", ErrDocumentSyntax, name, node.Line)
	}

	d := &yamlDecoder{name: name, expanding: make(map[*yaml.Node]bool)}
	return d.mapping(node)
}

// maxYAMLNodes caps the nodes visited while expanding aliases.
const maxYAMLNodes = 100000

type yamlDecoder struct {
	name string
	// expanding holds the anchors whose aliases are being expanded.
	expanding map[*yaml.Node]bool
	visited   int
}

func (d *yamlDecoder) errorf(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%w: %s:%d: %s", ErrDocumentSyntax, d.name, node.Line, fmt.Sprintf(format, args...))
}

func (d *yamlDecoder) value(node *yaml.Node) (any, error) {
	d.visited++
	if d.visited > maxYAMLNodes {
		return nil, d.errorf(node, "document expands to more than %d nodes", maxYAMLNodes)
	}
	switch node.Kind {
	case yaml.AliasNode:
		return d.alias(node)
	case yaml.MappingNode:
		return d.mapping(node)
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := d.value(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return yamlScalar(d.name, node)
	}
	return nil, d.errorf(node, "unexpected YAML node")
}

func (d *yamlDecoder) alias(node *yaml.Node) (any, error) {
	if node.Alias == nil {
		return nil, d.errorf(node, "dangling alias")
	}
	if d.expanding[node.Alias] {
		return nil, d.errorf(node, "alias '%s' refers to itself", node.Value)
	}
	d.expanding[node.Alias] = true
	defer delete(d.expanding, node.Alias)
	return d.value(node.Alias)
}

func (d *yamlDecoder) mapping(node *yaml.Node) (*Map, error) {
	// Explicit keys win over merged ones wherever they appear.
	explicit := make(map[string]bool)
	for i := 0; i < len(node.Content)-1; i += 2 {
		if k := node.Content[i]; k.Kind == yaml.ScalarNode && k.ShortTag() != mergeTag {
			explicit[k.Value] = true
		}
	}

	m := NewMap()
	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, d.errorf(keyNode, "mapping keys must be scalars")
		}
		if keyNode.ShortTag() == mergeTag {
			if err := d.merge(m, explicit, valueNode); err != nil {
				return nil, err
			}
			continue
		}
		v, err := d.value(valueNode)
		if err != nil {
			return nil, err
		}
		if err := m.Set(keyNode.Value, v); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", d.name, keyNode.Line, err)
		}
	}
	return m, nil
}

const mergeTag = "!!merge"

// merge applies a "<<" key: a mapping, or a sequence of mappings where
// earlier entries take precedence.
func (d *yamlDecoder) merge(m *Map, explicit map[string]bool, node *yaml.Node) error {
	sources := []*yaml.Node{node}
	target := node
	if target.Kind == yaml.AliasNode && target.Alias != nil {
		target = target.Alias
	}
	if target.Kind == yaml.SequenceNode {
		sources = target.Content
	}
	for _, src := range sources {
		v, err := d.value(src)
		if err != nil {
			return err
		}
		merged, ok := v.(*Map)
		if !ok {
			return d.errorf(src, "merge key needs a mapping, got %s", Describe(v))
		}
		for _, k := range merged.Keys() {
			if explicit[k] || m.Has(k) {
				continue
			}
			mv, _ := merged.Get(k)
			if err := m.Set(k, mv); err != nil {
				return fmt.Errorf("%s:%d: %w", d.name, src.Line, err)
			}
		}
	}
	return nil
}

func yamlScalar(name string, node *yaml.Node) (cty.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return cty.NilVal, fmt.Errorf("%w: %s:%d: %w", ErrDocumentSyntax, name, node.Line, err)
		}
		return cty.BoolVal(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return cty.NilVal, fmt.Errorf("%w: %s:%d: %w", ErrDocumentSyntax, name, node.Line, err)
		}
		if math.IsNaN(f) {
			return cty.NilVal, fmt.Errorf("%w: %s:%d: NaN is not a valid number", ErrDocumentSyntax, name, node.Line)
		}
		return cty.NumberFloatVal(f), nil
	}
	return cty.StringVal(node.Value), nil
}
