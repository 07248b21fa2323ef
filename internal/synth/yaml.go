package synth

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// EncodeYAML renders the descriptor as a YAML document with the same shape
// as the JSON encoding.
func EncodeYAML(d *Descriptor) ([]byte, error) {
	resources := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range d.Resources {
		attrs, err := yamlValue(r.Attributes)
		if err != nil {
			return nil, fmt.Errorf("failed to encode attributes of %s: %w", r.Address, err)
		}
		deps := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, dep := range r.DependsOn {
			deps.Content = append(deps.Content, yamlString(dep.String()))
		}
		resources.Content = append(resources.Content, yamlMapping(
			"address", yamlString(r.Address.String()),
			"kind", yamlString(string(r.Address.Kind)),
			"logical_id", yamlString(r.LogicalID),
			"depends_on", deps,
			"attributes", attrs,
		))
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{yamlMapping(
		"format_version", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(d.FormatVersion)},
		"digest", yamlString(d.Digest),
		"resources", resources,
	)}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// yamlMapping builds a mapping node from alternating keys and values.
func yamlMapping(kv ...any) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		m.Content = append(m.Content, yamlString(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return m
}

func yamlValue(v cty.Value) (*yaml.Node, error) {
	if v.IsNull() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("unknown value of type %s", v.Type().FriendlyName())
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return yamlString(v.AsString()), nil
	case ty == cty.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.True())}, nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: bf.Text('f', 0)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: bf.Text('g', -1)}, nil
	case ty.IsObjectType() || ty.IsMapType():
		m := &yaml.Node{Kind: yaml.MappingNode}
		for it := v.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			child, err := yamlValue(elem)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, yamlString(k.AsString()), child)
		}
		return m, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			child, err := yamlValue(elem)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unsupported attribute type %s", ty.FriendlyName())
	}
}
