package synth

import (
	"bytes"
	"encoding/json"
	"fmt"

	ctyjson "github.com/zclconf/go-cty/cty/json"
)

type jsonDescriptor struct {
	FormatVersion int             `json:"format_version"`
	Digest        string          `json:"digest"`
	Resources     json.RawMessage `json:"resources"`
}

type jsonResource struct {
	Address    string          `json:"address"`
	Kind       string          `json:"kind"`
	LogicalID  string          `json:"logical_id"`
	DependsOn  []string        `json:"depends_on"`
	Attributes json.RawMessage `json:"attributes"`
}

// EncodeJSON renders the descriptor as indented JSON. Object keys are
// sorted, so the output is canonical.
func EncodeJSON(d *Descriptor) ([]byte, error) {
	resources, err := marshalResources(d.Resources)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(jsonDescriptor{
		FormatVersion: d.FormatVersion,
		Digest:        d.Digest,
		Resources:     resources,
	})
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, doc, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// marshalResources renders the resource list as compact JSON.
func marshalResources(resources []Resource) ([]byte, error) {
	out := make([]jsonResource, len(resources))
	for i, r := range resources {
		attrs, err := ctyjson.Marshal(r.Attributes, r.Attributes.Type())
		if err != nil {
			return nil, fmt.Errorf("failed to encode attributes of %s: %w", r.Address, err)
		}
		deps := make([]string, len(r.DependsOn))
		for j, dep := range r.DependsOn {
			deps[j] = dep.String()
		}
		out[i] = jsonResource{
			Address:    r.Address.String(),
			Kind:       string(r.Address.Kind),
			LogicalID:  r.LogicalID,
			DependsOn:  deps,
			Attributes: attrs,
		}
	}
	return json.Marshal(out)
}
