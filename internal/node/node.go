// Package node defines a single declared resource in the provisioning graph.
package node

import (
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/token"
	"github.com/zclconf/go-cty/cty"
)

// namespace seeds the name-based logical IDs of declared resources.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/specialistvlad/caregrid"))

// Node is one vertex of the provisioning graph: a resource declaration with
// its fully resolved static attributes. Attributes that depend on other
// resources hold token templates, never materialized values.
type Node struct {
	// ID is the unique, structured address of the resource.
	ID nodeid.Address
	// LogicalID is a name-based UUID derived from ID. It is stable across
	// synthesis runs so re-applying a descriptor is idempotent.
	LogicalID uuid.UUID
	// Attributes is a cty object; it is never mutated after creation.
	Attributes cty.Value
}

// New creates a node for id with the given attributes. A nil or empty map
// yields an empty object.
func New(id nodeid.Address, attrs map[string]cty.Value) *Node {
	val := cty.EmptyObjectVal
	if len(attrs) > 0 {
		copied := make(map[string]cty.Value, len(attrs))
		for k, v := range attrs {
			copied[k] = v
		}
		val = cty.ObjectVal(copied)
	}
	return &Node{
		ID:         id,
		LogicalID:  LogicalID(id),
		Attributes: val,
	}
}

// LogicalID returns the stable logical ID for an address.
func LogicalID(id nodeid.Address) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(id.String()))
}

// Kind returns the resource kind of the node.
func (n *Node) Kind() nodeid.Kind {
	return n.ID.Kind
}

// Attribute returns the named attribute, or cty.NilVal when absent.
func (n *Node) Attribute(name string) cty.Value {
	if !n.Attributes.Type().IsObjectType() || !n.Attributes.Type().HasAttribute(name) {
		return cty.NilVal
	}
	return n.Attributes.GetAttr(name)
}

// References returns every token reference held anywhere in the node's
// attributes, sorted and de-duplicated.
func (n *Node) References() ([]token.Ref, error) {
	var refs []token.Ref
	err := walkStrings(n.Attributes, func(s string) error {
		v, err := token.Parse(s)
		if err != nil {
			return fmt.Errorf("resource %s: %w", n.ID, err)
		}
		for _, r := range v.Refs() {
			if !slices.Contains(refs, r) {
				refs = append(refs, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Resource != refs[j].Resource {
			return refs[i].Resource.Less(refs[j].Resource)
		}
		return refs[i].Attribute < refs[j].Attribute
	})
	return refs, nil
}

func walkStrings(v cty.Value, fn func(string) error) error {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return fn(v.AsString())
	case ty.IsObjectType() || ty.IsMapType() || ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if err := walkStrings(elem, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
