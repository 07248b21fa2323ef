package token

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/caregrid/internal/nodeid"
)

// Ref is a reference to one attribute of a declared resource.
type Ref struct {
	Resource  nodeid.Address
	Attribute string
}

// NewRef returns a reference to attribute of resource.
func NewRef(resource nodeid.Address, attribute string) Ref {
	return Ref{Resource: resource, Attribute: attribute}
}

// Traversal returns the reference as an HCL traversal rooted at the
// resource kind, e.g. database.auth-service-db.endpoint_address.
func (r Ref) Traversal() hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: string(r.Resource.Kind)},
		hcl.TraverseAttr{Name: r.Resource.Name},
		hcl.TraverseAttr{Name: r.Attribute},
	}
}

// Expr returns the bare traversal expression.
func (r Ref) Expr() string {
	return string(hclwrite.TokensForTraversal(r.Traversal()).Bytes())
}

// String returns the reference as a template interpolation.
func (r Ref) String() string {
	return "${" + r.Expr() + "}"
}

// refFromTraversal is the inverse of Ref.Traversal.
func refFromTraversal(t hcl.Traversal) (Ref, error) {
	if len(t) != 3 {
		return Ref{}, fmt.Errorf("reference %q must have the form <kind>.<name>.<attribute>", traversalKey(t))
	}
	nameAttr, nameOk := t[1].(hcl.TraverseAttr)
	attr, attrOk := t[2].(hcl.TraverseAttr)
	if !nameOk || !attrOk {
		return Ref{}, fmt.Errorf("reference %q must only use attribute access", traversalKey(t))
	}

	addr := nodeid.New(nodeid.Kind(t.RootName()), nameAttr.Name)
	if err := addr.Validate(); err != nil {
		return Ref{}, fmt.Errorf("reference %q: %w", traversalKey(t), err)
	}
	return NewRef(addr, attr.Name), nil
}

// traversalKey generates a stable, canonical string representation for an
// hcl.Traversal.
func traversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// compareRefs orders references by address and then attribute.
func compareRefs(a, b Ref) int {
	if c := nodeid.Compare(a.Resource, b.Resource); c != 0 {
		return c
	}
	switch {
	case a.Attribute < b.Attribute:
		return -1
	case a.Attribute > b.Attribute:
		return 1
	default:
		return 0
	}
}

// ParseRef parses a bare <kind>.<name>.<attribute> expression.
func ParseRef(expr string) (Ref, error) {
	v, err := Parse("${" + expr + "}")
	if err != nil {
		return Ref{}, err
	}
	refs := v.Refs()
	if len(refs) != 1 || !v.Equal(Of(refs[0])) {
		return Ref{}, fmt.Errorf("%q is not a single reference", expr)
	}
	return refs[0], nil
}
