package token

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// part is either literal text or a reference, never both.
type part struct {
	lit string
	ref *Ref
}

// Value is an immutable string made of literal text and references.
type Value struct {
	parts []part
}

// Literal returns a Value holding only static text.
func Literal(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{parts: []part{{lit: s}}}
}

// Of returns a Value holding a single reference.
func Of(r Ref) Value {
	return Value{parts: []part{{ref: &r}}}
}

// Concat joins values in order, merging adjacent literal text.
func Concat(values ...Value) Value {
	var out []part
	for _, v := range values {
		for _, p := range v.parts {
			if p.ref == nil && len(out) > 0 && out[len(out)-1].ref == nil {
				out[len(out)-1].lit += p.lit
				continue
			}
			out = append(out, p)
		}
	}
	return Value{parts: out}
}

// Template renders the value in HCL template syntax. Literal text that
// looks like an interpolation is escaped.
func (v Value) Template() string {
	var sb strings.Builder
	for _, p := range v.parts {
		if p.ref != nil {
			sb.WriteString(p.ref.String())
			continue
		}
		lit := strings.ReplaceAll(p.lit, "${", "$${")
		sb.WriteString(strings.ReplaceAll(lit, "%{", "%%{"))
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Template()
}

// Refs returns the unique references in the value, sorted.
func (v Value) Refs() []Ref {
	var refs []Ref
	for _, p := range v.parts {
		if p.ref != nil && !slices.Contains(refs, *p.ref) {
			refs = append(refs, *p.ref)
		}
	}
	slices.SortFunc(refs, compareRefs)
	return refs
}

// Static returns the literal text when the value holds no references.
func (v Value) Static() (string, bool) {
	var sb strings.Builder
	for _, p := range v.parts {
		if p.ref != nil {
			return "", false
		}
		sb.WriteString(p.lit)
	}
	return sb.String(), true
}

// IsStatic reports whether the value holds no references.
func (v Value) IsStatic() bool {
	_, ok := v.Static()
	return ok
}

// Equal reports whether two values render identically.
func (v Value) Equal(other Value) bool {
	return v.Template() == other.Template()
}

// CtyValue returns the rendered template as a cty string.
func (v Value) CtyValue() cty.Value {
	return cty.StringVal(v.Template())
}

// Parse reads a rendered template back into a Value. Only literal text and
// plain <kind>.<name>.<attribute> interpolations are accepted.
func Parse(s string) (Value, error) {
	expr, err := parseExpr(s)
	if err != nil {
		return Value{}, err
	}
	return fromExpr(expr)
}

func parseExpr(s string) (hclsyntax.Expression, error) {
	expr, diags := hclsyntax.ParseTemplate([]byte(s), "<template>", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse template %q: %s", s, diags.Error())
	}
	return expr, nil
}

func fromExpr(expr hclsyntax.Expression) (Value, error) {
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		values := make([]Value, 0, len(e.Parts))
		for _, p := range e.Parts {
			v, err := fromExpr(p)
			if err != nil {
				return Value{}, err
			}
			values = append(values, v)
		}
		return Concat(values...), nil
	case *hclsyntax.TemplateWrapExpr:
		return fromExpr(e.Wrapped)
	case *hclsyntax.LiteralValueExpr:
		if e.Val.Type() != cty.String || e.Val.IsNull() {
			return Literal(e.Val.GoString()), nil
		}
		return Literal(e.Val.AsString()), nil
	case *hclsyntax.ScopeTraversalExpr:
		ref, err := refFromTraversal(e.Traversal)
		if err != nil {
			return Value{}, err
		}
		return Of(ref), nil
	default:
		return Value{}, fmt.Errorf("unsupported template expression %T", expr)
	}
}
