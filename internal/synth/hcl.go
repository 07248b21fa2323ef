package synth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// EncodeHCL renders the descriptor as HCL, one resource block per resource.
// String attributes are written as templates so references stay live
// interpolations.
func EncodeHCL(d *Descriptor) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	root.SetAttributeValue("format_version", cty.NumberIntVal(int64(d.FormatVersion)))
	root.SetAttributeValue("digest", cty.StringVal(d.Digest))

	for _, r := range d.Resources {
		root.AppendNewline()
		block := root.AppendNewBlock("resource", []string{string(r.Address.Kind), r.Address.Name})
		body := block.Body()
		body.SetAttributeValue("logical_id", cty.StringVal(r.LogicalID))
		body.SetAttributeRaw("depends_on", dependsOnTokens(r.DependsOn))

		if !r.Attributes.Type().IsObjectType() {
			return nil, fmt.Errorf("attributes of %s are not an object", r.Address)
		}
		for _, name := range sortedAttributeNames(r.Attributes.Type()) {
			tokens, err := valueTokens(r.Attributes.GetAttr(name))
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s.%s: %w", r.Address, name, err)
			}
			body.SetAttributeRaw(name, tokens)
		}
	}
	return hclwrite.Format(f.Bytes()), nil
}

func dependsOnTokens(deps []nodeid.Address) hclwrite.Tokens {
	elems := make([]hclwrite.Tokens, len(deps))
	for i, dep := range deps {
		elems[i] = hclwrite.TokensForTraversal(hcl.Traversal{
			hcl.TraverseRoot{Name: string(dep.Kind)},
			hcl.TraverseAttr{Name: dep.Name},
		})
	}
	return hclwrite.TokensForTuple(elems)
}

func valueTokens(v cty.Value) (hclwrite.Tokens, error) {
	if v.IsNull() {
		return hclwrite.TokensForValue(v), nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("unknown value of type %s", v.Type().FriendlyName())
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return templateTokens(v.AsString()), nil
	case ty.IsPrimitiveType():
		return hclwrite.TokensForValue(v), nil
	case ty.IsObjectType() || ty.IsMapType():
		var attrs []hclwrite.ObjectAttrTokens
		for it := v.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			tokens, err := valueTokens(elem)
			if err != nil {
				return nil, err
			}
			name := hclwrite.TokensForIdentifier(k.AsString())
			if !hclsyntax.ValidIdentifier(k.AsString()) {
				name = hclwrite.TokensForValue(k)
			}
			attrs = append(attrs, hclwrite.ObjectAttrTokens{Name: name, Value: tokens})
		}
		return hclwrite.TokensForObject(attrs), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var elems []hclwrite.Tokens
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			tokens, err := valueTokens(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, tokens)
		}
		return hclwrite.TokensForTuple(elems), nil
	default:
		return nil, fmt.Errorf("unsupported attribute type %s", ty.FriendlyName())
	}
}

// templateTokens writes s as a quoted template. s is already in template
// syntax, so only the quoting characters are escaped.
func templateTokens(s string) hclwrite.Tokens {
	return hclwrite.Tokens{
		{Type: hclsyntax.TokenOQuote, Bytes: []byte(`"`)},
		{Type: hclsyntax.TokenQuotedLit, Bytes: []byte(quoteEscaper.Replace(s))},
		{Type: hclsyntax.TokenCQuote, Bytes: []byte(`"`)},
	}
}

func sortedAttributeNames(ty cty.Type) []string {
	names := make([]string, 0, len(ty.AttributeTypes()))
	for name := range ty.AttributeTypes() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
