package token

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// UnresolvedReferenceError is reported when a reference has no materialized
// value. Synthesis never produces it; it is raised on the execution side.
type UnresolvedReferenceError struct {
	Ref Ref
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("reference %s has not been materialized", e.Ref.Expr())
}

// Values holds attribute values materialized by an execution engine.
type Values map[Ref]cty.Value

// EvalContext exposes the values as HCL variables rooted at resource kind.
func (vals Values) EvalContext() *hcl.EvalContext {
	byKind := make(map[string]map[string]map[string]cty.Value)
	for ref, v := range vals {
		kind := string(ref.Resource.Kind)
		if byKind[kind] == nil {
			byKind[kind] = make(map[string]map[string]cty.Value)
		}
		if byKind[kind][ref.Resource.Name] == nil {
			byKind[kind][ref.Resource.Name] = make(map[string]cty.Value)
		}
		byKind[kind][ref.Resource.Name][ref.Attribute] = v
	}

	variables := make(map[string]cty.Value, len(byKind))
	for kind, names := range byKind {
		objects := make(map[string]cty.Value, len(names))
		for name, attrs := range names {
			objects[name] = cty.ObjectVal(attrs)
		}
		variables[kind] = cty.ObjectVal(objects)
	}
	return &hcl.EvalContext{Variables: variables}
}

// Resolve evaluates v against the materialized values.
func (vals Values) Resolve(v Value) (string, error) {
	if s, ok := v.Static(); ok {
		return s, nil
	}
	for _, ref := range v.Refs() {
		val, ok := vals[ref]
		if !ok || !val.IsWhollyKnown() || val.IsNull() {
			return "", &UnresolvedReferenceError{Ref: ref}
		}
	}

	expr, err := parseExpr(v.Template())
	if err != nil {
		return "", err
	}
	out, diags := expr.Value(vals.EvalContext())
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate %q: %s", v.Template(), diags.Error())
	}
	out, err = convert.Convert(out, cty.String)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate %q: %w", v.Template(), err)
	}
	return out.AsString(), nil
}
