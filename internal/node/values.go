package node

import (
	"sort"

	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/token"
	"github.com/zclconf/go-cty/cty"
)

// Helpers for building attribute values. Empty collections get an explicit
// element type so encoders always see a well-typed value.

// StringList returns a list of static strings. Each item is stored as an
// escaped template so it is never read back as a reference.
func StringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = token.Literal(s).CtyValue()
	}
	return cty.ListVal(vals)
}

// NumberList returns a list of integers.
func NumberList(items []int) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	vals := make([]cty.Value, len(items))
	for i, n := range items {
		vals[i] = cty.NumberIntVal(int64(n))
	}
	return cty.ListVal(vals)
}

// TokenMap returns a map of rendered token values.
func TokenMap(m map[string]token.Value) cty.Value {
	if len(m) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	vals := make(map[string]cty.Value, len(m))
	for k, v := range m {
		vals[k] = v.CtyValue()
	}
	return cty.MapVal(vals)
}

// AddressList returns a sorted list of addresses rendered as strings.
func AddressList(addrs []nodeid.Address) cty.Value {
	strs := make([]string, len(addrs))
	for i, a := range addrs {
		strs[i] = a.String()
	}
	sort.Strings(strs)
	return StringList(strs)
}

// ObjectList returns a list of objects. All objects must share one type.
func ObjectList(elemType cty.Type, objs []cty.Value) cty.Value {
	if len(objs) == 0 {
		return cty.ListValEmpty(elemType)
	}
	return cty.ListVal(objs)
}
