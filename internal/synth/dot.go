package synth

import (
	"fmt"
	"strings"
)

// EncodeDOT exports the dependency graph as Graphviz DOT text. Edges point
// from a resource to what it depends on.
func EncodeDOT(d *Descriptor) []byte {
	var b strings.Builder
	b.WriteString("digraph caregrid {\n")
	b.WriteString("  rankdir=LR;\n")

	aliases := make(map[string]string, len(d.Resources))
	for i, r := range d.Resources {
		alias := fmt.Sprintf("n%d", i)
		aliases[r.Address.String()] = alias
		label := escapeDOT(r.Address.String())
		b.WriteString(fmt.Sprintf("  %s [label=\"%s\"];\n", alias, label))
	}
	for _, e := range d.Edges() {
		from, okFrom := aliases[e.From.String()]
		to, okTo := aliases[e.To.String()]
		if !okFrom || !okTo {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s -> %s;\n", from, to))
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

// EncodeMermaid exports the dependency graph as Mermaid text.
func EncodeMermaid(d *Descriptor) []byte {
	var b strings.Builder
	b.WriteString("graph TD\n")

	aliases := make(map[string]string, len(d.Resources))
	for i, r := range d.Resources {
		alias := fmt.Sprintf("n%d", i)
		aliases[r.Address.String()] = alias
		b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", alias, escapeMermaid(r.Address.String())))
	}
	for _, e := range d.Edges() {
		from, okFrom := aliases[e.From.String()]
		to, okTo := aliases[e.To.String()]
		if !okFrom || !okTo {
			continue
		}
		b.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
	}
	return []byte(b.String())
}

func escapeDOT(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

func escapeMermaid(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}
