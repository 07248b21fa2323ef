// Package synth turns an assembled topology store into a deployment
// descriptor and encodes it for the external execution engine.
//
// A descriptor lists every resource in dependency order, lexical order
// breaking ties, so two runs over the same input encode to identical bytes.
// Cross-resource attributes stay as ${kind.name.attribute} interpolations in
// every encoding; the engine resolves them when it realizes the graph.
package synth
