// Package app wires the topology engine together: it owns the logger, the
// validated configuration and the synth, validate, plan and containers
// lifecycles the CLI dispatches to.
package app
