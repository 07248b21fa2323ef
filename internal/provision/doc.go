// Package provision declares the resources of the platform into a topology
// store. Each method of Provisioner declares one resource (or a small fixed
// group of them), records the dependency edges the resource needs, and
// returns a handle the caller passes on to the resources that consume it.
//
// Provisioners never materialize anything. Attributes whose values only exist
// once a resource is live are written as token references; the execution
// engine resolves them later.
package provision
