// Package token models lazily resolved references between declared
// resources.
//
// A Ref names one attribute of a resource that only exists once the external
// execution engine has materialized it, such as a database endpoint address
// or a generated secret. A Value is a string assembled from literal text and
// Refs. Values render in HCL template syntax:
//
//	jdbc:postgresql://${database.patient-service-db.endpoint_address}:${database.patient-service-db.endpoint_port}/patient-service-db
//
// so a synthesized descriptor stays readable and can be parsed back with
// Parse. Synthesis never resolves a Value; Values.Resolve is the hook an
// execution-side collaborator uses once real attribute values are known.
package token
