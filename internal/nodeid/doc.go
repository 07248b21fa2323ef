/*
Package nodeid provides a structured, type-safe representation for the
addresses of declared resources, based on the canonical format `kind.name`,
e.g. `database.patient-service-db` or `workload.api-gateway`.

The name segment follows HCL identifier rules so that an address can be
used verbatim as the root of a reference traversal such as
`database.patient-service-db.endpoint_address`.

This package enforces the identifier schema and centralizes all
formatting and parsing logic.
*/
package nodeid
