// Package platform holds the data model of the patient-management platform:
// the validated ServiceSpec consumed by the service provisioner, the handles
// returned for every declared resource, and the fixed constants shared by the
// whole deployment.
//
// Handles are plain values. They carry the address of the resource they
// describe and hand out token references to its materialized attributes;
// they never hold materialized values themselves.
package platform
