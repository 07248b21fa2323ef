// Package topology assembles the full patient-management platform.
//
// Assembly runs in a fixed leaf-first order: network, databases, probes,
// broker, cluster, the signing key, the internal services and finally the
// gateway. Ordering that cannot be derived from attribute references lives in
// a declarative requirement table consulted once per service, so the policy
// can be audited and tested on its own with Verify.
package topology
