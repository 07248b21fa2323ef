// Package localrun adapts declared workloads to a local container runtime.
// Once an execution engine has materialized the referenced attributes, a
// workload node renders into Docker container create options with every
// environment reference resolved.
package localrun
