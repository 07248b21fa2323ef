package provision

import "github.com/specialistvlad/caregrid/internal/topologystore"

// DuplicateResourceError is returned when a resource address is declared
// twice in one synthesis pass.
type DuplicateResourceError = topologystore.DuplicateNodeError

// UnresolvedDependencyError is returned when a resource depends on one that
// was never declared.
type UnresolvedDependencyError = topologystore.MissingNodeError

// UndeclaredDependentError is returned when an explicit dependency is
// recorded for a resource that was never declared.
type UndeclaredDependentError = topologystore.UndeclaredDependentError
