package topology

import (
	"fmt"

	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/token"
)

// UnknownServiceError means a requirement row names a workload that is never
// declared.
type UnknownServiceError struct {
	Service nodeid.Address
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("requirement table names undeclared service %s", e.Service)
}

// MissingEdgeError means an edge set lacks an edge the requirement table
// demands.
type MissingEdgeError struct {
	From nodeid.Address
	To   nodeid.Address
}

func (e *MissingEdgeError) Error() string {
	return fmt.Sprintf("%s must be realized after %s, but no such edge is declared", e.From, e.To)
}

// UnsequencedReferenceError means a resource references an attribute of a
// resource it is not ordered after.
type UnsequencedReferenceError struct {
	From nodeid.Address
	Ref  token.Ref
}

func (e *UnsequencedReferenceError) Error() string {
	return fmt.Sprintf("%s references %s without depending on %s", e.From, e.Ref.Expr(), e.Ref.Resource)
}
