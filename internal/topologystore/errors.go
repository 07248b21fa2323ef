package topologystore

import (
	"fmt"

	"github.com/specialistvlad/caregrid/internal/nodeid"
)

// DuplicateNodeError means the same address was declared twice.
type DuplicateNodeError struct {
	ID nodeid.Address
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate resource %s", e.ID)
}

// MissingNodeError means a dependency names an undeclared resource.
type MissingNodeError struct {
	From nodeid.Address
	To   nodeid.Address
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("resource %s depends on undeclared resource %s", e.From, e.To)
}

// UndeclaredDependentError means a dependency was recorded for a resource
// that was never declared. From is the undeclared resource.
type UndeclaredDependentError struct {
	From nodeid.Address
	To   nodeid.Address
}

func (e *UndeclaredDependentError) Error() string {
	return fmt.Sprintf("undeclared resource %s cannot depend on %s", e.From, e.To)
}

// OrderingError means a dependency targets a resource declared after its
// dependent, which could close a cycle.
type OrderingError struct {
	From nodeid.Address
	To   nodeid.Address
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("resource %s cannot depend on %s: %s is declared later", e.From, e.To, e.To)
}
