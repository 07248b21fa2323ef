package dag

import "strings"

// CycleError reports a dependency cycle. Path starts and ends with the same
// node, following dependency direction.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "cycle detected"
	}
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}
