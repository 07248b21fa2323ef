package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex accepts lowercase HCL-compatible identifiers, allowing dashes
// and underscores after the first letter.
var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateName checks that name can be used as the name segment of an address.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("resource name cannot be empty")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid resource name %q: must match %s", name, nameRegex.String())
	}
	if strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return fmt.Errorf("invalid resource name %q: dangling or repeated dash", name)
	}
	return nil
}

// Validate checks both segments of the address.
func (a Address) Validate() error {
	if !a.Kind.Valid() {
		return fmt.Errorf("unknown resource kind %q", a.Kind)
	}
	if err := ValidateName(a.Name); err != nil {
		return fmt.Errorf("address %q: %w", a.String(), err)
	}
	return nil
}

// Parse creates a new Address by parsing its canonical string representation.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}

	kind, name, ok := strings.Cut(rawID, ".")
	if !ok {
		return Address{}, fmt.Errorf("identifier %q is missing the name segment", rawID)
	}

	addr := Address{Kind: Kind(kind), Name: name}
	if err := addr.Validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// MustParse is like Parse but panics on error. It is intended for static
// tables declared at package level.
func MustParse(rawID string) Address {
	addr, err := Parse(rawID)
	if err != nil {
		panic(fmt.Sprintf("nodeid: %v", err))
	}
	return addr
}
