package nodeid

// New returns the address of the named resource of the given kind. It does
// not validate; use Validate or Parse for untrusted input.
func New(kind Kind, name string) Address {
	return Address{Kind: kind, Name: name}
}

// String serializes the Address into its canonical `kind.name` form.
func (a Address) String() string {
	if a.Kind == "" && a.Name == "" {
		return ""
	}
	return string(a.Kind) + "." + a.Name
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Less orders addresses lexically by their canonical string.
func (a Address) Less(other Address) bool {
	return a.String() < other.String()
}

// Compare returns -1, 0 or +1 depending on the lexical order of a and other.
// It is suitable for slices.SortFunc.
func Compare(a, b Address) int {
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
