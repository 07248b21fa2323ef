package synth

import (
	"fmt"
	"slices"
)

// Format names an encoding of the descriptor.
type Format string

const (
	FormatJSON    Format = "json"
	FormatHCL     Format = "hcl"
	FormatYAML    Format = "yaml"
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatHCL, FormatYAML, FormatDOT, FormatMermaid}
}

// Encode renders d in the given format.
func Encode(d *Descriptor, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(d)
	case FormatHCL:
		return EncodeHCL(d)
	case FormatYAML:
		return EncodeYAML(d)
	case FormatDOT:
		return EncodeDOT(d), nil
	case FormatMermaid:
		return EncodeMermaid(d), nil
	default:
		return nil, fmt.Errorf("unsupported format %q, expected one of %v", format, Formats())
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(Formats(), f) {
		return "", fmt.Errorf("unsupported format %q, expected one of %v", s, Formats())
	}
	return f, nil
}
