// Package dialect provides the built-in parser profiles for vendor-style
// configuration syntaxes. A profile only contributes comment markers,
// tokenization, and per-line key hints; structural rules never change.
package dialect

import (
	"fmt"
	"strings"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// Names of the built-in profiles, in CLI order.
func Names() []string {
	return []string{"generic", "eos", "iosxe", "junos"}
}

// Lookup resolves a profile by name.
func Lookup(name string) (ir.Profile, error) {
	switch strings.ToLower(name) {
	case "", "generic":
		return Generic(), nil
	case "eos":
		return EOS(), nil
	case "iosxe":
		return IOSXE(), nil
	case "junos":
		return Junos(), nil
	default:
		return ir.Profile{}, fmt.Errorf("unknown dialect %q (expected one of %s)",
			name, strings.Join(Names(), ", "))
	}
}

// Generic returns the vendor-agnostic default profile: comment markers
// "!" and "#", whitespace tokenization, no key hints.
func Generic() ir.Profile {
	return ir.Profile{
		Name:           "generic",
		CommentMarkers: []string{"!", "#"},
		Tokenize: func(raw string) (ir.ParsedLine, bool) {
			fields := strings.Fields(raw)
			if len(fields) == 0 {
				return ir.ParsedLine{}, false
			}
			return ir.ParsedLine{Head: fields[0], Args: fields[1:]}, true
		},
	}
}
