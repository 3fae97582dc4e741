package dialect

import (
	"fmt"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// EOS returns the Arista EOS-oriented profile: comment markers "!" and
// "#", quote-aware tokenization, and stanza key hints for the common
// keyed block headers.
func EOS() ir.Profile {
	return ir.Profile{
		Name:           "eos",
		CommentMarkers: []string{"!", "#"},
		Tokenize:       tokenizeIOSFamily,
		KeyHint:        iosFamilyKeyHint,
	}
}

func tokenizeIOSFamily(raw string) (ir.ParsedLine, bool) {
	tokens := tokenize(raw, "")
	if len(tokens) == 0 {
		return ir.ParsedLine{}, false
	}
	return ir.ParsedLine{Head: tokens[0], Args: tokens[1:]}, true
}

// iosFamilyKeyHint extracts stable stanza identities shared by the
// EOS/IOS-XE configuration families.
func iosFamilyKeyHint(_ string, parsed *ir.ParsedLine, trivia ir.Trivia) (string, bool) {
	if trivia != ir.TriviaContent || parsed == nil {
		return "", false
	}
	args := parsed.Args

	switch parsed.Head {
	case "interface":
		if len(args) > 0 {
			return "interface:" + args[0], true
		}
	case "vlan":
		if len(args) > 0 {
			return "vlan:" + args[0], true
		}
	case "vrf":
		if len(args) > 0 {
			return "vrf:" + args[0], true
		}
	case "router":
		switch {
		case len(args) >= 2 && args[0] == "bgp":
			return "router:bgp:" + args[1], true
		case len(args) >= 1:
			return "router:" + args[0], true
		}
	case "route-map":
		switch {
		case len(args) >= 3:
			return fmt.Sprintf("route-map:%s:%s:%s", args[0], args[1], args[2]), true
		case len(args) == 2:
			return fmt.Sprintf("route-map:%s:%s", args[0], args[1]), true
		}
	case "ip":
		switch {
		case len(args) >= 3 && args[0] == "access-list":
			return fmt.Sprintf("ip-access-list:%s:%s", args[1], args[2]), true
		case len(args) >= 2 && args[0] == "prefix-list":
			return "prefix-list:" + args[1], true
		}
	case "line":
		switch {
		case len(args) >= 3:
			return fmt.Sprintf("line:%s:%s:%s", args[0], args[1], args[2]), true
		case len(args) == 2:
			return fmt.Sprintf("line:%s:%s", args[0], args[1]), true
		}
	}
	return "", false
}
