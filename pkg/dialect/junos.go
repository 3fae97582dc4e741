package dialect

import (
	"fmt"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// Junos returns the Juniper Junos-oriented profile: hash and C-style
// comment markers, brace/semicolon-aware tokenization, and key hints for
// top-level stanzas and set-style lines.
func Junos() ir.Profile {
	return ir.Profile{
		Name:           "junos",
		CommentMarkers: []string{"#", "/*", "*/", "*"},
		Tokenize:       tokenizeJunos,
		KeyHint:        junosKeyHint,
	}
}

func tokenizeJunos(raw string) (ir.ParsedLine, bool) {
	tokens := tokenize(raw, "{};")
	if len(tokens) == 0 {
		return ir.ParsedLine{}, false
	}
	return ir.ParsedLine{Head: tokens[0], Args: tokens[1:]}, true
}

func junosKeyHint(_ string, parsed *ir.ParsedLine, trivia ir.Trivia) (string, bool) {
	if trivia != ir.TriviaContent || parsed == nil {
		return "", false
	}

	switch parsed.Head {
	case "interfaces", "protocols", "routing-instances", "policy-options":
		return parsed.Head, true
	case "set":
		return junosSetKeyHint(parsed.Args)
	}
	return "", false
}

func junosSetKeyHint(args []string) (string, bool) {
	if len(args) < 2 {
		return "", false
	}
	switch args[0] {
	case "interfaces":
		return "set-interface:" + args[1], true
	case "routing-instances":
		return "set-routing-instance:" + args[1], true
	case "protocols":
		if len(args) >= 3 && args[1] == "bgp" {
			return fmt.Sprintf("set-protocols:bgp:%s", args[2]), true
		}
	}
	return "", false
}
