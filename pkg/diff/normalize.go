package diff

import (
	"strings"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// normalizeForCompare applies the requested steps, in canonical order, to
// produce the comparison form of a raw line. Returning false drops the
// line from the comparable stream (it stays in the IR).
func normalizeForCompare(raw string, trivia ir.Trivia, steps []Step) (string, bool) {
	out := raw
	for _, step := range steps {
		switch step {
		case StepIgnoreComments:
			if trivia == ir.TriviaComment {
				return "", false
			}
		case StepIgnoreBlankLines:
			if strings.TrimSpace(out) == "" {
				return "", false
			}
		case StepTrimTrailingWhitespace:
			out = strings.TrimRight(out, " \t\r\n\v\f")
		case StepNormalizeLeadingWhitespace:
			out = canonicalizeLeading(out)
		case StepCollapseInternalWhitespace:
			out = strings.Join(strings.Fields(out), " ")
		}
	}
	return out, true
}

// canonicalizeLeading rewrites the leading whitespace run as spaces, one
// per whitespace character, so tab and space indentation compare equal at
// the same depth.
func canonicalizeLeading(raw string) string {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	if i == 0 {
		return raw
	}
	return strings.Repeat(" ", i) + raw[i:]
}
