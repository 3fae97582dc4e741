package diff

import (
	"fmt"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// collectFindings gathers all uncertainty signals for a diff run: unknown
// constructs and parse-level notes from each input, key-match ambiguity,
// and unreliable regions observed during alignment.
func collectFindings(a, b *ir.Document, eng *engine) []Finding {
	var findings []Finding
	findings = append(findings, documentFindings(a, "left", 0)...)
	findings = append(findings, documentFindings(b, "right", 1)...)
	findings = append(findings, eng.keyFindings...)
	findings = append(findings, eng.unreliable...)
	return findings
}

func documentFindings(doc *ir.Document, side string, sideRank int) []Finding {
	var out []Finding

	doc.Walk(func(_ ir.NodeID, node *ir.Node, path ir.Path) bool {
		header := node.HeaderLine()
		if header.Trivia == ir.TriviaUnknown {
			span := header.Span
			out = append(out, Finding{
				Code:    FindingUnknownConstruct,
				Level:   LevelWarning,
				Message: fmt.Sprintf("%s line %d could not be tokenized and is preserved verbatim", side, header.Span.Line),
				Path:    path.Clone(),
				Span:    &span,
				side:    sideRank,
			})
		}
		return true
	})

	for _, pf := range doc.Metadata.ParseFindings {
		// Unknown-trivia lines are already reported by the walk above.
		if pf.Code == "unrecognized-line" {
			continue
		}
		span := pf.Span
		out = append(out, Finding{
			Code:    FindingUnknownConstruct,
			Level:   LevelInfo,
			Message: fmt.Sprintf("%s parse uncertainty [%s]: %s", side, pf.Code, pf.Message),
			Path:    pathForLine(doc, pf.Span.Line),
			Span:    &span,
			side:    sideRank,
		})
	}

	return out
}

// pathForLine locates the path of the node whose header sits on the given
// 1-based source line, or nil when the line is not addressable.
func pathForLine(doc *ir.Document, line int) ir.Path {
	var found ir.Path
	doc.Walk(func(_ ir.NodeID, node *ir.Node, path ir.Path) bool {
		if node.HeaderLine().Span.Line == line {
			found = path.Clone()
			return false
		}
		return true
	})
	return found
}
