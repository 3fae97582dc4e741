package diff

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// contentKey hashes the normalized comparison text. It is the equality
// predicate for alignment.
func contentKey(normalized string) uint64 {
	return xxhash.Sum64String(normalized)
}

// occurrenceKey disambiguates duplicate content under one parent. ordinal
// is the count of prior lines with the same content key on that parent.
func occurrenceKey(content uint64, ordinal int) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("c=%d|o=%d", content, ordinal))
}

// compNode mirrors one comparable IR node: the node's own line in
// normalized form plus comparable children for blocks. Lines dropped by
// normalization do not get a compNode.
type compNode struct {
	line     CompLine
	isBlock  bool
	children []*compNode
}

// buildCompForest builds the comparison view of a document as a forest
// parallel to the IR roots.
func buildCompForest(doc *ir.Document, steps []Step) []*compNode {
	b := compBuilder{doc: doc, steps: steps}
	return b.siblings(doc.Roots(), nil)
}

type compBuilder struct {
	doc   *ir.Document
	steps []Step
}

// siblings converts an ordered child list. Paths carry IR child indices,
// so a dropped sibling (ignored comment or blank) leaves a gap rather
// than renumbering: every emitted path resolves in the source document.
func (b *compBuilder) siblings(ids []ir.NodeID, parent ir.Path) []*compNode {
	var out []*compNode
	ordinals := make(map[uint64]int)

	for idx, id := range ids {
		node := b.doc.Node(id)
		if node == nil {
			continue
		}
		header := node.HeaderLine()
		normalized, keep := normalizeForCompare(header.Raw, header.Trivia, b.steps)
		if !keep {
			continue
		}

		path := parent.Child(idx)
		content := contentKey(normalized)
		ordinal := ordinals[content]
		ordinals[content]++

		comp := &compNode{
			line: CompLine{
				Original:      header.Raw,
				Normalized:    normalized,
				Path:          path,
				Span:          header.Span,
				Trivia:        header.Trivia,
				KeyHint:       header.KeyHint,
				ContentKey:    content,
				OccurrenceKey: occurrenceKey(content, ordinal),
			},
		}
		if node.Block != nil {
			comp.isBlock = true
			comp.children = b.siblings(node.Block.Children, path)
		}
		out = append(out, comp)
	}

	return out
}

// Flatten walks a document in preorder and emits the ordered comparable
// line stream used for matching. Lines dropped by normalization
// (ignored comments or blanks) are omitted but remain in the IR.
func Flatten(doc *ir.Document, opts Options) []CompLine {
	steps := opts.appliedSteps()
	forest := buildCompForest(doc, steps)
	out := make([]CompLine, 0, doc.NodeCount())
	flattenForest(forest, &out)
	return out
}

func flattenForest(nodes []*compNode, out *[]CompLine) {
	for _, node := range nodes {
		*out = append(*out, node.line)
		flattenForest(node.children, out)
	}
}

// subtreeLines collects the preorder comparable lines of one comparison
// subtree, used to fill edit payloads when whole blocks move.
func subtreeLines(node *compNode) []CompLine {
	out := []CompLine{node.line}
	for _, child := range node.children {
		out = append(out, subtreeLines(child)...)
	}
	return out
}

func collectLines(nodes []*compNode) []CompLine {
	out := make([]CompLine, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, subtreeLines(node)...)
	}
	return out
}
