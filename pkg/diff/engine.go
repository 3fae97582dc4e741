package diff

import (
	"fmt"
	"sort"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// Documents computes a deterministic diff between two parsed documents.
// Neither document is mutated; all uncertainty is reported as findings
// and the diff is always produced.
func Documents(a, b *ir.Document, opts Options) Diff {
	steps := opts.appliedSteps()
	left := buildCompForest(a, steps)
	right := buildCompForest(b, steps)

	eng := &engine{opts: opts, parents: map[string]int{}}
	eng.parents[parentKey(nil)] = len(left)
	eng.diffSiblings(left, right, nil)

	if eng.edits == nil {
		eng.edits = []Edit{}
	}

	findings := collectFindings(a, b, eng)
	if findings == nil {
		findings = []Finding{}
	}
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].side != findings[j].side {
			return findings[i].side < findings[j].side
		}
		if cmp := findings[i].Path.Compare(findings[j].Path); cmp != 0 {
			return cmp < 0
		}
		if findings[i].Code != findings[j].Code {
			return findings[i].Code < findings[j].Code
		}
		return findings[i].Message < findings[j].Message
	})

	return Diff{
		HasChanges:         len(eng.edits) > 0,
		NormalizationSteps: steps,
		OrderPolicy:        opts.OrderPolicy,
		Edits:              eng.edits,
		Findings:           findings,
		Stats:              buildStats(eng.edits),
		parents:            eng.parents,
	}
}

type engine struct {
	opts Options

	edits       []Edit
	keyFindings []Finding
	unreliable  []Finding

	// parents maps a left parent path to its comparable child count.
	parents map[string]int
}

func parentKey(path ir.Path) string {
	return path.String()
}

// diffSiblings aligns two ordered child lists under the policy resolved
// for their (left) parent path and appends grouped edits.
func (e *engine) diffSiblings(left, right []*compNode, parentPath ir.Path) {
	switch e.opts.OrderPolicy.PolicyFor(parentPath) {
	case PolicyUnordered:
		e.diffUnordered(left, right)
	case PolicyKeyedStable:
		e.diffKeyedStable(left, right, parentPath)
	default:
		e.diffOrdered(left, right)
	}
}

// diffOrdered runs positional Myers alignment over content keys, grouping
// a delete run followed by an insert run at one position into a replace.
func (e *engine) diffOrdered(left, right []*compNode) {
	ops := myersOps(keysOf(left), keysOf(right))

	var pendingDel, pendingIns []*compNode
	i, j := 0, 0

	for _, op := range ops {
		switch op {
		case opKeep:
			e.flush(&pendingDel, &pendingIns)
			e.matchPair(left[i], right[j])
			i++
			j++
		case opDelete:
			pendingDel = append(pendingDel, left[i])
			i++
		case opInsert:
			pendingIns = append(pendingIns, right[j])
			j++
		}
	}
	e.flush(&pendingDel, &pendingIns)
}

// matchPair handles two siblings aligned as equal: recurse into block
// children (a leaf matched against a block compares as an empty child
// list) under the left block's path.
func (e *engine) matchPair(l, r *compNode) {
	if !l.isBlock && !r.isBlock {
		return
	}
	e.parents[parentKey(l.line.Path)] = len(l.children)

	before := len(e.edits)
	e.diffSiblings(l.children, r.children, l.line.Path)

	if len(e.edits) > before && (l.line.Trivia == ir.TriviaUnknown || r.line.Trivia == ir.TriviaUnknown) {
		span := l.line.Span
		e.unreliable = append(e.unreliable, Finding{
			Code:    FindingUnreliableRegion,
			Level:   LevelWarning,
			Message: "structure changed under a block header that could not be tokenized; grouped edits may be unreliable",
			Path:    l.line.Path,
			Span:    &span,
		})
	}
}

// diffUnordered matches siblings as multisets by content key with stable
// pairing by original order among equal keys. Matched block pairs still
// recurse; leftover runs become deletes then inserts in document order.
func (e *engine) diffUnordered(left, right []*compNode) {
	available := make(map[uint64][]int)
	for idx, node := range right {
		available[node.line.ContentKey] = append(available[node.line.ContentKey], idx)
	}

	matchedRight := make([]bool, len(right))
	partner := make([]int, len(left))

	for idx, node := range left {
		partner[idx] = -1
		queue := available[node.line.ContentKey]
		if len(queue) > 0 {
			partner[idx] = queue[0]
			matchedRight[queue[0]] = true
			available[node.line.ContentKey] = queue[1:]
		}
	}

	for idx, node := range left {
		if partner[idx] >= 0 {
			e.matchPair(node, right[partner[idx]])
		}
	}

	for _, run := range unmatchedRuns(len(left), func(i int) bool { return partner[i] < 0 }) {
		e.emitRun(EditDelete, left[run.start:run.end], nil)
	}
	for _, run := range unmatchedRuns(len(right), func(i int) bool { return !matchedRight[i] }) {
		e.emitRun(EditInsert, nil, right[run.start:run.end])
	}
}

// diffKeyedStable anchors children whose key hint appears exactly once on
// both sides, then aligns the remainder positionally. Hints that match
// several candidates or one side only are reported and fall back.
func (e *engine) diffKeyedStable(left, right []*compNode, parentPath ir.Path) {
	leftHints := hintIndex(left)
	rightHints := hintIndex(right)

	leftAnchored := make([]int, len(left))
	for i := range leftAnchored {
		leftAnchored[i] = -1
	}
	rightAnchored := make([]bool, len(right))

	hints := make([]string, 0, len(leftHints))
	for hint := range leftHints {
		hints = append(hints, hint)
	}
	sort.Strings(hints)

	for _, hint := range hints {
		l := leftHints[hint]
		r := rightHints[hint]
		switch {
		case len(l) == 1 && len(r) == 1:
			leftAnchored[l[0]] = r[0]
			rightAnchored[r[0]] = true
		case len(r) == 0:
			e.recordKeyFinding(left[l[0]].line, 0,
				fmt.Sprintf("key %q present only on the left side", hint))
		default:
			e.recordKeyFinding(left[l[0]].line, 0,
				fmt.Sprintf("key %q matches %d left and %d right candidates", hint, len(l), len(r)))
		}
	}
	for hint, r := range rightHints {
		if _, onLeft := leftHints[hint]; !onLeft {
			e.recordKeyFinding(right[r[0]].line, 1,
				fmt.Sprintf("key %q present only on the right side", hint))
		}
	}

	// Anchored pairs diff first, in left document order, even when the
	// right side reordered them.
	for idx, node := range left {
		if r := leftAnchored[idx]; r >= 0 {
			partner := right[r]
			if node.line.ContentKey != partner.line.ContentKey {
				e.emitRun(EditReplace, []*compNode{node}, []*compNode{partner})
			}
			e.matchPair(node, partner)
		}
	}

	var restLeft, restRight []*compNode
	for idx, node := range left {
		if leftAnchored[idx] < 0 {
			restLeft = append(restLeft, node)
		}
	}
	for idx, node := range right {
		if !rightAnchored[idx] {
			restRight = append(restRight, node)
		}
	}
	e.diffOrdered(restLeft, restRight)
}

func (e *engine) recordKeyFinding(line CompLine, side int, message string) {
	span := line.Span
	e.keyFindings = append(e.keyFindings, Finding{
		Code:    FindingAmbiguousKeyMatch,
		Level:   LevelWarning,
		Message: message,
		Path:    line.Path,
		Span:    &span,
		side:    side,
	})
}

// flush groups pending runs into a single edit: a replace when both sides
// are present, otherwise a plain delete or insert.
func (e *engine) flush(pendingDel, pendingIns *[]*compNode) {
	del, ins := *pendingDel, *pendingIns
	if len(del) == 0 && len(ins) == 0 {
		return
	}
	*pendingDel, *pendingIns = nil, nil

	switch {
	case len(del) > 0 && len(ins) > 0:
		e.emitRun(EditReplace, del, ins)
	case len(del) > 0:
		e.emitRun(EditDelete, del, nil)
	default:
		e.emitRun(EditInsert, nil, ins)
	}
}

func (e *engine) emitRun(kind EditKind, del, ins []*compNode) {
	edit := Edit{
		Kind:       kind,
		LeftLines:  collectLines(del),
		RightLines: collectLines(ins),
	}
	if len(edit.LeftLines) > 0 {
		edit.LeftAnchor = &Anchor{Path: edit.LeftLines[0].Path, Span: edit.LeftLines[0].Span}
	}
	if len(edit.RightLines) > 0 {
		edit.RightAnchor = &Anchor{Path: edit.RightLines[0].Path, Span: edit.RightLines[0].Span}
	}
	e.edits = append(e.edits, edit)
}

func keysOf(nodes []*compNode) []uint64 {
	keys := make([]uint64, len(nodes))
	for i, node := range nodes {
		keys[i] = node.line.ContentKey
	}
	return keys
}

func hintIndex(nodes []*compNode) map[string][]int {
	out := make(map[string][]int)
	for idx, node := range nodes {
		if node.line.KeyHint != "" {
			out[node.line.KeyHint] = append(out[node.line.KeyHint], idx)
		}
	}
	return out
}

type indexRun struct {
	start, end int
}

// unmatchedRuns returns the contiguous index ranges where pred holds.
func unmatchedRuns(n int, pred func(int) bool) []indexRun {
	var runs []indexRun
	for i := 0; i < n; {
		if !pred(i) {
			i++
			continue
		}
		start := i
		for i < n && pred(i) {
			i++
		}
		runs = append(runs, indexRun{start: start, end: i})
	}
	return runs
}
