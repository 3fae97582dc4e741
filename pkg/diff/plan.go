package diff

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// PlanVersion tags the plan contract emitted by this package.
const PlanVersion = "v1"

// ActionKind discriminates plan actions.
type ActionKind string

const (
	ActionReplaceBlock ActionKind = "replace_block"
	ActionLineEdits    ActionKind = "apply_line_edits_under_context"
)

// Action is one transport-neutral apply step. ReplaceBlock rewrites the
// whole child span of a block; LineEdits applies grouped edits under a
// parent context.
type Action struct {
	Kind ActionKind

	// Set for replace_block.
	Path         ir.Path
	NewBlockText string

	// Set for apply_line_edits_under_context.
	ParentPath ir.Path
	Edits      []Edit
}

// MarshalJSON emits the per-kind wire shape: replace_block carries path
// and new_block_text, apply_line_edits_under_context carries parent_path
// and edits.
func (a Action) MarshalJSON() ([]byte, error) {
	if a.Kind == ActionReplaceBlock {
		return json.Marshal(struct {
			Kind         ActionKind `json:"kind"`
			Path         ir.Path    `json:"path"`
			NewBlockText string     `json:"new_block_text"`
		}{a.Kind, a.Path, a.NewBlockText})
	}
	return json.Marshal(struct {
		Kind       ActionKind `json:"kind"`
		ParentPath ir.Path    `json:"parent_path"`
		Edits      []Edit     `json:"edits"`
	}{a.Kind, a.ParentPath, a.Edits})
}

// PlanFinding is a plan-level warning, e.g. an edit whose anchor was
// missing so no action could be derived.
type PlanFinding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Plan is the ordered, transport-neutral action list derived from a Diff.
type Plan struct {
	Version  string        `json:"version"`
	Actions  []Action      `json:"actions"`
	Findings []PlanFinding `json:"findings"`
}

// BuildPlan translates a diff into apply actions. Per parent context: when
// the grouped edits collectively cover every comparable child of that
// parent, a single replace_block rewrites it; otherwise the edits apply
// individually under the context. Actions are ordered by left document
// preorder of their parent paths.
func BuildPlan(d *Diff) Plan {
	plan := Plan{Version: PlanVersion, Actions: []Action{}, Findings: []PlanFinding{}}

	type parentGroup struct {
		path    ir.Path
		edits   []Edit
		covered map[int]bool
	}
	groups := make(map[string]*parentGroup)
	var order []string

	for _, edit := range d.Edits {
		anchor := edit.LeftAnchor
		if anchor == nil {
			anchor = edit.RightAnchor
		}
		if anchor == nil {
			plan.Findings = append(plan.Findings, PlanFinding{
				Code:    "missing_anchor",
				Message: "edit has no anchor on either side; no plan action derived",
			})
			continue
		}

		parent := anchor.Path.Parent()
		key := parentKey(parent)
		group, ok := groups[key]
		if !ok {
			group = &parentGroup{path: parent, covered: map[int]bool{}}
			groups[key] = group
			order = append(order, key)
		}
		group.edits = append(group.edits, edit)

		// Track which direct children of the parent the edit's left side
		// touches; full coverage upgrades the group to replace_block.
		for _, line := range edit.LeftLines {
			if len(line.Path) == len(parent)+1 && line.Path.HasPrefix(parent) {
				group.covered[line.Path[len(line.Path)-1]] = true
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].path.Compare(groups[order[j]].path) < 0
	})

	for _, key := range order {
		group := groups[key]
		childCount, known := d.parents[key]
		if known && childCount > 0 && len(group.covered) == childCount {
			plan.Actions = append(plan.Actions, Action{
				Kind:         ActionReplaceBlock,
				Path:         group.path,
				NewBlockText: replacementText(group.edits),
			})
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Kind:       ActionLineEdits,
			ParentPath: group.path,
			Edits:      group.edits,
		})
	}

	return plan
}

// replacementText joins the right-side lines of a full-coverage group in
// order. With every left child covered, these lines are the block's
// complete intended contents.
func replacementText(edits []Edit) string {
	var lines []string
	for _, edit := range edits {
		for _, line := range edit.RightLines {
			lines = append(lines, line.Original)
		}
	}
	return strings.Join(lines, "\n")
}
