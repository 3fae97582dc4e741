package diff

import "github.com/yaklabco/confdiff/pkg/ir"

// CompLine is one comparable line in the flattened view of a document:
// normalized text for matching, original text for display, stable keys
// for alignment, and the source location.
type CompLine struct {
	Original   string    `json:"original"`
	Normalized string    `json:"normalized"`
	Path       ir.Path   `json:"path"`
	Span       ir.Span   `json:"span"`
	Trivia     ir.Trivia `json:"trivia"`
	KeyHint    string    `json:"key_hint,omitempty"`

	// ContentKey hashes the normalized text; it is the Myers equality
	// predicate. OccurrenceKey folds in the count of prior identical
	// content keys under the same parent to disambiguate duplicates.
	ContentKey    uint64 `json:"-"`
	OccurrenceKey uint64 `json:"-"`
}

// Anchor places an edit at a path and span in one of the two documents.
type Anchor struct {
	Path ir.Path `json:"path"`
	Span ir.Span `json:"span"`
}

// EditKind discriminates grouped edit operations.
type EditKind string

const (
	EditInsert  EditKind = "insert"
	EditDelete  EditKind = "delete"
	EditReplace EditKind = "replace"
)

// Edit is one grouped operation: a contiguous run of deletions, a run of
// insertions, or a delete-run immediately followed by an insert-run at
// the same alignment position (replace). Inserts have no left anchor and
// deletes no right anchor.
type Edit struct {
	Kind        EditKind   `json:"kind"`
	LeftAnchor  *Anchor    `json:"left_anchor,omitempty"`
	RightAnchor *Anchor    `json:"right_anchor,omitempty"`
	LeftLines   []CompLine `json:"left_lines"`
	RightLines  []CompLine `json:"right_lines"`
}

// Stats counts grouped operations and the lines they touch.
type Stats struct {
	Inserts            int `json:"inserts"`
	Deletes            int `json:"deletes"`
	Replaces           int `json:"replaces"`
	InsertedLines      int `json:"inserted_lines"`
	DeletedLines       int `json:"deleted_lines"`
	ReplacedLeftLines  int `json:"replaced_left_lines"`
	ReplacedRightLines int `json:"replaced_right_lines"`
}

// FindingLevel grades a finding.
type FindingLevel string

const (
	LevelWarning FindingLevel = "warning"
	LevelInfo    FindingLevel = "info"
)

// Finding codes. Findings are the single uncertainty channel: the diff is
// always produced and callers decide policy.
const (
	// FindingUnknownConstruct marks a line neither input's dialect could
	// tokenize, or another parser-level uncertainty.
	FindingUnknownConstruct = "unknown_unparsed_construct"

	// FindingAmbiguousKeyMatch marks a key hint that matched multiple
	// candidates or appeared on only one side under keyed-stable.
	FindingAmbiguousKeyMatch = "ambiguous_key_match"

	// FindingUnreliableRegion marks structure changes under an unknown
	// block header, where the grouped edit is semantically suspect.
	FindingUnreliableRegion = "diff_unreliable_region"
)

// Finding is a stable-coded uncertainty signal attached to the diff.
type Finding struct {
	Code    string       `json:"code"`
	Level   FindingLevel `json:"level"`
	Message string       `json:"message"`
	Path    ir.Path      `json:"path,omitempty"`
	Span    *ir.Span     `json:"span,omitempty"`

	// side orders findings: left document preorder first, then right.
	side int
}

// Diff is the full deterministic comparison result. For identical inputs
// and options the serialized form is bit-identical across runs.
type Diff struct {
	HasChanges         bool              `json:"has_changes"`
	NormalizationSteps []Step            `json:"normalization_steps"`
	OrderPolicy        OrderPolicyConfig `json:"order_policy"`
	Edits              []Edit            `json:"edits"`
	Findings           []Finding         `json:"findings"`
	Stats              Stats             `json:"stats"`

	// parents records, per parent path, how many comparable children the
	// left document had there. The plan builder uses it to decide when a
	// set of edits rewrites a whole block.
	parents map[string]int
}

func buildStats(edits []Edit) Stats {
	var stats Stats
	for _, edit := range edits {
		switch edit.Kind {
		case EditInsert:
			stats.Inserts++
			stats.InsertedLines += len(edit.RightLines)
		case EditDelete:
			stats.Deletes++
			stats.DeletedLines += len(edit.LeftLines)
		case EditReplace:
			stats.Replaces++
			stats.ReplacedLeftLines += len(edit.LeftLines)
			stats.ReplacedRightLines += len(edit.RightLines)
		}
	}
	return stats
}
