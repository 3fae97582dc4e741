// Package diff computes deterministic structural diffs between two parsed
// configuration documents and derives transport-neutral apply plans.
//
// The pipeline is pure and synchronous: normalize + flatten both inputs
// into comparison views, align siblings with a Myers shortest-edit-script
// under the configured order policy, group raw edits into block-aware
// operations, and collect uncertainty findings. Neither input document is
// ever mutated.
package diff

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/confdiff/pkg/ir"
)

// Step is one recognized normalization step. Steps apply in a fixed
// canonical order regardless of the order they were requested in.
type Step string

const (
	StepIgnoreComments             Step = "ignore_comments"
	StepIgnoreBlankLines           Step = "ignore_blank_lines"
	StepTrimTrailingWhitespace     Step = "trim_trailing_whitespace"
	StepNormalizeLeadingWhitespace Step = "normalize_leading_whitespace"
	StepCollapseInternalWhitespace Step = "collapse_internal_whitespace"
)

// stepOrder is the canonical application order.
var stepOrder = []Step{
	StepIgnoreComments,
	StepIgnoreBlankLines,
	StepTrimTrailingWhitespace,
	StepNormalizeLeadingWhitespace,
	StepCollapseInternalWhitespace,
}

// ParseStep validates a step name.
func ParseStep(name string) (Step, error) {
	for _, step := range stepOrder {
		if string(step) == name {
			return step, nil
		}
	}
	return "", fmt.Errorf("unknown normalization step %q", name)
}

// OrderPolicy selects how sibling order is treated during alignment.
type OrderPolicy string

const (
	// PolicyOrdered treats sibling order as significant; alignment is
	// positional Myers SES over content keys.
	PolicyOrdered OrderPolicy = "ordered"

	// PolicyUnordered matches siblings as multisets by content key with
	// stable pairing by original order among equal keys.
	PolicyUnordered OrderPolicy = "unordered"

	// PolicyKeyedStable anchors siblings sharing a key hint first, even
	// across reorderings, then falls back to ordered alignment.
	PolicyKeyedStable OrderPolicy = "keyed-stable"
)

// ParseOrderPolicy validates a policy name.
func ParseOrderPolicy(name string) (OrderPolicy, error) {
	switch OrderPolicy(name) {
	case PolicyOrdered, PolicyUnordered, PolicyKeyedStable:
		return OrderPolicy(name), nil
	default:
		return "", fmt.Errorf("unknown order policy %q (expected ordered, unordered, or keyed-stable)", name)
	}
}

// PolicyOverride pins a policy for one subtree context by path prefix.
type PolicyOverride struct {
	ContextPrefix ir.Path     `json:"context_prefix"`
	Policy        OrderPolicy `json:"policy"`
}

// OrderPolicyConfig is a default policy plus longest-prefix overrides.
type OrderPolicyConfig struct {
	Default   OrderPolicy      `json:"default"`
	Overrides []PolicyOverride `json:"overrides"`
}

// PolicyFor resolves the policy for children of the given parent path,
// picking the longest matching override prefix.
func (c OrderPolicyConfig) PolicyFor(path ir.Path) OrderPolicy {
	policy := c.Default
	if policy == "" {
		policy = PolicyOrdered
	}
	bestLen := -1
	for _, rule := range c.Overrides {
		if path.HasPrefix(rule.ContextPrefix) && len(rule.ContextPrefix) > bestLen {
			bestLen = len(rule.ContextPrefix)
			policy = rule.Policy
		}
	}
	return policy
}

// MarshalJSON emits the bare policy name when no overrides are set, and
// the full {default, overrides} object otherwise.
func (c OrderPolicyConfig) MarshalJSON() ([]byte, error) {
	policy := c.Default
	if policy == "" {
		policy = PolicyOrdered
	}
	if len(c.Overrides) == 0 {
		return json.Marshal(string(policy))
	}
	type full struct {
		Default   OrderPolicy      `json:"default"`
		Overrides []PolicyOverride `json:"overrides"`
	}
	return json.Marshal(full{Default: policy, Overrides: c.Overrides})
}

// Options control normalization and ordering semantics for one diff run.
// Normalization produces a parallel comparison view; the IR is untouched.
type Options struct {
	// Steps is the requested normalization subset. Duplicates are ignored
	// and application order is always canonical.
	Steps []Step

	// OrderPolicy configures sibling ordering semantics.
	OrderPolicy OrderPolicyConfig
}

// appliedSteps returns the requested subset in canonical order without
// duplicates. This is what gets recorded on the Diff.
func (o Options) appliedSteps() []Step {
	requested := make(map[Step]bool, len(o.Steps))
	for _, step := range o.Steps {
		requested[step] = true
	}
	out := make([]Step, 0, len(requested))
	for _, step := range stepOrder {
		if requested[step] {
			out = append(out, step)
		}
	}
	return out
}
