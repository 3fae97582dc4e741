package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/confdiff/pkg/dialect"
	"github.com/yaklabco/confdiff/pkg/diff"
	"github.com/yaklabco/confdiff/pkg/ir"
)

func parseGeneric(t *testing.T, input string) *ir.Document {
	t.Helper()
	return ir.Parse(input, dialect.Generic())
}

func TestDiffIdenticalDocuments(t *testing.T) {
	t.Parallel()

	input := "interface Ethernet1\n  description uplink\n  mtu 9214\nhostname sw-1\n"

	for _, policy := range []diff.OrderPolicy{diff.PolicyOrdered, diff.PolicyUnordered, diff.PolicyKeyedStable} {
		t.Run(string(policy), func(t *testing.T) {
			t.Parallel()

			a := parseGeneric(t, input)
			b := parseGeneric(t, input)
			result := diff.Documents(a, b, diff.Options{
				OrderPolicy: diff.OrderPolicyConfig{Default: policy},
			})

			assert.False(t, result.HasChanges)
			assert.Empty(t, result.Edits)
			assert.Equal(t, diff.Stats{}, result.Stats)
		})
	}
}

func TestDiffDescriptionReplace(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "interface Ethernet1\n  description old\n")
	b := parseGeneric(t, "interface Ethernet1\n  description new\n")

	result := diff.Documents(a, b, diff.Options{})

	require.True(t, result.HasChanges)
	assert.Equal(t, 1, result.Stats.Replaces)
	assert.Equal(t, 0, result.Stats.Inserts)
	assert.Equal(t, 0, result.Stats.Deletes)

	require.Len(t, result.Edits, 1)
	edit := result.Edits[0]
	assert.Equal(t, diff.EditReplace, edit.Kind)
	require.NotNil(t, edit.LeftAnchor)
	assert.Equal(t, ir.Path{0, 0}, edit.LeftAnchor.Path)
	require.NotNil(t, edit.RightAnchor)
	assert.Equal(t, ir.Path{0, 0}, edit.RightAnchor.Path)
	require.Len(t, edit.LeftLines, 1)
	assert.Equal(t, "  description old", edit.LeftLines[0].Original)
	require.Len(t, edit.RightLines, 1)
	assert.Equal(t, "  description new", edit.RightLines[0].Original)
}

func TestDiffIgnoreCommentsHidesNoise(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "! note\ninterface X\n")
	b := parseGeneric(t, "interface X\n")

	result := diff.Documents(a, b, diff.Options{Steps: []diff.Step{diff.StepIgnoreComments}})

	assert.False(t, result.HasChanges)
	assert.Empty(t, result.Edits)
	assert.Equal(t, []diff.Step{diff.StepIgnoreComments}, result.NormalizationSteps)
}

func TestDiffInsertAndDelete(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "hostname sw-1\nvlan 10\nvlan 20\n")
	b := parseGeneric(t, "hostname sw-1\nvlan 20\nvlan 30\n")

	result := diff.Documents(a, b, diff.Options{})

	require.True(t, result.HasChanges)
	assert.Equal(t, result.Stats.Inserts+result.Stats.Deletes+result.Stats.Replaces,
		len(result.Edits))

	// The minimal script drops "vlan 10" and adds "vlan 30".
	var sawDelete, sawInsert bool
	for _, edit := range result.Edits {
		switch edit.Kind {
		case diff.EditDelete:
			sawDelete = true
			require.Len(t, edit.LeftLines, 1)
			assert.Equal(t, "vlan 10", edit.LeftLines[0].Original)
			assert.Nil(t, edit.RightAnchor)
		case diff.EditInsert:
			sawInsert = true
			require.Len(t, edit.RightLines, 1)
			assert.Equal(t, "vlan 30", edit.RightLines[0].Original)
			assert.Nil(t, edit.LeftAnchor)
		}
	}
	assert.True(t, sawDelete)
	assert.True(t, sawInsert)
}

func TestDiffKeyedStableIgnoresBlockReorder(t *testing.T) {
	t.Parallel()

	left := "interface Ethernet1\n   mtu 9214\n!\ninterface Ethernet2\n   mtu 1500\n"
	right := "interface Ethernet2\n   mtu 1500\n!\ninterface Ethernet1\n   mtu 9214\n"

	a := ir.Parse(left, dialect.EOS())
	b := ir.Parse(right, dialect.EOS())

	keyed := diff.Documents(a, b, diff.Options{
		Steps:       []diff.Step{diff.StepIgnoreComments},
		OrderPolicy: diff.OrderPolicyConfig{Default: diff.PolicyKeyedStable},
	})
	assert.False(t, keyed.HasChanges, "keyed-stable must match reordered keyed blocks")
	assert.Empty(t, keyed.Edits)

	ordered := diff.Documents(a, b, diff.Options{
		Steps:       []diff.Step{diff.StepIgnoreComments},
		OrderPolicy: diff.OrderPolicyConfig{Default: diff.PolicyOrdered},
	})
	assert.True(t, ordered.HasChanges, "ordered policy must see the reorder")
	assert.NotEmpty(t, ordered.Edits)
}

func TestDiffUnorderedPermutationIsClean(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "vlan 10\nvlan 20\nvlan 30\n")
	b := parseGeneric(t, "vlan 30\nvlan 10\nvlan 20\n")

	result := diff.Documents(a, b, diff.Options{
		OrderPolicy: diff.OrderPolicyConfig{Default: diff.PolicyUnordered},
	})
	assert.False(t, result.HasChanges)

	ordered := diff.Documents(a, b, diff.Options{})
	assert.True(t, ordered.HasChanges)
}

func TestDiffUnorderedSurplusBecomesEdits(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "vlan 10\nvlan 20\n")
	b := parseGeneric(t, "vlan 20\nvlan 40\nvlan 50\n")

	result := diff.Documents(a, b, diff.Options{
		OrderPolicy: diff.OrderPolicyConfig{Default: diff.PolicyUnordered},
	})

	require.True(t, result.HasChanges)
	require.Len(t, result.Edits, 2)
	assert.Equal(t, diff.EditDelete, result.Edits[0].Kind)
	assert.Equal(t, "vlan 10", result.Edits[0].LeftLines[0].Original)
	assert.Equal(t, diff.EditInsert, result.Edits[1].Kind)
	require.Len(t, result.Edits[1].RightLines, 2)
	assert.Equal(t, "vlan 40", result.Edits[1].RightLines[0].Original)
}

func TestDiffOrderedMirrorInversion(t *testing.T) {
	t.Parallel()

	left := "hostname old\ninterface Ethernet1\n  mtu 1500\n"
	right := "hostname new\ninterface Ethernet1\n  mtu 1500\n  no shutdown\n"

	a := parseGeneric(t, left)
	b := parseGeneric(t, right)

	forward := diff.Documents(a, b, diff.Options{})
	backward := diff.Documents(b, a, diff.Options{})

	require.Equal(t, len(forward.Edits), len(backward.Edits))
	for i, fw := range forward.Edits {
		bw := backward.Edits[i]
		switch fw.Kind {
		case diff.EditInsert:
			assert.Equal(t, diff.EditDelete, bw.Kind)
			assert.Equal(t, fw.RightAnchor, bw.LeftAnchor)
		case diff.EditDelete:
			assert.Equal(t, diff.EditInsert, bw.Kind)
			assert.Equal(t, fw.LeftAnchor, bw.RightAnchor)
		case diff.EditReplace:
			assert.Equal(t, diff.EditReplace, bw.Kind)
			assert.Equal(t, fw.LeftAnchor, bw.RightAnchor)
			assert.Equal(t, fw.RightAnchor, bw.LeftAnchor)
			assert.Equal(t, fw.LeftLines, bw.RightLines)
			assert.Equal(t, fw.RightLines, bw.LeftLines)
		}
	}
}

func TestDiffAnchorsResolve(t *testing.T) {
	t.Parallel()

	a := ir.Parse("! generated\ninterface Ethernet1\n   description old\n   mtu 1500\n", dialect.EOS())
	b := ir.Parse("interface Ethernet1\n   description new\n   speed forced 40gfull\n", dialect.EOS())

	result := diff.Documents(a, b, diff.Options{Steps: []diff.Step{diff.StepIgnoreComments}})

	require.True(t, result.HasChanges)
	for _, edit := range result.Edits {
		if edit.LeftAnchor != nil {
			_, ok := a.Resolve(edit.LeftAnchor.Path)
			assert.True(t, ok, "left anchor %s must resolve in a", edit.LeftAnchor.Path)
		}
		if edit.RightAnchor != nil {
			_, ok := b.Resolve(edit.RightAnchor.Path)
			assert.True(t, ok, "right anchor %s must resolve in b", edit.RightAnchor.Path)
		}
	}
}

func TestDiffStatsMatchEditKinds(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "a\nb\nc\nd\n")
	b := parseGeneric(t, "a\nx\nc\ne\nf\n")

	result := diff.Documents(a, b, diff.Options{})
	assert.Equal(t, len(result.Edits),
		result.Stats.Inserts+result.Stats.Deletes+result.Stats.Replaces)
}

func TestDiffPolicyOverrides(t *testing.T) {
	t.Parallel()

	// Only groupA's children are reordered: the override scopes unordered
	// matching to the first block's children, so the default ordered run
	// sees the reorder while the scoped run does not.
	left := "groupA\n  member one\n  member two\ngroupB\n  member ten\n"
	right := "groupA\n  member two\n  member one\ngroupB\n  member ten\n"

	a := parseGeneric(t, left)
	b := parseGeneric(t, right)

	strict := diff.Documents(a, b, diff.Options{})
	assert.True(t, strict.HasChanges)

	scoped := diff.Documents(a, b, diff.Options{
		OrderPolicy: diff.OrderPolicyConfig{
			Default: diff.PolicyOrdered,
			Overrides: []diff.PolicyOverride{
				{ContextPrefix: ir.Path{0}, Policy: diff.PolicyUnordered},
			},
		},
	})
	assert.False(t, scoped.HasChanges)
}
