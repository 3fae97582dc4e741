package diff_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/confdiff/pkg/diff"
	"github.com/yaklabco/confdiff/pkg/ir"
)

func TestBuildPlanEmptyDiff(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "hostname sw-1\n")
	b := parseGeneric(t, "hostname sw-1\n")
	result := diff.Documents(a, b, diff.Options{})

	plan := diff.BuildPlan(&result)
	assert.Equal(t, diff.PlanVersion, plan.Version)
	assert.Empty(t, plan.Actions)
	assert.Empty(t, plan.Findings)
}

func TestBuildPlanReplaceBlockWhenAllChildrenChange(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "interface Ethernet1\n  description old\n  mtu 1500\n")
	b := parseGeneric(t, "interface Ethernet1\n  description new\n  mtu 9000\n")

	result := diff.Documents(a, b, diff.Options{})
	plan := diff.BuildPlan(&result)

	require.Len(t, plan.Actions, 1)
	action := plan.Actions[0]
	assert.Equal(t, diff.ActionReplaceBlock, action.Kind)
	assert.Equal(t, ir.Path{0}, action.Path)
	assert.Equal(t, "  description new\n  mtu 9000", action.NewBlockText)
}

func TestBuildPlanLineEditsWhenPartialChange(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "interface Ethernet1\n  description old\n  mtu 9214\n")
	b := parseGeneric(t, "interface Ethernet1\n  description new\n  mtu 9214\n")

	result := diff.Documents(a, b, diff.Options{})
	plan := diff.BuildPlan(&result)

	require.Len(t, plan.Actions, 1)
	action := plan.Actions[0]
	assert.Equal(t, diff.ActionLineEdits, action.Kind)
	assert.Equal(t, ir.Path{0}, action.ParentPath)
	require.Len(t, action.Edits, 1)
	assert.Equal(t, diff.EditReplace, action.Edits[0].Kind)
}

func TestBuildPlanOrdersActionsByParentPreorder(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "groupA\n  member one\n  member two\ngroupB\n  item x\n  item y\n")
	b := parseGeneric(t, "groupA\n  member one\n  member three\ngroupB\n  item z\n  item w\n")

	result := diff.Documents(a, b, diff.Options{})
	plan := diff.BuildPlan(&result)

	require.Len(t, plan.Actions, 2)
	// groupA changed partially, groupB completely.
	assert.Equal(t, diff.ActionLineEdits, plan.Actions[0].Kind)
	assert.Equal(t, ir.Path{0}, plan.Actions[0].ParentPath)
	assert.Equal(t, diff.ActionReplaceBlock, plan.Actions[1].Kind)
	assert.Equal(t, ir.Path{1}, plan.Actions[1].Path)
}

func TestBuildPlanRootLevelEdits(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "hostname old\nvlan 10\n")
	b := parseGeneric(t, "hostname new\nvlan 10\n")

	result := diff.Documents(a, b, diff.Options{})
	plan := diff.BuildPlan(&result)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, diff.ActionLineEdits, plan.Actions[0].Kind)
	assert.Empty(t, plan.Actions[0].ParentPath)
}

func TestPlanJSONShape(t *testing.T) {
	t.Parallel()

	a := parseGeneric(t, "interface Ethernet1\n  description old\n  mtu 1500\n")
	b := parseGeneric(t, "interface Ethernet1\n  description new\n  mtu 9000\n")

	result := diff.Documents(a, b, diff.Options{})
	plan := diff.BuildPlan(&result)

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "actions")

	actions, ok := decoded["actions"].([]any)
	require.True(t, ok)
	require.Len(t, actions, 1)
	action, ok := actions[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "replace_block", action["kind"])
	assert.Contains(t, action, "path")
	assert.Contains(t, action, "new_block_text")
	assert.NotContains(t, action, "parent_path")
}
