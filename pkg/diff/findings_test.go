package diff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/confdiff/pkg/dialect"
	"github.com/yaklabco/confdiff/pkg/diff"
	"github.com/yaklabco/confdiff/pkg/ir"
)

// strictProfile rejects lines starting with "%" so tests can exercise
// unknown-construct handling.
func strictProfile() ir.Profile {
	profile := dialect.Generic()
	base := profile.Tokenize
	profile.Tokenize = func(raw string) (ir.ParsedLine, bool) {
		if strings.HasPrefix(strings.TrimSpace(raw), "%") {
			return ir.ParsedLine{}, false
		}
		return base(raw)
	}
	return profile
}

func TestFindingsUnknownConstruct(t *testing.T) {
	t.Parallel()

	input := "hostname sw-1\n%vendor-blob 42\n"
	a := ir.Parse(input, strictProfile())
	b := ir.Parse(input, strictProfile())

	result := diff.Documents(a, b, diff.Options{})

	// Identical inputs: no edits, but one finding per input location.
	assert.False(t, result.HasChanges)
	var unknown []diff.Finding
	for _, finding := range result.Findings {
		if finding.Code == diff.FindingUnknownConstruct {
			unknown = append(unknown, finding)
		}
	}
	require.Len(t, unknown, 2)
	assert.Contains(t, unknown[0].Message, "left")
	assert.Contains(t, unknown[1].Message, "right")
	assert.Equal(t, ir.Path{1}, unknown[0].Path)
	assert.Equal(t, ir.Path{1}, unknown[1].Path)
}

func TestFindingsAmbiguousKeyMatch(t *testing.T) {
	t.Parallel()

	// Ethernet2 exists only on the left; keyed-stable must flag it.
	a := ir.Parse("interface Ethernet1\n   mtu 9214\ninterface Ethernet2\n   mtu 1500\n", dialect.EOS())
	b := ir.Parse("interface Ethernet1\n   mtu 9214\n", dialect.EOS())

	result := diff.Documents(a, b, diff.Options{
		OrderPolicy: diff.OrderPolicyConfig{Default: diff.PolicyKeyedStable},
	})

	var ambiguous []diff.Finding
	for _, finding := range result.Findings {
		if finding.Code == diff.FindingAmbiguousKeyMatch {
			ambiguous = append(ambiguous, finding)
		}
	}
	require.Len(t, ambiguous, 1)
	assert.Contains(t, ambiguous[0].Message, "interface:Ethernet2")
	assert.Equal(t, diff.LevelWarning, ambiguous[0].Level)
}

func TestFindingsUnreliableRegion(t *testing.T) {
	t.Parallel()

	// A block whose header cannot be tokenized and whose children
	// changed is semantically suspect.
	left := "%opaque-section 1\n  member a\n"
	right := "%opaque-section 1\n  member b\n"
	a := ir.Parse(left, strictProfile())
	b := ir.Parse(right, strictProfile())

	result := diff.Documents(a, b, diff.Options{})

	require.True(t, result.HasChanges)
	var unreliable []diff.Finding
	for _, finding := range result.Findings {
		if finding.Code == diff.FindingUnreliableRegion {
			unreliable = append(unreliable, finding)
		}
	}
	require.Len(t, unreliable, 1)
	assert.Equal(t, ir.Path{0}, unreliable[0].Path)
}

func TestFindingsParseUncertaintyPropagates(t *testing.T) {
	t.Parallel()

	a := ir.Parse("interface Ethernet1\n \tmtu 9214\n", dialect.Generic())
	b := ir.Parse("interface Ethernet1\n \tmtu 9214\n", dialect.Generic())

	result := diff.Documents(a, b, diff.Options{})

	var notes []diff.Finding
	for _, finding := range result.Findings {
		if strings.Contains(finding.Message, "mixed-leading-whitespace") {
			notes = append(notes, finding)
		}
	}
	require.Len(t, notes, 2)
	assert.Equal(t, diff.FindingUnknownConstruct, notes[0].Code)
	assert.Equal(t, diff.LevelInfo, notes[0].Level)
}

func TestFindingsOrderedLeftThenRight(t *testing.T) {
	t.Parallel()

	a := ir.Parse("%one\n%two\n", strictProfile())
	b := ir.Parse("%three\n", strictProfile())

	result := diff.Documents(a, b, diff.Options{})

	var sides []string
	for _, finding := range result.Findings {
		if finding.Code != diff.FindingUnknownConstruct {
			continue
		}
		if strings.Contains(finding.Message, "left") {
			sides = append(sides, "left")
		} else {
			sides = append(sides, "right")
		}
	}
	assert.Equal(t, []string{"left", "left", "right"}, sides)
}
