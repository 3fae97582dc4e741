package reporter

import (
	"bufio"
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/yaklabco/confdiff/pkg/diff"
)

// markdownReporter renders the human-oriented drift report: header with
// the compared files and echoed options, stats, per-edit blocks with
// anchors and a unified-style view, then findings.
type markdownReporter struct {
	opts Options
}

func (r *markdownReporter) Report(d *diff.Diff) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprintf(bw, "# Config Diff Report\n\n")
	fmt.Fprintf(bw, "- Left: `%s`\n", r.opts.LeftLabel)
	fmt.Fprintf(bw, "- Right: `%s`\n", r.opts.RightLabel)
	if r.opts.Dialect != "" {
		fmt.Fprintf(bw, "- Dialect: `%s`\n", r.opts.Dialect)
	}
	policyJSON, jerr := d.OrderPolicy.MarshalJSON()
	if jerr != nil {
		return fmt.Errorf("render order policy: %w", jerr)
	}
	fmt.Fprintf(bw, "- Order policy: `%s`\n", strings.Trim(string(policyJSON), "\""))
	fmt.Fprintf(bw, "- Normalization: %s\n\n", stepList(d.NormalizationSteps))

	fmt.Fprintf(bw, "## Stats\n\n")
	fmt.Fprintf(bw, "- Inserts: %d (%d lines)\n", d.Stats.Inserts, d.Stats.InsertedLines)
	fmt.Fprintf(bw, "- Deletes: %d (%d lines)\n", d.Stats.Deletes, d.Stats.DeletedLines)
	fmt.Fprintf(bw, "- Replaces: %d (%d -> %d lines)\n\n",
		d.Stats.Replaces, d.Stats.ReplacedLeftLines, d.Stats.ReplacedRightLines)

	fmt.Fprintf(bw, "## Edits\n\n")
	if len(d.Edits) == 0 {
		fmt.Fprintf(bw, "No changes detected.\n")
	}
	for idx, edit := range d.Edits {
		fmt.Fprintf(bw, "%d. %s\n\n", idx+1, describeEdit(edit))

		unified, derr := unifiedView(r.opts.LeftLabel, r.opts.RightLabel, edit)
		if derr != nil {
			return fmt.Errorf("render edit %d: %w", idx+1, derr)
		}
		fmt.Fprintf(bw, "```diff\n%s```\n\n", unified)
	}

	if len(d.Findings) > 0 {
		fmt.Fprintf(bw, "## Findings\n\n")
		for _, finding := range d.Findings {
			fmt.Fprintf(bw, "- %s [%s]: %s\n", finding.Level, finding.Code, finding.Message)
		}
	}

	return nil
}

func stepList(steps []diff.Step) string {
	if len(steps) == 0 {
		return "none"
	}
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = string(step)
	}
	return strings.Join(names, ", ")
}

func describeEdit(edit diff.Edit) string {
	switch edit.Kind {
	case diff.EditInsert:
		return fmt.Sprintf("insert %d line(s) at %s",
			len(edit.RightLines), anchorLabel(edit.RightAnchor))
	case diff.EditDelete:
		return fmt.Sprintf("delete %d line(s) at %s",
			len(edit.LeftLines), anchorLabel(edit.LeftAnchor))
	default:
		return fmt.Sprintf("replace %d line(s) at %s with %d line(s) at %s",
			len(edit.LeftLines), anchorLabel(edit.LeftAnchor),
			len(edit.RightLines), anchorLabel(edit.RightAnchor))
	}
}

func anchorLabel(anchor *diff.Anchor) string {
	if anchor == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s (line %d)", anchor.Path, anchor.Span.Line)
}

// unifiedView renders one grouped edit as a unified diff hunk via
// sourcegraph/go-diff.
func unifiedView(leftLabel, rightLabel string, edit diff.Edit) (string, error) {
	var body strings.Builder
	for _, line := range edit.LeftLines {
		body.WriteString("-" + line.Original + "\n")
	}
	for _, line := range edit.RightLines {
		body.WriteString("+" + line.Original + "\n")
	}

	hunk := &godiff.Hunk{
		OrigStartLine: anchorStart(edit.LeftAnchor),
		OrigLines:     int32(len(edit.LeftLines)),
		NewStartLine:  anchorStart(edit.RightAnchor),
		NewLines:      int32(len(edit.RightLines)),
		Body:          []byte(body.String()),
	}
	fileDiff := &godiff.FileDiff{
		OrigName: leftLabel,
		NewName:  rightLabel,
		Hunks:    []*godiff.Hunk{hunk},
	}

	out, err := godiff.PrintFileDiff(fileDiff)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func anchorStart(anchor *diff.Anchor) int32 {
	if anchor == nil {
		return 0
	}
	return int32(anchor.Span.Line)
}
