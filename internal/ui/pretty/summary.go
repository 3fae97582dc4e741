package pretty

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/confdiff/pkg/diff"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats diff statistics as a single line.
// Example: "3 edits (1 insert(s), 1 delete(s), 1 replace(s)), 2 findings".
func (s *Styles) FormatSummaryOneLine(d *diff.Diff) string {
	if !d.HasChanges {
		msg := s.Success.Render("No drift detected")
		if len(d.Findings) > 0 {
			msg += s.Dim.Render(fmt.Sprintf(" (%d findings)", len(d.Findings)))
		}
		return msg + "\n"
	}

	stats := d.Stats
	total := stats.Inserts + stats.Deletes + stats.Replaces
	editWord := "edits"
	if total == 1 {
		editWord = "edit"
	}

	var kinds []string
	if stats.Inserts > 0 {
		kinds = append(kinds, s.Add.Render(fmt.Sprintf("%d insert(s)", stats.Inserts)))
	}
	if stats.Deletes > 0 {
		kinds = append(kinds, s.Remove.Render(fmt.Sprintf("%d delete(s)", stats.Deletes)))
	}
	if stats.Replaces > 0 {
		kinds = append(kinds, s.Warning.Render(fmt.Sprintf("%d replace(s)", stats.Replaces)))
	}

	msg := fmt.Sprintf("%s (%s)", s.Failure.Render(fmt.Sprintf("%d %s", total, editWord)),
		strings.Join(kinds, ", "))
	if len(d.Findings) > 0 {
		msg += ", " + s.Warning.Render(fmt.Sprintf("%d findings", len(d.Findings)))
	}
	return msg + "\n"
}

// FormatSummary formats diff statistics as a block.
func (s *Styles) FormatSummary(d *diff.Diff) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.Title.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", dividerWidth()))
	builder.WriteString("\n")

	builder.WriteString("  Inserts:  " + s.Value.Render(fmt.Sprintf("%d (%d lines)",
		d.Stats.Inserts, d.Stats.InsertedLines)) + "\n")
	builder.WriteString("  Deletes:  " + s.Value.Render(fmt.Sprintf("%d (%d lines)",
		d.Stats.Deletes, d.Stats.DeletedLines)) + "\n")
	builder.WriteString("  Replaces: " + s.Value.Render(fmt.Sprintf("%d (%d -> %d lines)",
		d.Stats.Replaces, d.Stats.ReplacedLeftLines, d.Stats.ReplacedRightLines)) + "\n")
	builder.WriteString("  Findings: " + s.Value.Render(fmt.Sprintf("%d", len(d.Findings))) + "\n")

	return builder.String()
}

// dividerWidth caps the divider at the terminal width when stderr is a
// terminal.
func dividerWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 || width > summaryDividerWidth {
		return summaryDividerWidth
	}
	return width
}
