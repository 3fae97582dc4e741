// Package reporter formats diff and plan results as Markdown or JSON.
// Output is deterministic: identical inputs produce identical bytes.
package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/confdiff/pkg/diff"
)

// Format selects the output representation.
type Format string

const (
	// FormatMarkdown is the human-oriented drift report.
	FormatMarkdown Format = "markdown"

	// FormatJSON emits the Diff JSON contract.
	FormatJSON Format = "json"

	// FormatPlanJSON emits the Plan JSON contract.
	FormatPlanJSON Format = "plan-json"
)

// IsValid reports whether the format is one of the supported values.
func (f Format) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatJSON, FormatPlanJSON:
		return true
	default:
		return false
	}
}

// Options configure a Reporter.
type Options struct {
	// Writer receives the output. Defaults to stdout.
	Writer io.Writer

	// Format selects the renderer. Defaults to Markdown.
	Format Format

	// LeftLabel and RightLabel name the compared inputs (file paths).
	LeftLabel  string
	RightLabel string

	// Dialect is echoed in the Markdown header.
	Dialect string
}

// Reporter writes a formatted representation of a diff result.
type Reporter interface {
	// Report writes the formatted diff and returns any write error.
	Report(d *diff.Diff) error
}

// New creates a Reporter for the given options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	format := opts.Format
	if format == "" {
		format = FormatMarkdown
	}

	switch format {
	case FormatMarkdown:
		return &markdownReporter{opts: opts}, nil
	case FormatJSON:
		return &jsonReporter{opts: opts}, nil
	case FormatPlanJSON:
		return &planJSONReporter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
