package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/confdiff/pkg/diff"
)

const bufWriterSize = 64 * 1024

// jsonReporter emits the Diff JSON contract:
// { has_changes, normalization_steps[], order_policy, edits[], findings[], stats }.
type jsonReporter struct {
	opts Options
}

func (r *jsonReporter) Report(d *diff.Diff) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("encode diff JSON: %w", err)
	}
	return nil
}

// planJSONReporter derives the plan from the diff and emits the Plan JSON
// contract: { version, actions[], findings[] }.
type planJSONReporter struct {
	opts Options
}

func (r *planJSONReporter) Report(d *diff.Diff) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	plan := diff.BuildPlan(d)

	encoder := json.NewEncoder(bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("encode plan JSON: %w", err)
	}
	return nil
}
