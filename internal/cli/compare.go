package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/confdiff/internal/configloader"
	"github.com/yaklabco/confdiff/internal/logging"
	"github.com/yaklabco/confdiff/internal/ui/pretty"
	"github.com/yaklabco/confdiff/pkg/config"
	"github.com/yaklabco/confdiff/pkg/dialect"
	"github.com/yaklabco/confdiff/pkg/diff"
	"github.com/yaklabco/confdiff/pkg/ir"
	"github.com/yaklabco/confdiff/pkg/reporter"
)

func runCompare(cmd *cobra.Command, args []string, flagCfg *config.Config, configPath, color string) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return err
	}
	if loaded.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldPath, loaded.LoadedFrom)
	}

	cfg := mergeFlags(loaded.Config, flagCfg, cmd)

	profile, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return err
	}
	opts, err := diffOptions(cfg)
	if err != nil {
		return err
	}

	leftPath, rightPath := args[0], args[1]
	leftText, err := os.ReadFile(leftPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", leftPath, err)
	}
	rightText, err := os.ReadFile(rightPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", rightPath, err)
	}

	logger.Debug("comparing",
		logging.FieldDialect, profile.Name,
		logging.FieldPolicy, string(opts.OrderPolicy.PolicyFor(nil)),
		logging.FieldSteps, len(opts.Steps),
	)

	left := ir.Parse(string(leftText), profile)
	left.Metadata.SourceName = leftPath
	right := ir.Parse(string(rightText), profile)
	right.Metadata.SourceName = rightPath

	result := diff.Documents(left, right, opts)
	logger.Debug("diff complete",
		logging.FieldEdits, len(result.Edits),
		logging.FieldLines, result.Stats.InsertedLines+result.Stats.DeletedLines,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     outputFormat(cfg),
		LeftLabel:  leftPath,
		RightLabel: rightPath,
		Dialect:    profile.Name,
	})
	if err != nil {
		return err
	}
	if err := rep.Report(&result); err != nil {
		return err
	}

	// The terminal summary goes to stderr so stdout stays deterministic.
	if !cfg.JSON && !cfg.PlanJSON {
		styles := pretty.NewStyles(pretty.ColorEnabled(color, os.Stderr))
		fmt.Fprint(os.Stderr, styles.FormatSummaryOneLine(&result))
	}

	return nil
}

// mergeFlags overlays explicitly-set CLI flags onto the file config.
func mergeFlags(base config.Config, flags *config.Config, cmd *cobra.Command) config.Config {
	out := base
	if cmd.Flags().Changed("dialect") {
		out.Dialect = flags.Dialect
	}
	if cmd.Flags().Changed("order-policy") {
		out.OrderPolicy = flags.OrderPolicy
	}
	if cmd.Flags().Changed("ignore-comments") {
		out.IgnoreComments = flags.IgnoreComments
	}
	if cmd.Flags().Changed("ignore-blank-lines") {
		out.IgnoreBlankLines = flags.IgnoreBlankLines
	}
	if cmd.Flags().Changed("normalize-whitespace") {
		out.NormalizeWhitespace = flags.NormalizeWhitespace
	}
	out.JSON = flags.JSON
	out.PlanJSON = flags.PlanJSON
	return out
}

// diffOptions translates CLI toggles into engine options.
func diffOptions(cfg config.Config) (diff.Options, error) {
	policy, err := diff.ParseOrderPolicy(cfg.OrderPolicy)
	if err != nil {
		return diff.Options{}, err
	}

	var steps []diff.Step
	if cfg.IgnoreComments {
		steps = append(steps, diff.StepIgnoreComments)
	}
	if cfg.IgnoreBlankLines {
		steps = append(steps, diff.StepIgnoreBlankLines)
	}
	if cfg.NormalizeWhitespace {
		steps = append(steps,
			diff.StepTrimTrailingWhitespace,
			diff.StepNormalizeLeadingWhitespace,
			diff.StepCollapseInternalWhitespace,
		)
	}

	return diff.Options{
		Steps:       steps,
		OrderPolicy: diff.OrderPolicyConfig{Default: policy},
	}, nil
}

// outputFormat picks the reporter format; plan JSON wins when both JSON
// flags are set.
func outputFormat(cfg config.Config) reporter.Format {
	switch {
	case cfg.PlanJSON:
		return reporter.FormatPlanJSON
	case cfg.JSON:
		return reporter.FormatJSON
	default:
		return reporter.FormatMarkdown
	}
}
