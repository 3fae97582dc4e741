// Package cli provides the Cobra command structure for config-diff.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/confdiff/internal/logging"
	"github.com/yaklabco/confdiff/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the config-diff root command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "config-diff [OPTIONS] <FILE_A> <FILE_B>",
		Short: "Compare two device configuration files and report drift",
		Long: `config-diff parses vendor network-device configuration text into a
lossless tree and computes a deterministic structural diff with a
transport-neutral change plan.

Drift is reported in the output, never in the exit code: the command
exits 0 whether or not the files differ, and 2 on I/O or argument
errors.

Examples:
  config-diff intended.cfg actual.cfg
  config-diff --dialect junos --order-policy keyed-stable a.conf b.conf
  config-diff --ignore-comments --json a.cfg b.cfg
  config-diff --plan-json a.cfg b.cfg`,
		Args: cobra.ExactArgs(2),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, &cfg, configPath, color)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize the terminal summary: auto, always, never")

	rootCmd.Flags().StringVar(&cfg.Dialect, "dialect", cfg.Dialect,
		"parser profile: generic, eos, iosxe, junos")
	rootCmd.Flags().StringVar(&cfg.OrderPolicy, "order-policy", cfg.OrderPolicy,
		"sibling ordering policy: ordered, unordered, keyed-stable")
	rootCmd.Flags().BoolVar(&cfg.IgnoreComments, "ignore-comments", false,
		"drop comment lines from the comparison")
	rootCmd.Flags().BoolVar(&cfg.IgnoreBlankLines, "ignore-blank-lines", false,
		"drop blank lines from the comparison")
	rootCmd.Flags().BoolVar(&cfg.NormalizeWhitespace, "normalize-whitespace", false,
		"normalize trailing, leading, and internal whitespace before comparing")
	rootCmd.Flags().BoolVar(&cfg.JSON, "json", false,
		"emit diff JSON instead of the Markdown report")
	rootCmd.Flags().BoolVar(&cfg.PlanJSON, "plan-json", false,
		"emit plan JSON instead of the Markdown report")

	rootCmd.AddCommand(newVersionCommand(info))

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	return rootCmd
}
