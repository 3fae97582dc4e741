// Package main is the entry point for the config-diff CLI.
package main

import (
	"os"

	"github.com/yaklabco/confdiff/internal/cli"
	"github.com/yaklabco/confdiff/internal/logging"
)

// Build-time variables set by the release pipeline via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
		return cli.ExitUsageError
	}

	return cli.ExitSuccess
}
