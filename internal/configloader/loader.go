// Package configloader discovers and loads the optional
// .config-diff.yaml file providing defaults for CLI flags.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/confdiff/pkg/config"
)

// FileName is the config file discovered in the working directory.
const FileName = ".config-diff.yaml"

// LoadOptions control config loading.
type LoadOptions struct {
	// WorkingDir is searched for FileName when ExplicitPath is empty.
	WorkingDir string

	// ExplicitPath, when set, must exist and parse.
	ExplicitPath string
}

// Result carries the loaded configuration and its provenance.
type Result struct {
	Config config.Config

	// LoadedFrom is the path of the file that contributed values, empty
	// when only built-in defaults apply.
	LoadedFrom string
}

// Load resolves the effective file configuration. A missing discovered
// file is not an error; a missing explicit file is.
func Load(opts LoadOptions) (Result, error) {
	result := Result{Config: config.Default()}

	path := opts.ExplicitPath
	if path == "" {
		if opts.WorkingDir == "" {
			return result, nil
		}
		path = filepath.Join(opts.WorkingDir, FileName)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("read config file: %w", err)
	}

	var fileCfg config.Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return result, fmt.Errorf("parse %s: %w", path, err)
	}

	merge(&result.Config, fileCfg)
	result.LoadedFrom = path
	return result, nil
}

// merge overlays non-zero file values onto the defaults.
func merge(dst *config.Config, src config.Config) {
	if src.Dialect != "" {
		dst.Dialect = src.Dialect
	}
	if src.OrderPolicy != "" {
		dst.OrderPolicy = src.OrderPolicy
	}
	if src.IgnoreComments {
		dst.IgnoreComments = true
	}
	if src.IgnoreBlankLines {
		dst.IgnoreBlankLines = true
	}
	if src.NormalizeWhitespace {
		dst.NormalizeWhitespace = true
	}
}
