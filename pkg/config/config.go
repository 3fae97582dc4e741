// Package config defines the CLI-level configuration types for
// config-diff. These are pure data structures; file loading lives in
// internal/configloader and semantic options in pkg/diff.
package config

// Config is the effective run configuration after merging the config
// file (if any) with CLI flags. CLI flags win.
type Config struct {
	// Dialect selects the parser profile: generic, eos, iosxe, junos.
	Dialect string `yaml:"dialect"`

	// OrderPolicy selects sibling ordering: ordered, unordered,
	// keyed-stable.
	OrderPolicy string `yaml:"order_policy"`

	// Normalization toggles.
	IgnoreComments      bool `yaml:"ignore_comments"`
	IgnoreBlankLines    bool `yaml:"ignore_blank_lines"`
	NormalizeWhitespace bool `yaml:"normalize_whitespace"`

	// Output selection (not persisted to config files).
	JSON     bool `yaml:"-"`
	PlanJSON bool `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dialect:     "generic",
		OrderPolicy: "ordered",
	}
}
