package config

// RuleConfig holds per-rule overrides. A nil Enabled keeps the rule's
// default; Severity overrides the rule's default severity when set.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Severity string         `yaml:"severity,omitempty" toml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// StyleConfig holds the analysis configuration.
type StyleConfig struct {
	// Exclude lists glob patterns (with ** support) for paths to skip.
	Exclude []string `yaml:"exclude" toml:"exclude"`
	// Jobs bounds parallel file analysis; 0 means NumCPU*2.
	Jobs int `yaml:"jobs" toml:"jobs"`
	// FailOn is the lowest severity that fails the run (exit code).
	FailOn string `yaml:"fail_on" toml:"fail_on"`
	// TargetBranch is the baseline for --changed runs.
	TargetBranch string `yaml:"target_branch" toml:"target_branch"`
	// CacheDir overrides the finding-cache location.
	CacheDir string `yaml:"cache_dir" toml:"cache_dir"`
	// Rules maps rule names to their overrides.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`
}

// DefaultStyleConfig returns production defaults.
func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		Exclude: []string{},
		FailOn:  "error",
		Rules:   map[string]RuleConfig{},
	}
}
