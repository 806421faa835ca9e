package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/lorenzwalthert/bonousus/src/version"
)

var severityNames = map[string]bool{
	"info":    true,
	"warning": true,
	"error":   true,
}

// Validate checks structural config invariants that must hold before any
// analysis starts: severity names, job counts and the version gate.
func (c *Config) Validate() error {
	if c.Style.Jobs < 0 {
		return fmt.Errorf("style.jobs must be non-negative, got %d", c.Style.Jobs)
	}
	if c.Style.FailOn != "" && !severityNames[c.Style.FailOn] {
		return fmt.Errorf("style.fail_on: unknown severity %q", c.Style.FailOn)
	}
	for name, rc := range c.Style.Rules {
		if rc.Severity != "" && !severityNames[rc.Severity] {
			return fmt.Errorf("style.rules.%s: unknown severity %q", name, rc.Severity)
		}
	}
	return c.checkRequires()
}

// checkRequires enforces the `requires` semver constraint against the
// running version. Development builds ("dev") always pass.
func (c *Config) checkRequires() error {
	if c.Requires == "" || version.Version == "dev" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("requires: invalid constraint %q: %w", c.Requires, err)
	}
	current, err := semver.NewVersion(version.Version)
	if err != nil {
		return nil // unparsable build version: don't block the run
	}
	if !constraint.Check(current) {
		return fmt.Errorf("requires: config needs bonousus %s, running %s", c.Requires, version.Version)
	}
	return nil
}
