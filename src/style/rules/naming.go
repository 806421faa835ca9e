package rules

import (
	"fmt"
	"strings"

	"github.com/lorenzwalthert/bonousus/src/parse"
	"github.com/lorenzwalthert/bonousus/src/style"
)

func init() {
	style.Register("object_naming", func() style.Rule { return &namingRule{} })
}

type namingConfig struct {
	// Builtins lists reserved and base-library names that assignments
	// must not shadow. It is configuration, never hard-coded here.
	Builtins []string `json:"builtins"`
}

type namingRule struct {
	cfg      namingConfig
	builtins map[string]bool
}

func (r *namingRule) Name() string                    { return "object_naming" }
func (r *namingRule) DefaultSeverity() style.Severity { return style.SeverityWarning }
func (r *namingRule) DefaultEnabled() bool            { return true }

// Configure implements style.ConfigurableRule.
func (r *namingRule) Configure(opts map[string]any) error {
	cfg := namingConfig{}
	if err := decodeOptions(r.Name(), opts, &cfg); err != nil {
		return err
	}
	r.cfg = cfg
	r.builtins = make(map[string]bool, len(cfg.Builtins))
	for _, b := range cfg.Builtins {
		r.builtins[b] = true
	}
	return nil
}

func (r *namingRule) Check(f *style.SourceFile) []style.Finding {
	if !style.IsRSource(f.Path) {
		return nil
	}
	var findings []style.Finding
	f.Tree.Walk(func(n *parse.Node) bool {
		if n.Kind != parse.Assignment && n.Kind != parse.Declaration {
			return true
		}
		if n.Target == "" || n.TargetTok < 0 {
			return true
		}
		tok := f.Tok(n.TargetTok)
		add := func(msg string) {
			findings = append(findings, style.Finding{
				Rule:     r.Name(),
				File:     f.Path,
				Line:     tok.Line,
				Col:      tok.Col,
				Severity: r.DefaultSeverity(),
				Message:  msg,
			})
		}
		name := n.Target
		if strings.Contains(name, ".") {
			add(fmt.Sprintf("name %q contains a dot; use underscores to separate words", name))
		} else if !isSnakeCase(name) {
			add(fmt.Sprintf("name %q is not lowercase snake_case", name))
		}
		if r.builtins[name] {
			add(fmt.Sprintf("name %q shadows a builtin", name))
		}
		return true
	})
	return findings
}

// isSnakeCase accepts lowercase letters, digits and underscores, with a
// letter first.
func isSnakeCase(name string) bool {
	for i, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch == '_' && i > 0:
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return len(name) > 0
}
