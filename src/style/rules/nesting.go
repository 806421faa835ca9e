package rules

import (
	"fmt"

	"github.com/lorenzwalthert/bonousus/src/parse"
	"github.com/lorenzwalthert/bonousus/src/style"
)

const defaultMaxNesting = 3

func init() {
	style.Register("nesting_depth", func() style.Rule {
		return &nestingRule{cfg: nestingConfig{Max: defaultMaxNesting}}
	})
}

type nestingConfig struct {
	Max int `json:"max"`
}

type nestingRule struct {
	cfg nestingConfig
}

func (r *nestingRule) Name() string                    { return "nesting_depth" }
func (r *nestingRule) DefaultSeverity() style.Severity { return style.SeverityWarning }
func (r *nestingRule) DefaultEnabled() bool            { return true }

// Configure implements style.ConfigurableRule.
func (r *nestingRule) Configure(opts map[string]any) error {
	cfg := nestingConfig{Max: defaultMaxNesting}
	if err := decodeOptions(r.Name(), opts, &cfg); err != nil {
		return err
	}
	if cfg.Max <= 0 {
		return fmt.Errorf("nesting_depth: max must be positive, got %d", cfg.Max)
	}
	r.cfg = cfg
	return nil
}

// Check reports each block or conditional nested deeper than the
// configured maximum: one finding per offending node, at its opening
// token, regardless of how many lines it spans.
func (r *nestingRule) Check(f *style.SourceFile) []style.Finding {
	if !style.IsRSource(f.Path) {
		return nil
	}
	var findings []style.Finding
	f.Tree.Walk(func(n *parse.Node) bool {
		if n.Kind != parse.Block && n.Kind != parse.Conditional {
			return true
		}
		level := n.Depth + 1 // the node itself is a nesting level
		if level <= r.cfg.Max {
			return true
		}
		tok := f.Tok(n.Start)
		findings = append(findings, style.Finding{
			Rule:     r.Name(),
			File:     f.Path,
			Line:     tok.Line,
			Col:      tok.Col,
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("nesting level %d exceeds maximum %d", level, r.cfg.Max),
		})
		return true
	})
	return findings
}
