package rules

import (
	"fmt"
	"strings"

	"github.com/lorenzwalthert/bonousus/src/style"
	"github.com/lorenzwalthert/bonousus/src/token"
)

func init() {
	style.Register("quote_style", func() style.Rule { return &quoteRule{preferred: `"`} })
}

type quoteConfig struct {
	// Preferred is the quote character string literals should use.
	Preferred string `json:"preferred"`
}

type quoteRule struct {
	preferred string
}

func (r *quoteRule) Name() string                    { return "quote_style" }
func (r *quoteRule) DefaultSeverity() style.Severity { return style.SeverityInfo }
func (r *quoteRule) DefaultEnabled() bool            { return true }

// Configure implements style.ConfigurableRule.
func (r *quoteRule) Configure(opts map[string]any) error {
	cfg := quoteConfig{Preferred: `"`}
	if err := decodeOptions(r.Name(), opts, &cfg); err != nil {
		return err
	}
	if cfg.Preferred != `"` && cfg.Preferred != "'" {
		return fmt.Errorf("quote_style: preferred must be %q or %q, got %q", `"`, "'", cfg.Preferred)
	}
	r.preferred = cfg.Preferred
	return nil
}

func (r *quoteRule) Check(f *style.SourceFile) []style.Finding {
	if !style.IsRSource(f.Path) {
		return nil
	}
	alternate := "'"
	if r.preferred == "'" {
		alternate = `"`
	}

	var findings []style.Finding
	for _, t := range f.Tokens {
		if t.Kind != token.String || len(t.Text) < 2 {
			continue
		}
		if string(t.Text[0]) == r.preferred {
			continue
		}
		content := t.Text[1 : len(t.Text)-1]
		// Switching quotes would force escaping: leave the literal be.
		if strings.Contains(content, r.preferred) && !strings.Contains(content, alternate) {
			continue
		}
		findings = append(findings, style.Finding{
			Rule:     r.Name(),
			File:     f.Path,
			Line:     t.Line,
			Col:      t.Col,
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("use %s quotes for string literals", quoteName(r.preferred)),
		})
	}
	return findings
}

func quoteName(q string) string {
	if q == `"` {
		return "double"
	}
	return "single"
}
