package rules

import (
	"github.com/lorenzwalthert/bonousus/src/parse"
	"github.com/lorenzwalthert/bonousus/src/style"
)

func init() {
	style.Register("assignment_operator", func() style.Rule { return &assignmentRule{} })
}

type assignmentConfig struct {
	// FlagRightAssign also reports -> and ->> when set.
	FlagRightAssign bool `json:"flag_right_assign"`
	// FlagSuperAssign also reports <<- when set.
	FlagSuperAssign bool `json:"flag_super_assign"`
}

// assignmentRule flags `=` used for assignment. Named arguments inside
// calls never produce Assignment nodes, so the structural tree already
// separates the two contexts; no token lookahead is involved.
type assignmentRule struct {
	cfg assignmentConfig
}

func (r *assignmentRule) Name() string                    { return "assignment_operator" }
func (r *assignmentRule) DefaultSeverity() style.Severity { return style.SeverityWarning }
func (r *assignmentRule) DefaultEnabled() bool            { return true }

// Configure implements style.ConfigurableRule.
func (r *assignmentRule) Configure(opts map[string]any) error {
	cfg := assignmentConfig{}
	if err := decodeOptions(r.Name(), opts, &cfg); err != nil {
		return err
	}
	r.cfg = cfg
	return nil
}

func (r *assignmentRule) Check(f *style.SourceFile) []style.Finding {
	if !style.IsRSource(f.Path) {
		return nil
	}
	var findings []style.Finding
	f.Tree.Walk(func(n *parse.Node) bool {
		if n.Kind != parse.Assignment && n.Kind != parse.Declaration {
			return true
		}
		var msg string
		switch n.Op {
		case "=":
			msg = "use <-, not =, for assignment"
		case "->", "->>":
			if r.cfg.FlagRightAssign {
				msg = "avoid right assignment (" + n.Op + ")"
			}
		case "<<-":
			if r.cfg.FlagSuperAssign {
				msg = "avoid <<-; it modifies an enclosing environment"
			}
		}
		if msg == "" {
			return true
		}
		tok := f.Tok(n.OpTok)
		findings = append(findings, style.Finding{
			Rule:     r.Name(),
			File:     f.Path,
			Line:     tok.Line,
			Col:      tok.Col,
			Severity: r.DefaultSeverity(),
			Message:  msg,
		})
		return true
	})
	return findings
}
