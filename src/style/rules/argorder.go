package rules

import (
	"fmt"

	"github.com/lorenzwalthert/bonousus/src/parse"
	"github.com/lorenzwalthert/bonousus/src/style"
)

func init() {
	style.Register("argument_order", func() style.Rule { return &argOrderRule{} })
}

type argOrderConfig struct {
	// Signatures maps a callee name to its parameter order. Calls to
	// functions not listed here are skipped entirely: an unknown callee
	// is never a violation.
	Signatures map[string][]string `json:"signatures"`
}

type argOrderRule struct {
	cfg argOrderConfig
}

func (r *argOrderRule) Name() string                    { return "argument_order" }
func (r *argOrderRule) DefaultSeverity() style.Severity { return style.SeverityWarning }
func (r *argOrderRule) DefaultEnabled() bool            { return true }

// Configure implements style.ConfigurableRule.
func (r *argOrderRule) Configure(opts map[string]any) error {
	cfg := argOrderConfig{}
	if err := decodeOptions(r.Name(), opts, &cfg); err != nil {
		return err
	}
	r.cfg = cfg
	return nil
}

func (r *argOrderRule) Check(f *style.SourceFile) []style.Finding {
	if len(r.cfg.Signatures) == 0 || !style.IsRSource(f.Path) {
		return nil
	}
	var findings []style.Finding
	f.Tree.Walk(func(n *parse.Node) bool {
		if n.Kind != parse.Call || n.Callee == "" {
			return true
		}
		params, known := r.cfg.Signatures[n.Callee]
		if !known {
			return true
		}
		args := callArgs(n)
		if args == nil {
			return true
		}
		findings = append(findings, r.checkCall(f, n, args, params)...)
		return true
	})
	return findings
}

// callArgs returns the call's own argument list (its first ArgList
// child), not those of nested calls.
func callArgs(call *parse.Node) *parse.Node {
	for _, c := range call.Children {
		if c.Kind == parse.ArgList {
			return c
		}
	}
	return nil
}

func (r *argOrderRule) checkCall(f *style.SourceFile, call, args *parse.Node, params []string) []style.Finding {
	var findings []style.Finding
	tok := f.Tok(call.Start)
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

	positional := 0
	sawNamed := false
	badShape := false
	var named []string
	for _, a := range args.Args {
		switch {
		case a.Empty:
			add(fmt.Sprintf("call to %s() leaves an argument empty", call.Callee))
		case a.Name != "":
			sawNamed = true
			named = append(named, a.Name)
		default:
			if sawNamed {
				badShape = true
			} else {
				positional++
			}
		}
	}
	if badShape {
		add(fmt.Sprintf("call to %s() has a positional argument after a named one", call.Callee))
		return findings
	}

	// The named arguments must be a suffix of the parameter order: each
	// name must sit in the remainder after positional matching, in the
	// same relative order.
	if positional > len(params) {
		return findings // extra positionals are not this rule's business
	}
	remaining := params[positional:]
	pos := 0
	for _, name := range named {
		found := -1
		for i := pos; i < len(remaining); i++ {
			if remaining[i] == name {
				found = i
				break
			}
		}
		if found < 0 {
			add(fmt.Sprintf("named arguments of %s() are not a suffix of its parameter order", call.Callee))
			return findings
		}
		pos = found + 1
	}
	return findings
}
