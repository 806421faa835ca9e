package rules

import (
	"fmt"
	"strings"

	"github.com/lorenzwalthert/bonousus/src/style"
	"github.com/lorenzwalthert/bonousus/src/token"
)

func init() {
	style.Register("indentation", func() style.Rule { return &indentRule{} })
}

// indentRule checks two things: that a file sticks to the indentation
// unit (tabs or spaces) its first indented line establishes, and that
// the indent step between nesting levels stays constant once
// established. Mismatches are findings, never engine errors.
type indentRule struct{}

func (r *indentRule) Name() string                    { return "indentation" }
func (r *indentRule) DefaultSeverity() style.Severity { return style.SeverityInfo }
func (r *indentRule) DefaultEnabled() bool            { return true }

func (r *indentRule) Check(f *style.SourceFile) []style.Finding {
	if !style.IsRSource(f.Path) {
		return nil
	}
	var findings []style.Finding
	add := func(line int, msg string) {
		findings = append(findings, style.Finding{
			Rule:     r.Name(),
			File:     f.Path,
			Line:     line,
			Col:      1,
			Severity: r.DefaultSeverity(),
			Message:  msg,
		})
	}

	var unit byte // 0 until the first indented line establishes it
	prevWidth := 0
	step := 0
	cont := continuationLines(f)

	for i, line := range f.Lines() {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Continuation lines of an unfinished statement (inside an open
		// paren or bracket, or after a trailing operator or comma) align
		// freely; they neither establish nor violate the unit or step.
		if cont[i+1] {
			continue
		}
		ws := leadingWhitespace(line)
		if ws == "" {
			prevWidth = 0
			continue
		}
		lineNo := i + 1

		hasTab := strings.ContainsRune(ws, '\t')
		hasSpace := strings.ContainsRune(ws, ' ')
		if unit == 0 {
			unit = ws[0]
		}
		switch {
		case hasTab && hasSpace:
			add(lineNo, "line mixes tabs and spaces in its indentation")
			prevWidth = len(ws)
			continue
		case unit == ' ' && hasTab:
			add(lineNo, "line is indented with tabs; this file is indented with spaces")
			prevWidth = len(ws)
			continue
		case unit == '\t' && hasSpace:
			add(lineNo, "line is indented with spaces; this file is indented with tabs")
			prevWidth = len(ws)
			continue
		}

		width := len(ws)
		if width > prevWidth {
			delta := width - prevWidth
			if step == 0 {
				step = delta
			} else if delta != step {
				add(lineNo, fmt.Sprintf("indent increases by %d; this file's indent step is %d", delta, step))
			}
		}
		prevWidth = width
	}
	return findings
}

// continuationLines marks lines that continue the statement begun on an
// earlier line: the line starts inside an open paren or bracket, or the
// last significant token before it is an operator or comma. Braces do
// not count; their contents are statements in their own right.
func continuationLines(f *style.SourceFile) map[int]bool {
	cont := map[int]bool{}
	depth := 0
	var last token.Token
	haveLast := false
	for _, t := range f.Tokens {
		if t.Kind == token.EOF {
			break
		}
		if !t.IsSignificant() {
			continue
		}
		if haveLast && t.Line > last.Line {
			if depth > 0 || continuesLine(last) {
				for ln := last.Line + 1; ln <= t.Line; ln++ {
					cont[ln] = true
				}
			}
		}
		if t.Kind == token.Punct {
			switch t.Text {
			case "(", "[":
				depth++
			case ")", "]":
				if depth > 0 {
					depth--
				}
			}
		}
		last = t
		haveLast = true
	}
	return cont
}

func continuesLine(t token.Token) bool {
	if t.Kind == token.Operator {
		return true
	}
	return t.Kind == token.Punct && t.Text == ","
}

func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}
