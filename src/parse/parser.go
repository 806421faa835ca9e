package parse

import (
	"strings"

	"github.com/lorenzwalthert/bonousus/src/token"
)

// Parse builds the structural tree for a token stream produced by the
// lexer (including whitespace and comment tokens). It never fails:
// regions it cannot decompose become Opaque nodes.
func Parse(toks []token.Token) *Node {
	p := &parser{toks: toks}
	root := &Node{Kind: File, Start: 0, End: len(toks)}
	root.Children, _ = p.parseStmts(0, 0, false)
	return root
}

type parser struct {
	toks []token.Token
}

// sig returns the first index at or after i holding a significant token,
// or len(toks) if none remain before EOF.
func (p *parser) sig(i int) int {
	for ; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Kind == token.EOF {
			return len(p.toks)
		}
		if t.IsSignificant() {
			return i
		}
	}
	return len(p.toks)
}

// sigWithin is sig bounded by e.
func (p *parser) sigWithin(i, e int) int {
	j := p.sig(i)
	if j > e {
		return e
	}
	return j
}

func (p *parser) text(i int) string {
	if i < 0 || i >= len(p.toks) {
		return ""
	}
	return p.toks[i].Text
}

func isOpener(t token.Token) bool {
	return t.Kind == token.Punct && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

func isCloser(t token.Token) bool {
	return t.Kind == token.Punct && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

func isStmtAssign(t token.Token) bool {
	if t.Kind != token.Operator {
		return false
	}
	switch t.Text {
	case "<-", "<<-", "->", "->>", "=":
		return true
	}
	return false
}

func isKeyword(t token.Token, kw string) bool {
	return t.Kind == token.Ident && t.Text == kw
}

// isFunctionKeyword matches the function keyword and the \(x) lambda
// shorthand.
func isFunctionKeyword(t token.Token) bool {
	return isKeyword(t, "function") || t.Is(token.Operator, `\`)
}

func isConditionalKeyword(t token.Token) bool {
	if t.Kind != token.Ident {
		return false
	}
	switch t.Text {
	case "if", "for", "while", "repeat":
		return true
	}
	return false
}

// endOfLine returns the index just past the last token starting on the
// same line as toks[j].
func (p *parser) endOfLine(j int) int {
	line := p.toks[j].Line
	k := j + 1
	for k < len(p.toks) && p.toks[k].Kind != token.EOF && p.toks[k].Line == line {
		k++
	}
	return k
}

// matchDelim returns the index of the closer matching the opener at
// openIdx, or limit when the input is unbalanced.
func (p *parser) matchDelim(openIdx, limit int) int {
	depth := 0
	for i := openIdx; i < limit && i < len(p.toks); i++ {
		t := p.toks[i]
		if !t.IsSignificant() {
			continue
		}
		if isOpener(t) {
			depth++
		} else if isCloser(t) {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	if limit > len(p.toks) {
		return len(p.toks)
	}
	return limit
}

// clamp keeps a token index within the stream.
func (p *parser) clamp(i int) int {
	if i > len(p.toks) {
		return len(p.toks)
	}
	return i
}

// stmtEnd finds the exclusive end of the statement starting at
// significant index s: an unmatched closer, a top-level semicolon, or a
// line break not preceded by a continuation token.
func (p *parser) stmtEnd(s int) int {
	depth := 0
	last := s // last significant index seen
	for i := s; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Kind == token.EOF {
			return i
		}
		if !t.IsSignificant() {
			continue
		}
		if depth == 0 && i > s {
			if t.Kind == token.Punct && t.Text == ";" {
				return i
			}
			if isCloser(t) {
				return i
			}
			if t.Line > p.toks[last].Line && !continuesStmt(p.toks[last]) {
				return last + 1
			}
		} else if depth > 0 && isCloser(t) {
			depth--
			last = i
			continue
		}
		if isOpener(t) {
			depth++
		}
		last = i
	}
	return len(p.toks)
}

// continuesStmt reports whether a statement whose last token is t keeps
// going on the next line (trailing operator or comma).
func continuesStmt(t token.Token) bool {
	if t.Kind == token.Operator {
		return true
	}
	return t.Kind == token.Punct && t.Text == ","
}

// parseStmts parses statements until EOF or, when stopAtBrace is set, an
// unconsumed closing brace. It returns the children and the index of the
// stopping token.
func (p *parser) parseStmts(i, depth int, stopAtBrace bool) ([]*Node, int) {
	var nodes []*Node
	for {
		j := p.sig(i)
		if j >= len(p.toks) {
			return nodes, j
		}
		t := p.toks[j]
		switch {
		case t.Kind == token.Punct && t.Text == ";":
			i = j + 1
		case t.Kind == token.Punct && t.Text == "}":
			if stopAtBrace {
				return nodes, j
			}
			// Stray closer at top level: record and move on.
			nodes = append(nodes, &Node{Kind: Opaque, Start: j, End: j + 1, Depth: depth})
			i = j + 1
		case t.Kind == token.Punct && t.Text == "{":
			b := p.parseBlock(j, depth)
			nodes = append(nodes, b)
			i = b.End
		case isConditionalKeyword(t):
			c := p.parseConditional(j, depth, len(p.toks))
			nodes = append(nodes, c)
			i = c.End
		case t.Kind == token.Invalid || isCloser(t):
			end := p.endOfLine(j)
			nodes = append(nodes, &Node{Kind: Opaque, Start: j, End: end, Depth: depth})
			i = end
		default:
			e := p.stmtEnd(j)
			if e <= j {
				nodes = append(nodes, &Node{Kind: Opaque, Start: j, End: j + 1, Depth: depth})
				i = j + 1
				break
			}
			stmtNodes, hadInvalid := p.parseExprRegion(j, e, depth)
			if len(stmtNodes) == 0 && hadInvalid {
				stmtNodes = []*Node{{Kind: Opaque, Start: j, End: e, Depth: depth}}
			}
			nodes = append(nodes, stmtNodes...)
			i = e
		}
	}
}

// parseBlock parses a braced statement block. The block itself sits at
// depth; its statements at depth+1. A missing closing brace ends the
// block at EOF.
func (p *parser) parseBlock(openIdx, depth int) *Node {
	n := &Node{Kind: Block, Start: openIdx, Depth: depth}
	children, next := p.parseStmts(openIdx+1, depth+1, true)
	n.Children = children
	if next < len(p.toks) && p.toks[next].Is(token.Punct, "}") {
		n.End = next + 1
	} else {
		n.End = next
	}
	return n
}

// parseConditional parses if/else, for, while and repeat. Brace bodies
// are inlined so each visual nesting level is exactly one node.
func (p *parser) parseConditional(kwIdx, depth, limit int) *Node {
	kw := p.text(kwIdx)
	n := &Node{Kind: Conditional, Start: kwIdx, Depth: depth, Keyword: kw}
	i := kwIdx + 1

	if kw != "repeat" {
		open := p.sigWithin(i, limit)
		if open >= limit || !p.toks[open].Is(token.Punct, "(") {
			// Malformed header: give up on structure for this line.
			end := p.endOfLine(kwIdx)
			return &Node{Kind: Opaque, Start: kwIdx, End: end, Depth: depth}
		}
		closeIdx := p.matchDelim(open, limit)
		cond, _ := p.parseExprRegion(open+1, closeIdx, depth+1)
		n.Children = append(n.Children, cond...)
		i = p.clamp(closeIdx + 1)
	}

	i = p.parseCondBody(n, i, depth, limit)

	if kw == "if" {
		j := p.sigWithin(i, limit)
		if j < limit && isKeyword(p.toks[j], "else") {
			i = p.parseCondBody(n, j+1, depth, limit)
		}
	}

	n.End = i
	return n
}

// parseCondBody parses one conditional body (brace block or single
// statement) into n's children and returns the index past it.
func (p *parser) parseCondBody(n *Node, i, depth, limit int) int {
	j := p.sigWithin(i, limit)
	if j >= limit {
		return j
	}
	if p.toks[j].Is(token.Punct, "{") {
		children, next := p.parseStmts(j+1, depth+1, true)
		n.Children = append(n.Children, children...)
		if next < len(p.toks) && p.toks[next].Is(token.Punct, "}") {
			return next + 1
		}
		return next
	}
	if isConditionalKeyword(p.toks[j]) {
		c := p.parseConditional(j, depth+1, limit)
		n.Children = append(n.Children, c)
		return c.End
	}
	e := p.stmtEnd(j)
	if e > limit {
		e = limit
	}
	body, _ := p.parseExprRegion(j, e, depth+1)
	n.Children = append(n.Children, body...)
	return e
}

// parseExprRegion extracts landmark nodes from the token range [s, e).
// It reports whether the region contained Invalid tokens so callers can
// decide to wrap an otherwise structureless region as Opaque.
func (p *parser) parseExprRegion(s, e, depth int) ([]*Node, bool) {
	if s >= e {
		return nil, false
	}

	// An assignment operator at the top delimiter level splits the
	// region. The leftmost one wins; R's right associativity then falls
	// out of recursing into the value side.
	if k := p.topLevelAssign(s, e); k >= 0 {
		return []*Node{p.parseAssignment(s, k, e, depth)}, false
	}

	var nodes []*Node
	hadInvalid := false
	i := s
	for i < e {
		j := p.sigWithin(i, e)
		if j >= e {
			break
		}
		t := p.toks[j]
		switch {
		case isFunctionKeyword(t):
			fn := p.parseFunction(j, e, depth)
			nodes = append(nodes, fn)
			i = fn.End
		case isConditionalKeyword(t):
			c := p.parseConditional(j, depth, e)
			nodes = append(nodes, c)
			i = c.End
		case t.Kind == token.Ident:
			if call, next := p.tryCall(j, e, depth); call != nil {
				nodes = append(nodes, call)
				i = next
			} else {
				i = j + 1
			}
		case t.Kind == token.String:
			nodes = append(nodes, &Node{Kind: StringLit, Start: j, End: j + 1, Depth: depth})
			i = j + 1
		case t.Is(token.Punct, "{"):
			b := p.parseBlock(j, depth)
			nodes = append(nodes, b)
			i = b.End
		case t.Is(token.Punct, "(") || t.Is(token.Punct, "["):
			closeIdx := p.matchDelim(j, e)
			inner, inv := p.parseExprRegion(j+1, closeIdx, depth)
			hadInvalid = hadInvalid || inv
			nodes = append(nodes, inner...)
			i = closeIdx + 1
		case t.Kind == token.Invalid:
			hadInvalid = true
			i = j + 1
		default:
			i = j + 1
		}
	}
	return nodes, hadInvalid
}

// topLevelAssign returns the index of the first assignment operator at
// delimiter level zero in [s, e), or -1.
func (p *parser) topLevelAssign(s, e int) int {
	depth := 0
	for i := s; i < e; i++ {
		t := p.toks[i]
		if !t.IsSignificant() {
			continue
		}
		if isOpener(t) {
			depth++
		} else if isCloser(t) {
			depth--
		} else if depth == 0 && isStmtAssign(t) {
			return i
		}
	}
	return -1
}

// parseAssignment builds an Assignment (or Declaration, when the value
// is a function literal) from the split at operator index k.
func (p *parser) parseAssignment(s, k, e, depth int) *Node {
	op := p.text(k)

	targetStart, targetEnd := s, k
	valueStart, valueEnd := k+1, e
	if op == "->" || op == "->>" {
		targetStart, targetEnd = k+1, e
		valueStart, valueEnd = s, k
	}

	n := &Node{Kind: Assignment, Start: s, End: e, Depth: depth, Op: op, OpTok: k, TargetTok: -1}
	n.Target, n.TargetTok = p.singleName(targetStart, targetEnd)

	fnIdx := p.sigWithin(valueStart, valueEnd)
	if fnIdx < valueEnd && isFunctionKeyword(p.toks[fnIdx]) {
		n.Kind = Declaration
		fn := p.parseFunction(fnIdx, valueEnd, depth)
		other, _ := p.parseExprRegion(targetStart, targetEnd, depth)
		if targetStart < valueStart {
			n.Children = append(other, fn.Children...)
		} else {
			n.Children = append(fn.Children, other...)
		}
		return n
	}

	lNodes, _ := p.parseExprRegion(s, k, depth)
	rNodes, _ := p.parseExprRegion(k+1, e, depth)
	n.Children = append(lNodes, rNodes...)
	return n
}

// singleName returns the identifier text and token index when the range
// holds exactly one significant token and it is a name, else ("", -1).
func (p *parser) singleName(s, e int) (string, int) {
	j := p.sigWithin(s, e)
	if j >= e || p.toks[j].Kind != token.Ident {
		return "", -1
	}
	if next := p.sigWithin(j+1, e); next < e {
		return "", -1
	}
	return strings.Trim(p.toks[j].Text, "`"), j
}

// parseFunction parses a function literal (the `function` keyword or the
// \(x) shorthand) bounded by e. The formals become an ArgList child; a
// braced body becomes a Block child.
func (p *parser) parseFunction(kwIdx, e, depth int) *Node {
	n := &Node{Kind: Declaration, Start: kwIdx, Depth: depth, TargetTok: -1}
	open := p.sigWithin(kwIdx+1, e)
	if open >= e || !p.toks[open].Is(token.Punct, "(") {
		n.End = p.sigWithin(kwIdx+1, e)
		if n.End <= kwIdx {
			n.End = kwIdx + 1
		}
		return n
	}
	closeIdx := p.matchDelim(open, e)
	n.Children = append(n.Children, p.parseArgList(open, closeIdx, depth))

	bodyStart := p.sigWithin(p.clamp(closeIdx+1), e)
	if bodyStart >= e {
		n.End = p.clamp(closeIdx + 1)
		return n
	}
	if p.toks[bodyStart].Is(token.Punct, "{") {
		b := p.parseBlock(bodyStart, depth)
		n.Children = append(n.Children, b)
		n.End = b.End
		return n
	}
	body, _ := p.parseExprRegion(bodyStart, e, depth)
	n.Children = append(n.Children, body...)
	n.End = e
	return n
}

// tryCall recognizes a call at identifier index j: a possibly qualified
// name (pkg::fn, obj$method) directly followed by an opening paren.
// Returns (nil, 0) when j does not start a call.
func (p *parser) tryCall(j, e, depth int) (*Node, int) {
	callee := strings.Trim(p.toks[j].Text, "`")
	i := j + 1
	for {
		k := p.sigWithin(i, e)
		if k >= e {
			return nil, 0
		}
		t := p.toks[k]
		if t.Kind == token.Operator && (t.Text == "::" || t.Text == ":::" || t.Text == "$" || t.Text == "@") {
			name := p.sigWithin(k+1, e)
			if name >= e || p.toks[name].Kind != token.Ident {
				return nil, 0
			}
			callee += t.Text + strings.Trim(p.toks[name].Text, "`")
			i = name + 1
			continue
		}
		if t.Is(token.Punct, "(") {
			closeIdx := p.matchDelim(k, e)
			end := p.clamp(closeIdx + 1)
			n := &Node{Kind: Call, Start: j, End: end, Depth: depth, Callee: callee}
			n.Children = append(n.Children, p.parseArgList(k, closeIdx, depth))
			return n, end
		}
		return nil, 0
	}
}

// parseArgList parses the comma-separated arguments between openIdx and
// closeIdx (exclusive of both delimiters). Positional-after-named and
// empty arguments are recorded as-is; judging them is rule business.
func (p *parser) parseArgList(openIdx, closeIdx, depth int) *Node {
	n := &Node{Kind: ArgList, Start: openIdx, End: p.clamp(closeIdx + 1), Depth: depth}

	type region struct{ s, e int }
	var regions []region
	start := openIdx + 1
	level := 0
	sawComma := false
	for i := openIdx + 1; i < closeIdx; i++ {
		t := p.toks[i]
		if !t.IsSignificant() {
			continue
		}
		if isOpener(t) {
			level++
		} else if isCloser(t) {
			level--
		} else if level == 0 && t.Is(token.Punct, ",") {
			regions = append(regions, region{start, i})
			start = i + 1
			sawComma = true
		}
	}
	regions = append(regions, region{start, closeIdx})

	// f() has no arguments, not one empty one.
	if !sawComma && p.sigWithin(regions[0].s, regions[0].e) >= regions[0].e {
		return n
	}

	for _, r := range regions {
		arg := Argument{NameTok: -1}
		j := p.sigWithin(r.s, r.e)
		if j >= r.e {
			arg.Empty = true
			arg.Start, arg.End = r.s, r.s
			n.Args = append(n.Args, arg)
			continue
		}
		vs := j
		if name, nameTok, valStart, ok := p.namedArg(j, r.e); ok {
			arg.Name = name
			arg.NameTok = nameTok
			vs = valStart
		}
		arg.Start = vs
		arg.End = r.e
		n.Args = append(n.Args, arg)
		children, _ := p.parseExprRegion(vs, r.e, depth)
		n.Children = append(n.Children, children...)
	}
	return n
}

// namedArg recognizes `name = value` (or "name" = value) at the start of
// an argument region. The `=` must be the plain operator, not == etc.,
// which the lexer already separates.
func (p *parser) namedArg(j, e int) (name string, nameTok, valStart int, ok bool) {
	t := p.toks[j]
	if t.Kind != token.Ident && t.Kind != token.String {
		return "", 0, 0, false
	}
	eq := p.sigWithin(j+1, e)
	if eq >= e || !p.toks[eq].Is(token.Operator, "=") {
		return "", 0, 0, false
	}
	name = strings.Trim(t.Text, "`")
	if t.Kind == token.String {
		name = strings.Trim(name, `"'`)
	}
	return name, j, p.sigWithin(eq+1, e), true
}
