// Package lexer turns R source text into a stream of positioned tokens.
//
// The lexer never fails: malformed input (an unterminated string, a stray
// byte) is emitted as a token.Invalid token and scanning resumes at the
// next newline or recognized delimiter, so later parts of the file still
// tokenize normally.
package lexer

import (
	"github.com/lorenzwalthert/bonousus/src/token"
)

// Lexer scans one file's text. It is a pure function of the input text
// and keeps no state beyond the scan position.
type Lexer struct {
	src  string
	off  int
	line int
	col  int
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Scan tokenizes the whole input, including whitespace and comment
// tokens. The returned slice always ends with an EOF token.
func Scan(src string) []token.Token {
	lx := New(src)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token. After the end of input it always returns
// an EOF token.
func (lx *Lexer) Next() token.Token {
	if lx.off >= len(lx.src) {
		return token.Token{Kind: token.EOF, Offset: lx.off, Line: lx.line, Col: lx.col}
	}

	ch := lx.src[lx.off]
	switch {
	case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
		return lx.scanWhitespace()
	case ch == '#':
		return lx.scanComment()
	case ch == '\'' || ch == '"':
		return lx.scanString(ch)
	case ch == '`':
		return lx.scanBacktickIdent()
	case isDigit(ch) || (ch == '.' && lx.off+1 < len(lx.src) && isDigit(lx.src[lx.off+1])):
		return lx.scanNumber()
	case isIdentStart(ch) || ch == '_':
		// A leading underscore is not a legal R name, but the pipe
		// placeholder `_` is; scan it as an identifier either way.
		return lx.scanIdent()
	case ch == '%':
		return lx.scanSpecialOp()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// emit builds a token for src[start:lx.off] using the position captured
// before the scan began, then advances the line/col bookkeeping.
func (lx *Lexer) emit(kind token.Kind, start, startLine, startCol int) token.Token {
	text := lx.src[start:lx.off]
	return token.Token{Kind: kind, Text: text, Offset: start, Line: startLine, Col: startCol}
}

// mark records the current position for emit.
func (lx *Lexer) mark() (off, line, col int) {
	return lx.off, lx.line, lx.col
}

// advance consumes one byte, updating line/col.
func (lx *Lexer) advance() {
	if lx.src[lx.off] == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	lx.off++
}

func (lx *Lexer) peek() (byte, bool) {
	if lx.off >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.off], true
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isIdentStart matches the first byte of an R name: a letter, a dot, or
// any non-ASCII byte (R allows locale-dependent characters in names).
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '.' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '_'
}
