package lexer

import "github.com/lorenzwalthert/bonousus/src/token"

func (lx *Lexer) scanWhitespace() token.Token {
	start, line, col := lx.mark()
	for {
		ch, ok := lx.peek()
		if !ok || (ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r') {
			break
		}
		lx.advance()
	}
	return lx.emit(token.Whitespace, start, line, col)
}

func (lx *Lexer) scanComment() token.Token {
	start, line, col := lx.mark()
	for {
		ch, ok := lx.peek()
		if !ok || ch == '\n' {
			break
		}
		lx.advance()
	}
	return lx.emit(token.Comment, start, line, col)
}

// scanString consumes a quoted literal. A newline or end of input before
// the closing quote produces an Invalid token ending at that boundary,
// so the rest of the file still tokenizes.
func (lx *Lexer) scanString(quote byte) token.Token {
	start, line, col := lx.mark()
	lx.advance() // opening quote
	for {
		ch, ok := lx.peek()
		if !ok || ch == '\n' {
			return lx.emit(token.Invalid, start, line, col)
		}
		if ch == '\\' {
			lx.advance()
			if _, ok := lx.peek(); ok {
				lx.advance()
			}
			continue
		}
		lx.advance()
		if ch == quote {
			return lx.emit(token.String, start, line, col)
		}
	}
}

// scanBacktickIdent consumes a `quoted` name. Unterminated at newline or
// end of input becomes Invalid, like strings.
func (lx *Lexer) scanBacktickIdent() token.Token {
	start, line, col := lx.mark()
	lx.advance() // opening backtick
	for {
		ch, ok := lx.peek()
		if !ok || ch == '\n' {
			return lx.emit(token.Invalid, start, line, col)
		}
		lx.advance()
		if ch == '`' {
			return lx.emit(token.Ident, start, line, col)
		}
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start, line, col := lx.mark()

	// Hex: 0x / 0X prefix.
	if ch, _ := lx.peek(); ch == '0' && lx.off+1 < len(lx.src) &&
		(lx.src[lx.off+1] == 'x' || lx.src[lx.off+1] == 'X') {
		lx.advance()
		lx.advance()
		for {
			ch, ok := lx.peek()
			if !ok || !isHexDigit(ch) {
				break
			}
			lx.advance()
		}
		lx.maybeIntSuffix()
		return lx.emit(token.Number, start, line, col)
	}

	lx.scanDigits()
	if ch, ok := lx.peek(); ok && ch == '.' {
		lx.advance()
		lx.scanDigits()
	}
	if ch, ok := lx.peek(); ok && (ch == 'e' || ch == 'E') {
		lx.advance()
		if ch, ok := lx.peek(); ok && (ch == '+' || ch == '-') {
			lx.advance()
		}
		lx.scanDigits()
	}
	lx.maybeIntSuffix()
	return lx.emit(token.Number, start, line, col)
}

func (lx *Lexer) scanDigits() {
	for {
		ch, ok := lx.peek()
		if !ok || !isDigit(ch) {
			break
		}
		lx.advance()
	}
}

// maybeIntSuffix consumes R's integer (L) and complex (i) suffixes.
func (lx *Lexer) maybeIntSuffix() {
	if ch, ok := lx.peek(); ok && (ch == 'L' || ch == 'i') {
		lx.advance()
	}
}

func (lx *Lexer) scanIdent() token.Token {
	start, line, col := lx.mark()
	for {
		ch, ok := lx.peek()
		if !ok || !isIdentPart(ch) {
			break
		}
		lx.advance()
	}
	return lx.emit(token.Ident, start, line, col)
}

// scanSpecialOp consumes an R %op% operator (%%, %in%, %>%, ...).
// A missing closing % before newline or end of input is Invalid.
func (lx *Lexer) scanSpecialOp() token.Token {
	start, line, col := lx.mark()
	lx.advance() // opening %
	for {
		ch, ok := lx.peek()
		if !ok || ch == '\n' {
			return lx.emit(token.Invalid, start, line, col)
		}
		lx.advance()
		if ch == '%' {
			return lx.emit(token.Operator, start, line, col)
		}
	}
}

// multiByteOps lists R operators longer than one byte, longest first so
// greedy matching picks "<<-" over "<-" and "<".
var multiByteOps = []string{
	"<<-", "->>", ":::",
	"<-", "->", "<=", ">=", "==", "!=", "&&", "||", "|>", "::",
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start, line, col := lx.mark()
	rest := lx.src[lx.off:]

	for _, op := range multiByteOps {
		if len(rest) >= len(op) && rest[:len(op)] == op {
			for range op {
				lx.advance()
			}
			return lx.emit(token.Operator, start, line, col)
		}
	}

	ch := rest[0]
	lx.advance()
	switch ch {
	case '(', ')', '[', ']', '{', '}', ',', ';':
		return lx.emit(token.Punct, start, line, col)
	case '+', '-', '*', '/', '^', '<', '>', '=', '!', '&', '|', '~', '?', ':', '@', '$', '\\':
		return lx.emit(token.Operator, start, line, col)
	default:
		// Stray byte: emit it as Invalid and continue at the next byte.
		return lx.emit(token.Invalid, start, line, col)
	}
}
