// Package token defines the lexical tokens produced by the R tokenizer
// and their source positions.
package token

import "fmt"

// Kind classifies a token.
type Kind uint8

const (
	// Invalid marks text the tokenizer could not form a token from
	// (unterminated string, stray byte). Scanning resumes after it.
	Invalid Kind = iota
	EOF
	Ident
	String
	Number
	Operator
	Punct
	Comment
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Ident:
		return "ident"
	case String:
		return "string"
	case Number:
		return "number"
	case Operator:
		return "operator"
	case Punct:
		return "punct"
	case Comment:
		return "comment"
	case Whitespace:
		return "whitespace"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is one lexical unit with its position in the file.
// Tokens are immutable once produced.
type Token struct {
	Kind   Kind
	Text   string
	Offset int // byte offset of the first byte
	Line   int // 1-based
	Col    int // 1-based, in bytes
}

// End returns the byte offset just past the token.
func (t Token) End() int { return t.Offset + len(t.Text) }

// Is reports whether the token has the given kind and exact text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsAssign reports whether the token is one of R's assignment operators.
// The plain "=" is included: whether it acts as assignment or as a named
// argument depends on context the parser decides.
func (t Token) IsAssign() bool {
	if t.Kind != Operator {
		return false
	}
	switch t.Text {
	case "<-", "<<-", "->", "->>", "=":
		return true
	}
	return false
}

// IsSignificant reports whether the token carries structure, i.e. is
// neither whitespace nor a comment.
func (t Token) IsSignificant() bool {
	return t.Kind != Whitespace && t.Kind != Comment
}
