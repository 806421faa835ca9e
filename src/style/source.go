package style

import (
	"strings"

	"github.com/lorenzwalthert/bonousus/src/lexer"
	"github.com/lorenzwalthert/bonousus/src/parse"
	"github.com/lorenzwalthert/bonousus/src/token"
)

// SourceFile is one file prepared for rule evaluation: its raw text, the
// full token stream (whitespace and comments included) and the
// structural tree. It is built once per analysis pass, shared read-only
// by all rules and discarded afterwards.
type SourceFile struct {
	Path   string
	Text   string
	Tokens []token.Token
	Tree   *parse.Node

	lines []string
}

// NewSourceFile tokenizes and parses text. It never fails; malformed
// input surfaces as Invalid tokens and Opaque nodes.
func NewSourceFile(path, text string) *SourceFile {
	toks := lexer.Scan(text)
	return &SourceFile{
		Path:   path,
		Text:   text,
		Tokens: toks,
		Tree:   parse.Parse(toks),
	}
}

// Lines returns the file's lines without terminators.
func (f *SourceFile) Lines() []string {
	if f.lines == nil {
		f.lines = strings.Split(strings.ReplaceAll(f.Text, "\r\n", "\n"), "\n")
	}
	return f.lines
}

// Tok returns the token at index i, or an EOF token when i is out of
// range, so rules can index node spans without bounds juggling.
func (f *SourceFile) Tok(i int) token.Token {
	if i < 0 || i >= len(f.Tokens) {
		return token.Token{Kind: token.EOF, Offset: len(f.Text)}
	}
	return f.Tokens[i]
}

// IsRSource reports whether the path names an R script. Rules that read
// file content only apply to R sources; path rules apply to everything.
func IsRSource(path string) bool {
	switch {
	case strings.HasSuffix(path, ".R"), strings.HasSuffix(path, ".r"):
		return true
	}
	return false
}

// Summary describes the structural shape of one analyzed file.
type Summary struct {
	Path     string `json:"path"`
	Tokens   int    `json:"tokens"`
	Invalid  int    `json:"invalid_tokens"`
	Nodes    int    `json:"nodes"`
	Opaque   int    `json:"opaque_nodes"`
	MaxDepth int    `json:"max_depth"`
}

// Summarize counts tokens and nodes for reporting and diagnostics.
func (f *SourceFile) Summarize() *Summary {
	s := &Summary{Path: f.Path}
	for _, t := range f.Tokens {
		if t.Kind == token.EOF {
			continue
		}
		s.Tokens++
		if t.Kind == token.Invalid {
			s.Invalid++
		}
	}
	f.Tree.Walk(func(n *parse.Node) bool {
		s.Nodes++
		if n.Kind == parse.Opaque {
			s.Opaque++
		}
		if n.Depth > s.MaxDepth {
			s.MaxDepth = n.Depth
		}
		return true
	})
	return s
}
