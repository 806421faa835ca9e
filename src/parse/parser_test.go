package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzwalthert/bonousus/src/lexer"
	"github.com/lorenzwalthert/bonousus/src/token"
)

func parseSrc(t *testing.T, src string) (*Node, []token.Token) {
	t.Helper()
	toks := lexer.Scan(src)
	return Parse(toks), toks
}

// collect returns all nodes of the given kind in walk order.
func collect(root *Node, kind Kind) []*Node {
	var out []*Node
	root.Walk(func(n *Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

func TestParseAssignment(t *testing.T) {
	root, toks := parseSrc(t, "a <- 2\n")

	assigns := collect(root, Assignment)
	require.Len(t, assigns, 1)
	a := assigns[0]
	assert.Equal(t, "a", a.Target)
	assert.Equal(t, "<-", a.Op)
	assert.True(t, toks[a.TargetTok].Is(token.Ident, "a"))
	assert.True(t, toks[a.OpTok].Is(token.Operator, "<-"))
}

func TestParseEqualsAssignment(t *testing.T) {
	root, _ := parseSrc(t, "x = 2\n")

	assigns := collect(root, Assignment)
	require.Len(t, assigns, 1)
	assert.Equal(t, "x", assigns[0].Target)
	assert.Equal(t, "=", assigns[0].Op)
}

func TestParseRightAssignment(t *testing.T) {
	root, _ := parseSrc(t, "2 -> x\n3 ->> y\n")

	assigns := collect(root, Assignment)
	require.Len(t, assigns, 2)
	assert.Equal(t, "x", assigns[0].Target)
	assert.Equal(t, "->", assigns[0].Op)
	assert.Equal(t, "y", assigns[1].Target)
	assert.Equal(t, "->>", assigns[1].Op)
}

func TestParseDeclaration(t *testing.T) {
	root, _ := parseSrc(t, "add <- function(x, y) {\n  x + y\n}\n")

	decls := collect(root, Declaration)
	require.NotEmpty(t, decls)
	d := decls[0]
	assert.Equal(t, "add", d.Target)
	assert.Equal(t, "<-", d.Op)

	argLists := collect(d, ArgList)
	require.Len(t, argLists, 1)
	require.Len(t, argLists[0].Args, 2)

	blocks := collect(d, Block)
	require.Len(t, blocks, 1)
}

func TestParseLambdaDeclaration(t *testing.T) {
	root, _ := parseSrc(t, `inc <- \(x) x + 1`)

	decls := collect(root, Declaration)
	require.NotEmpty(t, decls)
	assert.Equal(t, "inc", decls[0].Target)
}

func TestParseCallNamedArgsAreNotAssignments(t *testing.T) {
	root, _ := parseSrc(t, "mean(x = 1, 2)\n")

	require.Empty(t, collect(root, Assignment), "named argument must not parse as assignment")

	calls := collect(root, Call)
	require.Len(t, calls, 1)
	assert.Equal(t, "mean", calls[0].Callee)

	argLists := collect(root, ArgList)
	require.Len(t, argLists, 1)
	args := argLists[0].Args
	require.Len(t, args, 2)
	assert.Equal(t, "x", args[0].Name)
	assert.GreaterOrEqual(t, args[0].NameTok, 0)
	assert.Equal(t, "", args[1].Name)
	assert.Equal(t, -1, args[1].NameTok)
}

func TestParseQualifiedCallee(t *testing.T) {
	root, _ := parseSrc(t, "dplyr::filter(df, x > 1)\nobj$method(1)\n")

	calls := collect(root, Call)
	require.Len(t, calls, 2)
	assert.Equal(t, "dplyr::filter", calls[0].Callee)
	assert.Equal(t, "obj$method", calls[1].Callee)
}

func TestParseEmptyCallHasNoArgs(t *testing.T) {
	root, _ := parseSrc(t, "f()\n")

	argLists := collect(root, ArgList)
	require.Len(t, argLists, 1)
	assert.Empty(t, argLists[0].Args)
}

func TestParseEmptyArgumentRecorded(t *testing.T) {
	root, _ := parseSrc(t, "f(1, , 3)\n")

	argLists := collect(root, ArgList)
	require.Len(t, argLists, 1)
	args := argLists[0].Args
	require.Len(t, args, 3)
	assert.False(t, args[0].Empty)
	assert.True(t, args[1].Empty)
	assert.False(t, args[2].Empty)
}

func TestParseConditionalInlinesBody(t *testing.T) {
	root, _ := parseSrc(t, "if (a) {\n  b <- 1\n}\n")

	conds := collect(root, Conditional)
	require.Len(t, conds, 1)
	c := conds[0]
	assert.Equal(t, "if", c.Keyword)

	// The brace body is inlined: no Block child under the conditional.
	assert.Empty(t, collect(c, Block))

	assigns := collect(c, Assignment)
	require.Len(t, assigns, 1)
	assert.Equal(t, c.Depth+1, assigns[0].Depth)
}

func TestParseElseChain(t *testing.T) {
	root, _ := parseSrc(t, "if (a) {\n  x <- 1\n} else if (b) {\n  y <- 2\n} else {\n  z <- 3\n}\n")

	conds := collect(root, Conditional)
	require.Len(t, conds, 2, "if and the chained else-if")
	assert.Len(t, collect(root, Assignment), 3)
}

func TestParseNestingDepth(t *testing.T) {
	src := "f <- function(x) {\n" +
		"  if (a) {\n" +
		"    for (i in x) {\n" +
		"      g(i)\n" +
		"    }\n" +
		"  }\n" +
		"}\n"
	root, _ := parseSrc(t, src)

	blocks := collect(root, Block)
	require.Len(t, blocks, 1, "only the function body is a Block")
	assert.Equal(t, 0, blocks[0].Depth)

	conds := collect(root, Conditional)
	require.Len(t, conds, 2)
	assert.Equal(t, "if", conds[0].Keyword)
	assert.Equal(t, 1, conds[0].Depth)
	assert.Equal(t, "for", conds[1].Keyword)
	assert.Equal(t, 2, conds[1].Depth)

	calls := collect(root, Call)
	require.Len(t, calls, 1)
	assert.Equal(t, 3, calls[0].Depth)
}

func TestParseRepeatAndWhile(t *testing.T) {
	root, _ := parseSrc(t, "repeat {\n  x <- x + 1\n}\nwhile (x < 3) {\n  y()\n}\n")

	conds := collect(root, Conditional)
	require.Len(t, conds, 2)
	assert.Equal(t, "repeat", conds[0].Keyword)
	assert.Equal(t, "while", conds[1].Keyword)
}

func TestParseMalformedHeaderBecomesOpaque(t *testing.T) {
	root, _ := parseSrc(t, "if a) {\n}\ny <- 1\n")

	assert.NotEmpty(t, collect(root, Opaque))

	// Recovery: the next statement still parses.
	assigns := collect(root, Assignment)
	require.Len(t, assigns, 1)
	assert.Equal(t, "y", assigns[0].Target)
}

func TestParseStrayCloserBecomesOpaque(t *testing.T) {
	root, _ := parseSrc(t, "}\nx <- 1\n")

	assert.NotEmpty(t, collect(root, Opaque))
	assigns := collect(root, Assignment)
	require.Len(t, assigns, 1)
	assert.Equal(t, "x", assigns[0].Target)
}

func TestParseStringLitLandmark(t *testing.T) {
	root, _ := parseSrc(t, "x <- \"hello\"\nf('there')\n")

	strs := collect(root, StringLit)
	assert.Len(t, strs, 2)
}

func TestParseSpanInvariants(t *testing.T) {
	srcs := []string{
		"a <- 2\n",
		"f <- function(x, y) {\n  if (x) {\n    g(y, z = 1)\n  }\n}\n",
		"if a) oops\nx <- 1\n",
		"x <- \"broken\ny <- 1\n",
		"f(1, , 'lit')\n}\n",
	}
	for _, src := range srcs {
		root, toks := parseSrc(t, src)

		root.Walk(func(n *Node) bool {
			assert.LessOrEqual(t, n.Start, n.End, "span order in %q", src)
			assert.GreaterOrEqual(t, n.Start, 0)
			assert.LessOrEqual(t, n.End, len(toks), "span bound in %q", src)

			prevEnd := n.Start
			for _, c := range n.Children {
				assert.GreaterOrEqual(t, c.Start, n.Start, "child within parent in %q", src)
				assert.LessOrEqual(t, c.End, n.End, "child within parent in %q", src)
				assert.GreaterOrEqual(t, c.Start, prevEnd, "sibling overlap in %q", src)
				prevEnd = c.End
			}
			return true
		})
	}
}

func TestParseUnbalancedInputDoesNotPanic(t *testing.T) {
	srcs := []string{
		"f(", "f(a, b", "{", "{{{", ")", "function(", "if (x", "f(a = ",
		"x <- function(a {", "`broken\n",
	}
	for _, src := range srcs {
		require.NotPanics(t, func() { parseSrc(t, src) }, "src %q", src)
	}
}
