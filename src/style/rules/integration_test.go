package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzwalthert/bonousus/src/config"
	"github.com/lorenzwalthert/bonousus/src/style"
)

func defaultEngine(t *testing.T) *style.Engine {
	t.Helper()
	e, err := style.NewEngine(config.DefaultStyleConfig(), nil, nil, false)
	require.NoError(t, err)
	return e
}

func TestCleanFilePassesAllRules(t *testing.T) {
	e := defaultEngine(t)

	src := "combine_a_and_b <- function(a, b) {\n" +
		"  if (is.null(a)) {\n" +
		"    return(b)\n" +
		"  }\n" +
		"  c(a, b)\n" +
		"}\n"
	_, findings := e.AnalyzeFile("combine_a_and_b.R", src)
	assert.Empty(t, findings)
}

func TestNonRFileOnlyGetsPathChecks(t *testing.T) {
	e := defaultEngine(t)

	// Looks like terrible R, but content rules must not read non-R files.
	_, findings := e.AnalyzeFile("showcase_outlier.Rmd", "x = 'single'\nmy.Bad = 1\n")
	assert.Empty(t, findings)
}

func TestProjectCollisionReported(t *testing.T) {
	e := defaultEngine(t)

	rep, err := e.AnalyzeProject(context.Background(), []style.Input{
		{Path: "readme.md", Text: "# readme\n"},
		{Path: "README.md", Text: "# readme\n"},
		{Path: "src/ok.R", Text: "x <- 1\n"},
	})
	require.NoError(t, err)

	require.Len(t, rep.Findings, 1)
	f := rep.Findings[0]
	assert.Equal(t, "filename", f.Rule)
	assert.Contains(t, f.Message, "collides")
}

func TestUnterminatedStringStillYieldsOtherFindings(t *testing.T) {
	e := defaultEngine(t)

	src := "x <- \"broken\nmy.name = 'oops'\n"
	_, findings := e.AnalyzeFile("a.R", src)

	rules := map[string]bool{}
	for _, f := range findings {
		rules[f.Rule] = true
	}
	assert.True(t, rules["object_naming"], "naming still checked after lexer recovery")
	assert.True(t, rules["assignment_operator"], "assignment still checked after lexer recovery")
	assert.True(t, rules["quote_style"], "quotes still checked after lexer recovery")
}

func TestAnalyzeFileMixedFindingsSorted(t *testing.T) {
	e := defaultEngine(t)

	src := "a = 1\nB <- 'single'\n"
	_, findings := e.AnalyzeFile("a.R", src)
	require.NotEmpty(t, findings)

	for i := 1; i < len(findings); i++ {
		a, b := findings[i-1], findings[i]
		ordered := a.Line < b.Line ||
			(a.Line == b.Line && a.Col < b.Col) ||
			(a.Line == b.Line && a.Col == b.Col && a.Rule <= b.Rule)
		assert.True(t, ordered, "findings out of order at %d: %+v then %+v", i, a, b)
	}
}
