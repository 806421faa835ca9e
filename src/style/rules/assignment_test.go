package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzwalthert/bonousus/src/style"
)

func checkSrc(t *testing.T, r style.Rule, path, src string) []style.Finding {
	t.Helper()
	return r.Check(style.NewSourceFile(path, src))
}

func TestAssignmentArrowIsClean(t *testing.T) {
	r := &assignmentRule{}
	require.NoError(t, r.Configure(nil))

	findings := checkSrc(t, r, "a.R", "a <- 2\n")
	assert.Empty(t, findings)
}

func TestAssignmentEqualsFlagged(t *testing.T) {
	r := &assignmentRule{}
	require.NoError(t, r.Configure(nil))

	findings := checkSrc(t, r, "a.R", "a = 2\n")
	require.Len(t, findings, 1)
	assert.Equal(t, "use <-, not =, for assignment", findings[0].Message)
	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, 3, findings[0].Col)
}

func TestAssignmentNamedArgumentsExempt(t *testing.T) {
	r := &assignmentRule{}
	require.NoError(t, r.Configure(nil))

	findings := checkSrc(t, r, "a.R", "f(a = 1, b = TRUE)\n")
	assert.Empty(t, findings)
}

func TestAssignmentNamedArgumentNextToRealOne(t *testing.T) {
	r := &assignmentRule{}
	require.NoError(t, r.Configure(nil))

	// The statement-level = is flagged; the argument-level = is not.
	findings := checkSrc(t, r, "a.R", "x = f(a = 1)\n")
	require.Len(t, findings, 1)
	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, 3, findings[0].Col)
}

func TestAssignmentRightAndSuperAssignOptions(t *testing.T) {
	src := "2 -> x\ny <<- 3\n"

	r := &assignmentRule{}
	require.NoError(t, r.Configure(nil))
	assert.Empty(t, checkSrc(t, r, "a.R", src), "off by default")

	require.NoError(t, r.Configure(map[string]any{
		"flag_right_assign": true,
		"flag_super_assign": true,
	}))
	findings := checkSrc(t, r, "a.R", src)
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, "right assignment")
	assert.Contains(t, findings[1].Message, "<<-")
}

func TestAssignmentSkipsNonRFiles(t *testing.T) {
	r := &assignmentRule{}
	require.NoError(t, r.Configure(nil))

	assert.Empty(t, checkSrc(t, r, "README.md", "a = 2\n"))
}
