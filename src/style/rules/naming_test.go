package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamingSnakeCaseIsClean(t *testing.T) {
	r := &namingRule{}
	require.NoError(t, r.Configure(nil))

	findings := checkSrc(t, r, "a.R", "my_var <- 1\ncount2 <- 2\nf <- function(x) x\n")
	assert.Empty(t, findings)
}

func TestNamingDottedNameFlagged(t *testing.T) {
	r := &namingRule{}
	require.NoError(t, r.Configure(nil))

	findings := checkSrc(t, r, "a.R", "my.var <- 1\n")
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "contains a dot")
	assert.Equal(t, 1, findings[0].Col)
}

func TestNamingCamelCaseFlagged(t *testing.T) {
	r := &namingRule{}
	require.NoError(t, r.Configure(nil))

	findings := checkSrc(t, r, "a.R", "myVar <- 1\n")
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "not lowercase snake_case")
}

func TestNamingBuiltinShadowComesFromOptions(t *testing.T) {
	src := "mean <- function(x) x\n"

	// Without a configured list nothing is flagged.
	r := &namingRule{}
	require.NoError(t, r.Configure(nil))
	assert.Empty(t, checkSrc(t, r, "a.R", src))

	require.NoError(t, r.Configure(map[string]any{
		"builtins": []string{"mean", "sum", "T", "F"},
	}))
	findings := checkSrc(t, r, "a.R", src)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "shadows a builtin")
}

func TestNamingUsesAssignmentTargetsOnly(t *testing.T) {
	r := &namingRule{}
	require.NoError(t, r.Configure(nil))

	// myBad appears only as a call argument, not as a target.
	findings := checkSrc(t, r, "a.R", "x <- f(myBad, other.Bad)\n")
	assert.Empty(t, findings)
}

func TestNamingRightAssignTarget(t *testing.T) {
	r := &namingRule{}
	require.NoError(t, r.Configure(nil))

	findings := checkSrc(t, r, "a.R", "1 -> badName\n")
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "badName")
}
