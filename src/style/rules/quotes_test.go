package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteDoublePreferredByDefault(t *testing.T) {
	r := &quoteRule{preferred: `"`}

	assert.Empty(t, checkSrc(t, r, "a.R", "x <- \"index\"\n"))

	findings := checkSrc(t, r, "a.R", "x <- 'this is nice'\n")
	require.Len(t, findings, 1)
	assert.Equal(t, "use double quotes for string literals", findings[0].Message)
	assert.Equal(t, 6, findings[0].Col)
}

func TestQuoteEmbeddedQuoteExemption(t *testing.T) {
	r := &quoteRule{preferred: `"`}

	// Switching to double quotes would force escaping.
	assert.Empty(t, checkSrc(t, r, "a.R", "x <- 'he said \"hi\"'\n"))

	// Contains both quote kinds: no exemption.
	findings := checkSrc(t, r, "a.R", "x <- 'both \" and \\' here'\n")
	assert.Len(t, findings, 1)
}

func TestQuoteSinglePreferredOption(t *testing.T) {
	r := &quoteRule{}
	require.NoError(t, r.Configure(map[string]any{"preferred": "'"}))

	findings := checkSrc(t, r, "a.R", "x <- \"plain\"\n")
	require.Len(t, findings, 1)
	assert.Equal(t, "use single quotes for string literals", findings[0].Message)

	assert.Empty(t, checkSrc(t, r, "a.R", "x <- 'plain'\n"))
}

func TestQuoteBadPreferredRejected(t *testing.T) {
	r := &quoteRule{}
	err := r.Configure(map[string]any{"preferred": "`"})
	require.Error(t, err)
}

func TestQuoteUnterminatedStringIgnored(t *testing.T) {
	r := &quoteRule{preferred: `"`}

	// The broken literal is an Invalid token; the later clean single-quoted
	// literal is still checked.
	findings := checkSrc(t, r, "a.R", "x <- \"broken\ny <- 'fine'\n")
	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].Line)
}
