package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStableOrder(t *testing.T) {
	findings := []Finding{
		{Rule: "b", File: "z.R", Line: 1, Col: 1, Severity: SeverityInfo, Message: "m"},
		{Rule: "a", File: "a.R", Line: 2, Col: 5, Severity: SeverityWarning, Message: "m"},
		{Rule: "a", File: "a.R", Line: 2, Col: 1, Severity: SeverityWarning, Message: "m"},
		{Rule: "c", File: "a.R", Line: 1, Col: 1, Severity: SeverityError, Message: "m"},
	}

	rep := NewReport(findings)
	require.Len(t, rep.Findings, 4)
	assert.Equal(t, "c", rep.Findings[0].Rule)
	assert.Equal(t, 1, rep.Findings[1].Col)
	assert.Equal(t, 5, rep.Findings[2].Col)
	assert.Equal(t, "z.R", rep.Findings[3].File)

	// The input slice is not mutated.
	assert.Equal(t, "b", findings[0].Rule)
}

func TestReportDedupKeepsFirst(t *testing.T) {
	findings := []Finding{
		{Rule: "a", File: "a.R", Line: 1, Col: 1, Severity: SeverityWarning, Message: "first"},
		{Rule: "a", File: "a.R", Line: 1, Col: 1, Severity: SeverityWarning, Message: "second"},
		{Rule: "a", File: "a.R", Line: 1, Col: 2, Severity: SeverityWarning, Message: "distinct col"},
	}

	rep := NewReport(findings)
	require.Len(t, rep.Findings, 2)
	assert.Equal(t, "first", rep.Findings[0].Message)
}

func TestReportFilesAndForFile(t *testing.T) {
	rep := NewReport([]Finding{
		{Rule: "a", File: "b.R", Line: 1, Col: 1},
		{Rule: "a", File: "a.R", Line: 3, Col: 1},
		{Rule: "a", File: "a.R", Line: 1, Col: 1},
	})

	assert.Equal(t, []string{"a.R", "b.R"}, rep.Files())
	assert.Len(t, rep.ForFile("a.R"), 2)
	assert.Empty(t, rep.ForFile("missing.R"))
}

func TestReportMaxSeverity(t *testing.T) {
	_, ok := NewReport(nil).MaxSeverity()
	assert.False(t, ok)

	rep := NewReport([]Finding{
		{Rule: "a", File: "a.R", Line: 1, Col: 1, Severity: SeverityInfo},
		{Rule: "b", File: "a.R", Line: 2, Col: 1, Severity: SeverityError},
		{Rule: "c", File: "a.R", Line: 3, Col: 1, Severity: SeverityWarning},
	})
	max, ok := rep.MaxSeverity()
	require.True(t, ok)
	assert.Equal(t, SeverityError, max)

	assert.Equal(t, 1, rep.Count(SeverityInfo))
	assert.Equal(t, 1, rep.Count(SeverityWarning))
	assert.Equal(t, 1, rep.Count(SeverityError))
}
