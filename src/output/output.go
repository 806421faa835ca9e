// Package output renders style reports for terminals and CI logs.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/lorenzwalthert/bonousus/src/style"
)

var (
	boldText   = color.New(color.Bold)
	ruleText   = color.New(color.FgCyan)
	dimText    = color.New(color.Faint)
	errorTag   = color.New(color.FgRed)
	warningTag = color.New(color.FgYellow)
	infoTag    = color.New(color.Faint)
)

// IsCI reports whether we are running inside a CI pipeline.
func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// ConfigureColor resolves whether output should be colored and applies
// the decision globally. NO_COLOR and dumb terminals win over CI.
func ConfigureColor() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		color.NoColor = true
		return
	}
	if IsCI() {
		color.NoColor = false
	}
}

// GitLab collapsible section helpers.

func SectionStart(w io.Writer, id, name string) {
	if !IsGitLabCI() {
		return
	}
	ts := time.Now().Unix()
	fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", ts, id, name)
}

func SectionEnd(w io.Writer, id string) {
	if !IsGitLabCI() {
		return
	}
	ts := time.Now().Unix()
	fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", ts, id)
}

// severityTag returns a short colored severity label.
func severityTag(s style.Severity) string {
	switch s {
	case style.SeverityError:
		return errorTag.Sprint("ERROR")
	case style.SeverityWarning:
		return warningTag.Sprint("WARN")
	case style.SeverityInfo:
		return infoTag.Sprint("INFO")
	default:
		return s.String()
	}
}

// SectionFindings renders the report's findings grouped by file inside
// a section. The report is already in its stable order, so rendering
// just walks it.
func SectionFindings(sec *Section, report *style.Report) {
	if len(report.Findings) == 0 {
		return
	}

	sec.Row("")

	for _, file := range report.Files() {
		sec.Row("%s", boldText.Sprint(file))

		for _, f := range report.ForFile(file) {
			var loc string
			switch {
			case f.Line == 0:
				loc = "-"
			case f.Col > 0:
				loc = fmt.Sprintf("%d:%d", f.Line, f.Col)
			default:
				loc = fmt.Sprintf("%d", f.Line)
			}
			sec.Row("  %-8s %-5s  %-20s %s",
				dimText.Sprint(loc), severityTag(f.Severity), ruleText.Sprint(f.Rule), f.Message)
		}

		sec.Row("")
	}
}

// FindingsSummaryLine returns a one-line findings summary.
func FindingsSummaryLine(report *style.Report, filesScanned int) string {
	errors := report.Count(style.SeverityError)
	warnings := report.Count(style.SeverityWarning)
	infos := report.Count(style.SeverityInfo)
	total := len(report.Findings)

	parts := []string{}
	if errors > 0 {
		parts = append(parts, errorTag.Sprintf("%d errors", errors))
	}
	if warnings > 0 {
		parts = append(parts, warningTag.Sprintf("%d warnings", warnings))
	}
	if infos > 0 {
		parts = append(parts, fmt.Sprintf("%d info", infos))
	}

	summary := "no findings"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}

	return fmt.Sprintf("%s findings in %d files: %s", boldText.Sprintf("%d", total), filesScanned, summary)
}

// RuleTable writes a per-rule stats row set inside a section.
func RuleTable(sec *Section, ruleNames []string, report *style.Report) {
	byRule := map[string]int{}
	for _, f := range report.Findings {
		byRule[f.Rule]++
	}
	sec.Row("%-24s%s", "rule", "findings")
	for _, name := range ruleNames {
		sec.Row("%-22s%5d", name, byRule[name])
	}
}
