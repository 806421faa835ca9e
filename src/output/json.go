package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/lorenzwalthert/bonousus/src/style"
)

// JSONReport is the machine-readable report envelope.
type JSONReport struct {
	Files    int             `json:"files"`
	Errors   int             `json:"errors"`
	Warnings int             `json:"warnings"`
	Info     int             `json:"info"`
	Elapsed  string          `json:"elapsed"`
	Findings []style.Finding `json:"findings"`
}

// WriteJSON writes the report as indented JSON. Findings keep the
// report's stable order, so identical runs produce identical bytes
// apart from the elapsed time.
func WriteJSON(w io.Writer, report *style.Report, filesScanned int, elapsed time.Duration) error {
	findings := report.Findings
	if findings == nil {
		findings = []style.Finding{}
	}
	env := JSONReport{
		Files:    filesScanned,
		Errors:   report.Count(style.SeverityError),
		Warnings: report.Count(style.SeverityWarning),
		Info:     report.Count(style.SeverityInfo),
		Elapsed:  elapsed.Round(time.Millisecond).String(),
		Findings: findings,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
