package style

import "sort"

// Report is the aggregated outcome of one run: all findings across all
// files, deduplicated and in the total order (file, line, col, rule,
// message). The order is a pure function of the findings themselves,
// never of evaluation scheduling.
type Report struct {
	Findings []Finding `json:"findings"`
}

// NewReport sorts and deduplicates findings into a report.
func NewReport(findings []Finding) *Report {
	return &Report{Findings: sortAndDedup(findings)}
}

// sortAndDedup orders findings and drops duplicates by identity key,
// keeping the first in sort order so the survivor is deterministic.
func sortAndDedup(findings []Finding) []Finding {
	if len(findings) == 0 {
		return nil
	}
	sorted := make([]Finding, len(findings))
	copy(sorted, findings)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	out := sorted[:0]
	seen := make(map[findingKey]bool, len(sorted))
	for _, f := range sorted {
		if seen[f.key()] {
			continue
		}
		seen[f.key()] = true
		out = append(out, f)
	}
	return out
}

// Files returns the distinct file paths with findings, in report order.
func (r *Report) Files() []string {
	var files []string
	last := ""
	for _, f := range r.Findings {
		if f.File != last {
			files = append(files, f.File)
			last = f.File
		}
	}
	return files
}

// ForFile returns the findings for one path, in report order.
func (r *Report) ForFile(path string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.File == path {
			out = append(out, f)
		}
	}
	return out
}

// Count returns how many findings have the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// MaxSeverity returns the highest severity present. The second result is
// false for an empty report.
func (r *Report) MaxSeverity() (Severity, bool) {
	if len(r.Findings) == 0 {
		return 0, false
	}
	maxSev := r.Findings[0].Severity
	for _, f := range r.Findings[1:] {
		if f.Severity > maxSev {
			maxSev = f.Severity
		}
	}
	return maxSev, true
}
