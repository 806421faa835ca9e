package style

import (
	"strings"

	"github.com/lorenzwalthert/bonousus/src/token"
)

// suppressions maps a line number to the rules silenced there. A nil
// rule slice silences every rule on that line.
type suppressions map[int][]string

// scanSuppressions collects `# nolint` markers from the file's comment
// tokens. `# nolint` alone silences all rules on its line;
// `# nolint: rule_a, rule_b` silences only the named ones.
func scanSuppressions(f *SourceFile) suppressions {
	var sup suppressions
	for _, t := range f.Tokens {
		if t.Kind != token.Comment {
			continue
		}
		body := strings.TrimSpace(strings.TrimLeft(t.Text, "#"))
		if !strings.HasPrefix(body, "nolint") {
			continue
		}
		rest := strings.TrimPrefix(body, "nolint")
		if sup == nil {
			sup = suppressions{}
		}
		rest = strings.TrimSpace(rest)
		if !strings.HasPrefix(rest, ":") {
			sup[t.Line] = nil
			continue
		}
		var names []string
		for _, name := range strings.Split(strings.TrimPrefix(rest, ":"), ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			sup[t.Line] = nil
			continue
		}
		// A second marker on the same line extends the list.
		if existing, ok := sup[t.Line]; !ok || existing != nil {
			sup[t.Line] = append(sup[t.Line], names...)
		}
	}
	return sup
}

// suppresses reports whether the finding is silenced by a marker on its
// line.
func (s suppressions) suppresses(f Finding) bool {
	names, ok := s[f.Line]
	if !ok {
		return false
	}
	if names == nil {
		return true
	}
	for _, name := range names {
		if name == f.Rule {
			return true
		}
	}
	return false
}

// applySuppressions drops findings matched by the file's markers.
func applySuppressions(findings []Finding, sup suppressions) []Finding {
	if len(sup) == 0 {
		return findings
	}
	kept := findings[:0]
	for _, f := range findings {
		if !sup.suppresses(f) {
			kept = append(kept, f)
		}
	}
	return kept
}
