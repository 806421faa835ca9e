package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lorenzwalthert/bonousus/src/style"
)

func init() {
	style.Register("filename", func() style.Rule {
		return &filenameRule{cfg: defaultFileNameConfig()}
	})
}

// FileNameConfig is the naming convention for paths. Extensions lists
// the canonical spelling of each recognized suffix; a file whose suffix
// matches one case-insensitively but not exactly is flagged.
type FileNameConfig struct {
	Extensions []string `json:"extensions"`
}

func defaultFileNameConfig() FileNameConfig {
	return FileNameConfig{Extensions: []string{".R", ".Rmd", ".Rds", ".Rproj"}}
}

// filenameRule operates on path strings only, independent of file
// content, so it still reports on files whose contents fail to read or
// tokenize.
type filenameRule struct {
	cfg FileNameConfig
}

func (r *filenameRule) Name() string                    { return "filename" }
func (r *filenameRule) DefaultSeverity() style.Severity { return style.SeverityWarning }
func (r *filenameRule) DefaultEnabled() bool            { return true }

// Configure implements style.ConfigurableRule.
func (r *filenameRule) Configure(opts map[string]any) error {
	cfg := defaultFileNameConfig()
	if err := decodeOptions(r.Name(), opts, &cfg); err != nil {
		return err
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("filename: extension %q must start with a dot", ext)
		}
	}
	r.cfg = cfg
	return nil
}

func (r *filenameRule) Check(f *style.SourceFile) []style.Finding {
	return ValidateFileName(f.Path, r.cfg)
}

// CheckProject implements style.ProjectRule: the case-fold collision
// check needs the whole path set.
func (r *filenameRule) CheckProject(paths []string) []style.Finding {
	return CheckPathCollisions(paths)
}

// ValidateFileName checks a single path against the convention. It
// never reads the file.
func ValidateFileName(path string, cfg FileNameConfig) []style.Finding {
	var findings []style.Finding
	add := func(msg string) {
		findings = append(findings, style.Finding{
			Rule:     "filename",
			File:     path,
			Line:     1,
			Col:      1,
			Severity: style.SeverityWarning,
			Message:  msg,
		})
	}

	base := filepath.Base(filepath.ToSlash(path))
	for _, ch := range base {
		if !allowedFileNameChar(ch) {
			add(fmt.Sprintf("file name contains disallowed character %q", ch))
			break
		}
	}

	ext := filepath.Ext(base)
	if ext != "" {
		for _, canonical := range cfg.Extensions {
			if strings.EqualFold(ext, canonical) && ext != canonical {
				add(fmt.Sprintf("extension %s should be written %s", ext, canonical))
				break
			}
		}
	}
	return findings
}

func allowedFileNameChar(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	case ch == '_' || ch == '-' || ch == '.':
		return true
	}
	return false
}

// CheckPathCollisions detects case-insensitive path collisions across a
// project: one finding per collision, naming both paths.
func CheckPathCollisions(paths []string) []style.Finding {
	seen := make(map[string]string, len(paths)) // casefolded path -> original
	var findings []style.Finding
	for _, p := range paths {
		lower := strings.ToLower(filepath.ToSlash(p))
		if original, exists := seen[lower]; exists && original != p {
			findings = append(findings, style.Finding{
				Rule:     "filename",
				File:     p,
				Line:     1,
				Col:      1,
				Severity: style.SeverityWarning,
				Message:  fmt.Sprintf("path collides with %s when case is folded", original),
			})
		} else {
			seen[lower] = p
		}
	}
	return findings
}
