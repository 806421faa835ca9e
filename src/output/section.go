package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

const sectionWidth = 61 // inner width between │ and line end

// Section renders a box-drawing framed output section.
type Section struct {
	w io.Writer
}

var headerColor = color.New(color.Faint, color.FgCyan)

// NewSection creates a section and writes its header.
// If elapsed is non-zero, it appears right-aligned in the header.
func NewSection(w io.Writer, name string, elapsed time.Duration) *Section {
	s := &Section{w: w}
	s.writeHeader(name, elapsed)
	return s
}

// Row writes a content line inside the section frame.
func (s *Section) Row(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(s.w, "    │ %s\n", line)
}

// Separator writes a mid-section divider.
func (s *Section) Separator() {
	fmt.Fprintf(s.w, "    ├%s\n", strings.Repeat("─", sectionWidth))
}

// Close writes the section footer.
func (s *Section) Close() {
	fmt.Fprintf(s.w, "    └%s\n", strings.Repeat("─", sectionWidth))
}

// writeHeader renders: ── Name ──────────────────── elapsed ──
func (s *Section) writeHeader(name string, elapsed time.Duration) {
	label := fmt.Sprintf("── %s ", name)

	var suffix string
	if elapsed > 0 {
		suffix = fmt.Sprintf(" %s ──", elapsed.Round(time.Millisecond))
	} else {
		suffix = "──"
	}

	fill := sectionWidth + 4 - len(label) - len(suffix)
	if fill < 1 {
		fill = 1
	}

	fmt.Fprintf(s.w, "\n    %s\n", headerColor.Sprintf("%s%s%s", label, strings.Repeat("─", fill), suffix))
}
