package reporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/rslines/internal/model"
)

// Text writes report to w in the plain-text layout: a Summary: block
// followed by a Files: block, two-space indent per level, with the
// section headings Total:/Production:/Test: and metric labels All
// lines/Blank lines/Comment lines/Rustdoc lines/Code lines, grounded on
// the teacher's console.go strings.Builder convention.
func Text(w io.Writer, report model.Report) error {
	var b strings.Builder

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  Files: %d\n", report.Summary.Files)
	writeLineStatsSection(&b, 1, "Total", report.Summary.Total)
	writeLineStatsSection(&b, 1, "Production", report.Summary.Production)
	writeLineStatsSection(&b, 1, "Test", report.Summary.Test)

	b.WriteString("Files:\n")
	for _, f := range report.Files {
		fmt.Fprintf(&b, "  %s\n", f.Path)
		writeLineStatsSection(&b, 2, "Total", f.Total)
		writeLineStatsSection(&b, 2, "Production", f.Production)
		writeLineStatsSection(&b, 2, "Test", f.Test)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLineStatsSection(b *strings.Builder, depth int, heading string, ls model.LineStats) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s:\n", indent, heading)
	metricIndent := strings.Repeat("  ", depth+1)
	fmt.Fprintf(b, "%sAll lines: %d\n", metricIndent, ls.All)
	fmt.Fprintf(b, "%sBlank lines: %d\n", metricIndent, ls.Blank)
	fmt.Fprintf(b, "%sComment lines: %d\n", metricIndent, ls.Comment)
	fmt.Fprintf(b, "%sRustdoc lines: %d\n", metricIndent, ls.Rustdoc)
	fmt.Fprintf(b, "%sCode lines: %d\n", metricIndent, ls.Code)
}
