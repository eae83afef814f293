// Package debugdump implements C8: a per-line 3-char tag dump (PBL/PCO/
// PCM/PDC for production Blank/Code/Comment/rustDoc, TBL/TCO/TCM/TDC for
// the test-context equivalents), grounded on the teacher's
// internal/reporters/console.go strings.Builder + optional-color
// convention.
package debugdump

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ericfisherdev/rslines/internal/lineindex"
	"github.com/ericfisherdev/rslines/internal/model"
)

// Tag returns the stable 3-char tag for one classified line.
func Tag(cat model.LineCategory, ctx model.Context) string {
	prefix := "P"
	if ctx == model.Test {
		prefix = "T"
	}
	switch cat {
	case model.Blank:
		return prefix + "BL"
	case model.Comment:
		return prefix + "CM"
	case model.Rustdoc:
		return prefix + "DC"
	default:
		return prefix + "CO"
	}
}

var tagColor = map[string]*color.Color{
	"PCO": color.New(color.FgWhite),
	"TCO": color.New(color.FgCyan),
	"PCM": color.New(color.FgGreen),
	"TCM": color.New(color.FgGreen),
	"PDC": color.New(color.FgYellow),
	"TDC": color.New(color.FgYellow),
	"PBL": color.New(color.FgHiBlack),
	"TBL": color.New(color.FgHiBlack),
}

// Dump writes one "<tag>  <source text>" line per physical line to w: the
// 3-character tag, two spaces, then the original line content, exactly
// per spec's C8 contract. useColor controls whether tags are
// ANSI-colorized; the CLI gates this on its --color setting and on
// whether stdout is a terminal.
func Dump(w io.Writer, path string, src []byte, idx *lineindex.Index, cats []model.LineCategory, regions []model.TestRegion, useColor bool) error {
	fmt.Fprintf(w, "--- %s ---\n", path)
	for line := 1; line <= len(cats); line++ {
		ctx := model.Production
		for _, r := range regions {
			if r.Contains(line) {
				ctx = model.Test
				break
			}
		}
		tag := Tag(cats[line-1], ctx)
		start, end := idx.LineBounds(line)
		text := string(src[start:end])

		if useColor {
			if c, ok := tagColor[tag]; ok {
				tag = c.Sprint(tag)
			}
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", tag, text); err != nil {
			return err
		}
	}
	return nil
}
