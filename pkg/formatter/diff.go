package formatter

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	removedColor = color.New(color.FgRed)
	addedColor   = color.New(color.FgGreen)
	headerColor  = color.New(color.FgCyan)
)

// lineDiff computes a line-oriented diff between the current and the rendered content
func lineDiff(current, rendered string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToRunes(current, rendered)
	diffs := dmp.DiffMainRunes(src, dst, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// writeDiff prints a unified-style diff; unchanged lines are prefixed with a space
func writeDiff(w io.Writer, path, current, rendered string) {
	headerColor.Fprintf(w, "--- %s\n+++ %s (rendered)\n", path, path)
	for _, d := range lineDiff(current, rendered) {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				removedColor.Fprintf(w, "-%s\n", line)
			case diffmatchpatch.DiffInsert:
				addedColor.Fprintf(w, "+%s\n", line)
			default:
				io.WriteString(w, " "+line+"\n")
			}
		}
	}
}

// splitLines splits text into lines, dropping the empty element after a final line break
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
