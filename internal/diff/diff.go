package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/engcheck/internal/checklist"
	"github.com/dshills/engcheck/internal/schema"
)

// Change is one checklist line present in only one of two checklists.
type Change struct {
	Added bool
	Line  string // "[ID] description"
}

// Checklists compares two checklists line by line, where each item renders
// as "[ID] description". A changed description shows as a removal followed
// by an addition. Unchanged items are omitted.
func Checklists(old, updated []schema.Standard) []Change {
	before := joinLines(checklist.Lines(old))
	after := joinLines(checklist.Lines(updated))
	if before == after {
		return nil
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Change
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if line == "" {
				continue
			}
			out = append(out, Change{Added: d.Type == diffmatchpatch.DiffInsert, Line: line})
		}
	}
	return out
}

// Format renders changes as "+ line" / "- line", one per line.
func Format(changes []Change) string {
	var sb strings.Builder
	for _, c := range changes {
		if c.Added {
			sb.WriteString("+ ")
		} else {
			sb.WriteString("- ")
		}
		sb.WriteString(c.Line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
