// Package diff computes line level differences between two versions of
// a file, using LCS alignment from go-difflib.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Kind qualifies a single line of a diff
type Kind uint8

const (
	// Unchanged lines appear in both versions
	Unchanged Kind = iota

	// Added lines appear only in the newer version
	Added

	// Removed lines appear only in the older version
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// LineEdit is one aligned line of a diff.
//
// Line is 1-based: for Removed and Unchanged lines it refers to the
// older version, for Added lines to the newer one.
type LineEdit struct {
	Kind Kind
	Line int
	Text string
}

// Metrics totals the added and removed lines between two versions
type Metrics struct {
	Additions int
	Deletions int
}

// Lines aligns the two contents line by line.
//
// The alignment is an LCS computed by difflib's sequence matcher, so
// the result is deterministic for a given pair of contents.
func Lines(older, newer []byte) []LineEdit {
	a := splitLines(older)
	b := splitLines(newer)

	matcher := difflib.NewMatcher(a, b)
	var edits []LineEdit
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for i := op.I1; i < op.I2; i++ {
				edits = append(edits, LineEdit{Kind: Unchanged, Line: i + 1, Text: a[i]})
			}
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				edits = append(edits, LineEdit{Kind: Removed, Line: i + 1, Text: a[i]})
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				edits = append(edits, LineEdit{Kind: Added, Line: j + 1, Text: b[j]})
			}
		case 'r':
			for i := op.I1; i < op.I2; i++ {
				edits = append(edits, LineEdit{Kind: Removed, Line: i + 1, Text: a[i]})
			}
			for j := op.J1; j < op.J2; j++ {
				edits = append(edits, LineEdit{Kind: Added, Line: j + 1, Text: b[j]})
			}
		}
	}
	return edits
}

// Count derives change metrics from an aligned diff
func Count(edits []LineEdit) Metrics {
	var m Metrics
	for _, e := range edits {
		switch e.Kind {
		case Added:
			m.Additions++
		case Removed:
			m.Deletions++
		}
	}
	return m
}

// Unified renders a classic unified diff between the two contents
func Unified(fromFile, toFile string, older, newer []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(older)),
		B:        difflib.SplitLines(string(newer)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	})
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
