// Package diff computes a line-oriented preview diff between two versions
// of a document. It favors predictable output over minimal edit scripts:
// the scan is greedy with a short resync lookahead, which keeps runtime
// linear in document length and produces stable previews for the approval
// UI regardless of input size.
package diff

import "strings"

// lookahead bounds the resync scan. A replaced run longer than this renders
// as paired remove/add lines instead of a detected move, which is the
// desired presentation for heavy rewrites.
const lookahead = 3

// LineType classifies one row of the computed diff.
type LineType string

const (
	LineAdded     LineType = "added"
	LineRemoved   LineType = "removed"
	LineUnchanged LineType = "unchanged"
)

// Line is a single row of the diff. OldLine and NewLine are 1-based and
// zero when the row has no counterpart on that side.
type Line struct {
	Type    LineType `json:"type"`
	Content string   `json:"content"`
	OldLine int      `json:"old_line,omitempty"`
	NewLine int      `json:"new_line,omitempty"`
}

// Stats summarizes a diff for badge display.
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// Compute diffs original against modified line by line. Equal lines advance
// both cursors; on a mismatch it looks ahead up to three lines for a resync
// point, checking the original side first at each distance so deletions win
// ties over insertions. A resync at distance k emits the whole run of k
// skipped lines in one step before the scan resumes. When no resync is
// found within range the pair is emitted as a removal followed by an
// addition.
//
// Note strings.Split semantics: an empty document is one empty line, never
// zero lines, so diffing "" against "" yields a single unchanged row.
func Compute(original, modified string) []Line {
	oldLines := strings.Split(original, "\n")
	newLines := strings.Split(modified, "\n")

	var out []Line
	i, j := 0, 0
	for i < len(oldLines) || j < len(newLines) {
		switch {
		case i >= len(oldLines):
			out = append(out, Line{Type: LineAdded, Content: newLines[j], NewLine: j + 1})
			j++

		case j >= len(newLines):
			out = append(out, Line{Type: LineRemoved, Content: oldLines[i], OldLine: i + 1})
			i++

		case oldLines[i] == newLines[j]:
			out = append(out, Line{Type: LineUnchanged, Content: oldLines[i], OldLine: i + 1, NewLine: j + 1})
			i++
			j++

		default:
			removeRun, addRun := 0, 0
			for k := 1; k <= lookahead; k++ {
				if i+k < len(oldLines) && oldLines[i+k] == newLines[j] {
					removeRun = k
					break
				}
				if j+k < len(newLines) && oldLines[i] == newLines[j+k] {
					addRun = k
					break
				}
			}
			switch {
			case removeRun > 0:
				for k := 0; k < removeRun; k++ {
					out = append(out, Line{Type: LineRemoved, Content: oldLines[i], OldLine: i + 1})
					i++
				}
			case addRun > 0:
				for k := 0; k < addRun; k++ {
					out = append(out, Line{Type: LineAdded, Content: newLines[j], NewLine: j + 1})
					j++
				}
			default:
				out = append(out, Line{Type: LineRemoved, Content: oldLines[i], OldLine: i + 1})
				out = append(out, Line{Type: LineAdded, Content: newLines[j], NewLine: j + 1})
				i++
				j++
			}
		}
	}
	return out
}

// Summarize counts added and removed rows.
func Summarize(lines []Line) Stats {
	var s Stats
	for _, ln := range lines {
		switch ln.Type {
		case LineAdded:
			s.Additions++
		case LineRemoved:
			s.Deletions++
		}
	}
	return s
}

// Reconstruct rebuilds both sides of a diff, original from unchanged and
// removed rows, modified from unchanged and added rows.
func Reconstruct(lines []Line) (original, modified string) {
	var o, m []string
	for _, ln := range lines {
		switch ln.Type {
		case LineUnchanged:
			o = append(o, ln.Content)
			m = append(m, ln.Content)
		case LineRemoved:
			o = append(o, ln.Content)
		case LineAdded:
			m = append(m, ln.Content)
		}
	}
	return strings.Join(o, "\n"), strings.Join(m, "\n")
}
