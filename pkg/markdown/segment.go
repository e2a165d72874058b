package markdown

import "strings"

// SectionKind classifies a segmented slice of a document.
type SectionKind string

const (
	SectionHeading      SectionKind = "heading"
	SectionImage        SectionKind = "image"
	SectionParagraphRun SectionKind = "paragraph-run"
)

// Section is a contiguous run of source lines selectable as a unit in
// the editor. StartLine is the 0-based line index of the first line.
type Section struct {
	Kind        SectionKind `json:"kind"`
	SourceLines []string    `json:"source_lines"`
	StartLine   int         `json:"start_line"`
}

// Text reassembles the section's lines with newline separators.
func (s Section) Text() string {
	return strings.Join(s.SourceLines, "\n")
}

// Segment splits a Markdown document into an ordered list of sections.
// Classification is by raw line prefix: a line starting with "#" is a
// heading section and a line starting with "![" is an image section,
// even when the rest of the line is malformed. Everything else
// accumulates into paragraph-run sections, blank lines included. Every
// input line lands in exactly one section, so concatenating all
// sections in order reproduces the document.
func Segment(source string) []Section {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")

	var sections []Section
	var run []string
	runStart := 0

	flush := func() {
		if len(run) == 0 {
			return
		}
		sections = append(sections, Section{
			Kind:        SectionParagraphRun,
			SourceLines: run,
			StartLine:   runStart,
		})
		run = nil
	}

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "#"):
			flush()
			sections = append(sections, Section{
				Kind:        SectionHeading,
				SourceLines: []string{line},
				StartLine:   i,
			})
		case strings.HasPrefix(line, "!["):
			flush()
			sections = append(sections, Section{
				Kind:        SectionImage,
				SourceLines: []string{line},
				StartLine:   i,
			})
		default:
			if len(run) == 0 {
				runStart = i
			}
			run = append(run, line)
		}
	}
	flush()
	return sections
}

// Reassemble joins sections back into a single document. It is the
// inverse of Segment for any input.
func Reassemble(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, s.SourceLines...)
	}
	return strings.Join(parts, "\n")
}
