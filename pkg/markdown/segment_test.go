package markdown

import (
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantKinds []SectionKind
	}{
		{
			name:      "empty document",
			source:    "",
			wantKinds: nil,
		},
		{
			name:      "single paragraph",
			source:    "just one line",
			wantKinds: []SectionKind{SectionParagraphRun},
		},
		{
			name:   "heading splits runs",
			source: "# H\nbody1\nbody2\n![a](u)\nbody3",
			wantKinds: []SectionKind{
				SectionHeading,
				SectionParagraphRun,
				SectionImage,
				SectionParagraphRun,
			},
		},
		{
			name:   "consecutive headings",
			source: "# One\n## Two",
			wantKinds: []SectionKind{
				SectionHeading,
				SectionHeading,
			},
		},
		{
			name:   "image between paragraphs",
			source: "before\n![alt](https://x/y.png)\nafter",
			wantKinds: []SectionKind{
				SectionParagraphRun,
				SectionImage,
				SectionParagraphRun,
			},
		},
		{
			name:      "blank lines stay in run",
			source:    "a\n\nb",
			wantKinds: []SectionKind{SectionParagraphRun},
		},
		{
			name:   "deep heading still a heading section",
			source: "#### deep\ntext",
			wantKinds: []SectionKind{
				SectionHeading,
				SectionParagraphRun,
			},
		},
		{
			name:   "malformed image line still an image section",
			source: "![broken\ntext",
			wantKinds: []SectionKind{
				SectionImage,
				SectionParagraphRun,
			},
		},
		{
			name:      "indented hash stays in run",
			source:    "  # indented",
			wantKinds: []SectionKind{SectionParagraphRun},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.source)
			if len(got) != len(tt.wantKinds) {
				t.Fatalf("Segment() returned %d sections, want %d: %+v", len(got), len(tt.wantKinds), got)
			}
			for i, s := range got {
				if s.Kind != tt.wantKinds[i] {
					t.Errorf("section[%d].Kind = %q, want %q", i, s.Kind, tt.wantKinds[i])
				}
			}
		})
	}
}

func TestSegmentContent(t *testing.T) {
	source := "# H\nbody1\nbody2\n![a](u)\nbody3"
	got := Segment(source)
	if len(got) != 4 {
		t.Fatalf("got %d sections, want 4", len(got))
	}
	if got[0].Text() != "# H" {
		t.Errorf("heading text = %q", got[0].Text())
	}
	if got[1].Text() != "body1\nbody2" {
		t.Errorf("first run text = %q", got[1].Text())
	}
	if got[2].Text() != "![a](u)" {
		t.Errorf("image text = %q", got[2].Text())
	}
	if got[3].Text() != "body3" {
		t.Errorf("second run text = %q", got[3].Text())
	}
	if got[3].StartLine != 4 {
		t.Errorf("second run StartLine = %d, want 4", got[3].StartLine)
	}
}

func TestSegmentRoundTrip(t *testing.T) {
	docs := []string{
		"just one line",
		"# H\nbody1\nbody2\n![a](u)\nbody3",
		"a\n\nb\n\n# End",
		"![only](img)",
		"trailing blank\n",
		"\nleading blank",
	}
	for _, doc := range docs {
		sections := Segment(doc)
		if got := Reassemble(sections); got != doc {
			t.Errorf("round trip mismatch:\n in: %q\nout: %q", doc, got)
		}
		// every line lands in exactly one section
		total := 0
		for _, s := range sections {
			total += len(s.SourceLines)
		}
		if want := len(strings.Split(doc, "\n")); total != want {
			t.Errorf("line coverage for %q: got %d lines across sections, want %d", doc, total, want)
		}
	}
}
