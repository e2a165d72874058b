package diff

import (
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		modified  string
		wantTypes []LineType
	}{
		{
			name:      "identical single line",
			original:  "same",
			modified:  "same",
			wantTypes: []LineType{LineUnchanged},
		},
		{
			name:      "empty both sides is one unchanged line",
			original:  "",
			modified:  "",
			wantTypes: []LineType{LineUnchanged},
		},
		{
			name:      "pure insertion",
			original:  "a\nc",
			modified:  "a\nb\nc",
			wantTypes: []LineType{LineUnchanged, LineAdded, LineUnchanged},
		},
		{
			name:      "pure deletion",
			original:  "a\nb\nc",
			modified:  "a\nc",
			wantTypes: []LineType{LineUnchanged, LineRemoved, LineUnchanged},
		},
		{
			name:      "replacement",
			original:  "a\nold\nc",
			modified:  "a\nnew\nc",
			wantTypes: []LineType{LineUnchanged, LineRemoved, LineAdded, LineUnchanged},
		},
		{
			name:      "deletion wins resync tie",
			original:  "x\ny",
			modified:  "y\nx",
			wantTypes: []LineType{LineRemoved, LineUnchanged, LineAdded},
		},
		{
			name:     "rewrite beyond lookahead pairs lines",
			original: "a\nb\nc\nd\nz",
			modified: "p\nq\nr\ns\nz",
			wantTypes: []LineType{
				LineRemoved, LineAdded,
				LineRemoved, LineAdded,
				LineRemoved, LineAdded,
				LineRemoved, LineAdded,
				LineUnchanged,
			},
		},
		{
			name:      "append to end",
			original:  "a",
			modified:  "a\nb",
			wantTypes: []LineType{LineUnchanged, LineAdded},
		},
		{
			name:      "resync run emitted in one step",
			original:  "a\nc",
			modified:  "x\nc\na",
			wantTypes: []LineType{LineAdded, LineAdded, LineUnchanged, LineRemoved},
		},
		{
			name:      "removed run emitted in one step",
			original:  "p\nq\na",
			modified:  "a",
			wantTypes: []LineType{LineRemoved, LineRemoved, LineUnchanged},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.original, tt.modified)
			if len(got) != len(tt.wantTypes) {
				t.Fatalf("got %d lines, want %d: %+v", len(got), len(tt.wantTypes), got)
			}
			for i, ln := range got {
				if ln.Type != tt.wantTypes[i] {
					t.Errorf("line %d type = %q, want %q (%+v)", i, ln.Type, tt.wantTypes[i], ln)
				}
			}
		})
	}
}

func TestComputeLineNumbers(t *testing.T) {
	got := Compute("a\nold\nc", "a\nnew\nc")
	want := []Line{
		{Type: LineUnchanged, Content: "a", OldLine: 1, NewLine: 1},
		{Type: LineRemoved, Content: "old", OldLine: 2},
		{Type: LineAdded, Content: "new", NewLine: 2},
		{Type: LineUnchanged, Content: "c", OldLine: 3, NewLine: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestComputeResyncRunContent(t *testing.T) {
	got := Compute("a\nc", "x\nc\na")
	want := []Line{
		{Type: LineAdded, Content: "x", NewLine: 1},
		{Type: LineAdded, Content: "c", NewLine: 2},
		{Type: LineUnchanged, Content: "a", OldLine: 1, NewLine: 3},
		{Type: LineRemoved, Content: "c", OldLine: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestComputeRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"a\nb\nc", "a\nB\nc\nd"},
		{"", "something"},
		{"one\ntwo\nthree\nfour", "four\nthree\ntwo\none"},
		{"x", ""},
		{"intro\n\nbody\n\noutro", "intro\n\nrewritten body\n\noutro\nps"},
	}
	for _, p := range pairs {
		lines := Compute(p[0], p[1])
		o, m := Reconstruct(lines)
		if o != p[0] {
			t.Errorf("original not reconstructed:\n in: %q\nout: %q", p[0], o)
		}
		if m != p[1] {
			t.Errorf("modified not reconstructed:\n in: %q\nout: %q", p[1], m)
		}
	}
}

func TestComputeIdempotentOnEqualInputs(t *testing.T) {
	doc := "line 1\nline 2\n\nline 4"
	for _, ln := range Compute(doc, doc) {
		if ln.Type != LineUnchanged {
			t.Fatalf("diff of identical documents produced %+v", ln)
		}
	}
	if s := Summarize(Compute(doc, doc)); s.Additions != 0 || s.Deletions != 0 {
		t.Errorf("stats for identical documents = %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Compute("a\nb", "a\nc\nd"))
	if s.Deletions != 1 {
		t.Errorf("deletions = %d, want 1", s.Deletions)
	}
	if s.Additions != 2 {
		t.Errorf("additions = %d, want 2", s.Additions)
	}
}

func TestComputeLongDocumentStaysLinear(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5000; i++ {
		sb.WriteString("line\n")
	}
	doc := sb.String()
	lines := Compute(doc, doc+"tail")
	if got := len(lines); got != 5002 {
		t.Errorf("got %d lines, want 5002", got)
	}
}
