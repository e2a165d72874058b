package markdown

import "testing"

func TestInsertImage(t *testing.T) {
	tests := []struct {
		name   string
		source string
		offset int
		want   string
	}{
		{
			name:   "at line boundary",
			source: "# Title\nbody",
			offset: 8,
			want:   "# Title\n![alt](u)\nbody",
		},
		{
			name:   "mid line breaks the line",
			source: "hello world",
			offset: 5,
			want:   "hello\n![alt](u)\n world",
		},
		{
			name:   "at end of document",
			source: "# Title",
			offset: 7,
			want:   "# Title\n![alt](u)\n",
		},
		{
			name:   "empty document",
			source: "",
			offset: 0,
			want:   "![alt](u)\n",
		},
		{
			name:   "offset clamped past end",
			source: "a",
			offset: 99,
			want:   "a\n![alt](u)\n",
		},
		{
			name:   "negative offset clamped to start",
			source: "a",
			offset: -1,
			want:   "![alt](u)\na",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InsertImage(tt.source, tt.offset, "alt", "u"); got != tt.want {
				t.Errorf("InsertImage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceImage(t *testing.T) {
	source := "# T\n![first](a.png)\ntext\n![second](b.png)"

	got, ok := ReplaceImage(source, 1, "new", "c.png")
	if !ok {
		t.Fatal("ReplaceImage reported no image at ordinal 1")
	}
	want := "# T\n![first](a.png)\ntext\n![new](c.png)"
	if got != want {
		t.Errorf("ReplaceImage = %q, want %q", got, want)
	}
}

func TestReplaceImageInline(t *testing.T) {
	source := "see ![icon](i.png) here"
	got, ok := ReplaceImage(source, 0, "logo", "l.png")
	if !ok {
		t.Fatal("inline image not found")
	}
	if want := "see ![logo](l.png) here"; got != want {
		t.Errorf("ReplaceImage = %q, want %q", got, want)
	}
}

func TestReplaceImageOutOfRange(t *testing.T) {
	source := "no images here"
	got, ok := ReplaceImage(source, 0, "a", "u")
	if ok {
		t.Error("ReplaceImage reported success with no images")
	}
	if got != source {
		t.Errorf("source changed on failed replace: %q", got)
	}
}
