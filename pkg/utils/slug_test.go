package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading & Trailing!  ", "leading-trailing"},
		{"Go 1.22 Release Notes", "go-1-22-release-notes"},
		{"already-slugged", "already-slugged"},
		{"___", ""},
		{"", ""},
		{"Ünïcödé Tïtle", "ncd-ttle"},
		{"Multiple   spaces -- and dashes", "multiple-spaces-and-dashes"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
