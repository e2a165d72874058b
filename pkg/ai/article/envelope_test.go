package article

import (
	"strings"
	"testing"
)

func TestParseUpdate(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantMod     bool
		wantContent string
		wantMessage string
	}{
		{
			name:        "plain json modification",
			raw:         `{"is_modification": true, "content": "# New", "message": "rewrote the title"}`,
			wantMod:     true,
			wantContent: "# New",
			wantMessage: "rewrote the title",
		},
		{
			name:        "plain json conversation",
			raw:         `{"is_modification": false, "content": "", "message": "Looks good already."}`,
			wantMod:     false,
			wantMessage: "Looks good already.",
		},
		{
			name:        "fenced json",
			raw:         "```json\n{\"is_modification\": true, \"content\": \"body\", \"message\": \"done\"}\n```",
			wantMod:     true,
			wantContent: "body",
			wantMessage: "done",
		},
		{
			name:        "json with surrounding prose",
			raw:         "Sure, here you go:\n{\"is_modification\": true, \"content\": \"x\", \"message\": \"changed x\"}\nHope that helps!",
			wantMod:     true,
			wantContent: "x",
			wantMessage: "changed x",
		},
		{
			name:        "non-json falls back to conversation",
			raw:         "I think the intro is already strong.",
			wantMod:     false,
			wantMessage: "I think the intro is already strong.",
		},
		{
			name:        "braces but invalid json falls back",
			raw:         "The config looks like {broken",
			wantMod:     false,
			wantMessage: "The config looks like {broken",
		},
		{
			name:        "json missing message falls back",
			raw:         `{"is_modification": true, "content": "body"}`,
			wantMod:     false,
			wantMessage: `{"is_modification": true, "content": "body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseUpdate(tt.raw)
			if got.IsModification != tt.wantMod {
				t.Errorf("IsModification = %v, want %v", got.IsModification, tt.wantMod)
			}
			if got.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", got.Content, tt.wantContent)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestDeriveTitleAndExcerpt(t *testing.T) {
	content := "# The Title\n\nFirst paragraph of the article body.\n\n## Later"
	if got := deriveTitle(content); got != "The Title" {
		t.Errorf("deriveTitle = %q", got)
	}
	if got := deriveExcerpt(content); got != "First paragraph of the article body." {
		t.Errorf("deriveExcerpt = %q", got)
	}

	long := "# T\n\n" + strings.Repeat("word ", 50) + "end"
	excerpt := deriveExcerpt(long)
	if len(excerpt) > excerptLimit+3 {
		t.Errorf("excerpt too long: %d chars", len(excerpt))
	}
	if excerpt[len(excerpt)-3:] != "..." {
		t.Errorf("truncated excerpt missing ellipsis: %q", excerpt)
	}
}
