package markdown

import (
	"strings"
	"testing"
)

func TestRenderElementMaps(t *testing.T) {
	source := "para one\n\n![a](u1)\n\npara two"
	res := Render(source)

	if len(res.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(res.Images))
	}
	if len(res.Paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(res.Paragraphs))
	}

	start, end, ok := res.SourceRange(ElementImage, 0)
	if !ok || source[start:end] != "![a](u1)" {
		t.Errorf("image range = %q (ok=%v), want %q", source[start:end], ok, "![a](u1)")
	}
	start, end, ok = res.SourceRange(ElementParagraph, 0)
	if !ok || source[start:end] != "para one" {
		t.Errorf("paragraph 0 range = %q (ok=%v)", source[start:end], ok)
	}
	start, end, ok = res.SourceRange(ElementParagraph, 1)
	if !ok || source[start:end] != "para two" {
		t.Errorf("paragraph 1 range = %q (ok=%v)", source[start:end], ok)
	}

	if url, ok := res.ImageURL(0); !ok || url != "u1" {
		t.Errorf("ImageURL(0) = %q (ok=%v), want u1", url, ok)
	}
	if _, _, ok := res.SourceRange(ElementImage, 1); ok {
		t.Error("out-of-range image ordinal should not resolve")
	}
	if _, _, ok := res.SourceRange(ElementParagraph, -1); ok {
		t.Error("negative ordinal should not resolve")
	}
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "heading levels",
			source: "# One\n## Two\n### Three",
			want:   "<h1>One</h1>\n<h2>Two</h2>\n<h3>Three</h3>\n",
		},
		{
			name:   "four hashes is a paragraph",
			source: "#### deep",
			want:   `<p data-paragraph-ordinal="0">#### deep</p>` + "\n",
		},
		{
			name:   "bold and italic",
			source: "a **b** and *c*",
			want:   `<p data-paragraph-ordinal="0">a <strong>b</strong> and <em>c</em></p>` + "\n",
		},
		{
			name:   "inline code",
			source: "run `go env` now",
			want:   `<p data-paragraph-ordinal="0">run <code>go env</code> now</p>` + "\n",
		},
		{
			name:   "link",
			source: "see [docs](https://x.test/d)",
			want:   `<p data-paragraph-ordinal="0">see <a href="https://x.test/d">docs</a></p>` + "\n",
		},
		{
			name:   "unmatched delimiters stay literal",
			source: "a ** b ` c [d",
			want:   `<p data-paragraph-ordinal="0">a ** b ` + "`" + ` c [d</p>` + "\n",
		},
		{
			name:   "html escaped",
			source: "1 < 2 & <script>",
			want:   `<p data-paragraph-ordinal="0">1 &lt; 2 &amp; &lt;script&gt;</p>` + "\n",
		},
		{
			name:   "code fence",
			source: "```go\nx := 1\n```",
			want:   `<pre><code class="language-go">x := 1</code></pre>` + "\n",
		},
		{
			name:   "unmatched fence is literal",
			source: "```go\nno close",
			want:   `<p data-paragraph-ordinal="0">` + "```" + `go` + "\n" + `no close</p>` + "\n",
		},
		{
			name:   "blockquote",
			source: "> quoted line",
			want:   "<blockquote>quoted line</blockquote>\n",
		},
		{
			name:   "unordered list",
			source: "- a\n- b",
			want:   "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n",
		},
		{
			name:   "ordered list",
			source: "1. a\n2. b",
			want:   "<ol>\n<li>a</li>\n<li>b</li>\n</ol>\n",
		},
		{
			name:   "empty source",
			source: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.source).HTML
			if got != tt.want {
				t.Errorf("Render(%q).HTML =\n%q\nwant\n%q", tt.source, got, tt.want)
			}
		})
	}
}

func TestRenderImageAttributes(t *testing.T) {
	res := Render("![first](u1)\n\n![second](u2)")
	for ordinal, wantURL := range []string{"u1", "u2"} {
		marker := `data-image-ordinal="` + string(rune('0'+ordinal)) + `"`
		if !strings.Contains(res.HTML, marker) {
			t.Errorf("HTML missing %s:\n%s", marker, res.HTML)
		}
		if url, ok := res.ImageURL(ordinal); !ok || url != wantURL {
			t.Errorf("ImageURL(%d) = %q, want %q", ordinal, url, wantURL)
		}
	}
}

func TestRenderInlineImageRange(t *testing.T) {
	source := "before ![pic](u3) after"
	res := Render(source)
	if len(res.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(res.Images))
	}
	start, end, ok := res.SourceRange(ElementImage, 0)
	if !ok || source[start:end] != "![pic](u3)" {
		t.Errorf("inline image range = %q (ok=%v)", source[start:end], ok)
	}
}

func TestParagraphOrdinalsSkipOtherBlocks(t *testing.T) {
	res := Render("# head\n\npara a\n\n- item\n\npara b")
	if len(res.Paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(res.Paragraphs))
	}
	if res.Paragraphs[1].Ordinal != 1 {
		t.Errorf("second paragraph ordinal = %d, want 1", res.Paragraphs[1].Ordinal)
	}
	if !strings.Contains(res.HTML, `data-paragraph-ordinal="1">para b`) {
		t.Errorf("HTML ordinal attribute mismatch:\n%s", res.HTML)
	}
}
