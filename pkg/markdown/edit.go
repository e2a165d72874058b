package markdown

import (
	"fmt"
	"strings"
)

// ImageMarkdown formats an image reference line.
func ImageMarkdown(alt, url string) string {
	return fmt.Sprintf("![%s](%s)", alt, url)
}

// InsertImage splices an image reference into source at the given byte
// offset, typically the editor cursor. The reference always lands on its
// own line; newlines are added around it only where the surrounding text
// does not already provide them. Offsets outside the source are clamped.
func InsertImage(source string, offset int, alt, url string) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}

	var sb strings.Builder
	sb.WriteString(source[:offset])
	if offset > 0 && source[offset-1] != '\n' {
		sb.WriteString("\n")
	}
	sb.WriteString(ImageMarkdown(alt, url))
	if offset == len(source) || source[offset] != '\n' {
		sb.WriteString("\n")
	}
	sb.WriteString(source[offset:])
	return sb.String()
}

// ReplaceImage swaps the image at the given document-order ordinal
// (0-based, counting block and inline images alike) for a new reference.
// The replacement covers exactly the source range of the old reference, so
// surrounding text is untouched. ok is false when no image exists at that
// ordinal and source is returned unchanged.
func ReplaceImage(source string, ordinal int, alt, url string) (out string, ok bool) {
	start, end, ok := Render(source).SourceRange(ElementImage, ordinal)
	if !ok {
		return source, false
	}
	return source[:start] + ImageMarkdown(alt, url) + source[end:], true
}
