package markdown

import (
	"fmt"
	"html"
	"strings"
)

// ElementKind selects which element map a SourceRange lookup addresses.
type ElementKind int

const (
	ElementImage ElementKind = iota
	ElementParagraph
)

// ElementRange maps a rendered element back to a byte range of the source.
// Ordinals are 0-based in document order and are only valid against the
// exact source string the Result was rendered from; any edit invalidates
// them, so callers must re-render before resolving a click.
type ElementRange struct {
	Ordinal int    `json:"ordinal"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	URL     string `json:"url,omitempty"`
}

// Result is the output of Render: presentation HTML plus the element maps
// that let a host UI wire click-to-edit without walking the rendered tree.
// The HTML is never parsed back; all round-tripping happens on the source.
type Result struct {
	HTML       string         `json:"html"`
	Images     []ElementRange `json:"images"`
	Paragraphs []ElementRange `json:"paragraphs"`
}

// SourceRange resolves an element ordinal back to source byte offsets.
func (r *Result) SourceRange(kind ElementKind, ordinal int) (start, end int, ok bool) {
	var ranges []ElementRange
	switch kind {
	case ElementImage:
		ranges = r.Images
	case ElementParagraph:
		ranges = r.Paragraphs
	default:
		return 0, 0, false
	}
	if ordinal < 0 || ordinal >= len(ranges) {
		return 0, 0, false
	}
	return ranges[ordinal].Start, ranges[ordinal].End, true
}

// ImageURL returns the resolved URL of the Nth image in document order.
func (r *Result) ImageURL(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= len(r.Images) {
		return "", false
	}
	return r.Images[ordinal].URL, true
}

type renderState struct {
	sb         strings.Builder
	images     []ElementRange
	paragraphs []ElementRange
}

// Render converts Markdown source into interactive HTML. Images and
// paragraph blocks are tagged with their document-order ordinal so clicks on
// rendered elements can be resolved back to source ranges via the maps on
// the returned Result. Malformed syntax is never an error: unmatched
// delimiters pass through as escaped literal text.
func Render(source string) *Result {
	st := &renderState{}
	for _, block := range Tokenize(source) {
		st.renderBlock(block)
	}
	return &Result{
		HTML:       st.sb.String(),
		Images:     st.images,
		Paragraphs: st.paragraphs,
	}
}

func (st *renderState) renderBlock(b Block) {
	switch b.Kind {
	case BlockHeading:
		text := b.Lines[0][b.Level+1:]
		st.sb.WriteString(fmt.Sprintf("<h%d>", b.Level))
		st.renderInline(text, b.Start+b.Level+1)
		st.sb.WriteString(fmt.Sprintf("</h%d>\n", b.Level))

	case BlockImage:
		alt, url, _ := parseImage(b.Lines[0], 0)
		st.writeImage(alt, url, b.Start, b.End)
		st.sb.WriteString("\n")

	case BlockCodeFence:
		st.sb.WriteString("<pre><code")
		if b.Lang != "" {
			st.sb.WriteString(` class="language-` + html.EscapeString(b.Lang) + `"`)
		}
		st.sb.WriteString(">")
		st.sb.WriteString(html.EscapeString(strings.Join(b.Lines, "\n")))
		st.sb.WriteString("</code></pre>\n")

	case BlockBlockquote:
		st.sb.WriteString("<blockquote>")
		for i, line := range b.Lines {
			if i > 0 {
				st.sb.WriteString("\n")
			}
			st.renderInline(strings.TrimPrefix(line, "> "), b.LineStarts[i]+2)
		}
		st.sb.WriteString("</blockquote>\n")

	case BlockUnorderedList, BlockOrderedList:
		openTag, closeTag := "<ul>", "</ul>"
		if b.Kind == BlockOrderedList {
			openTag, closeTag = "<ol>", "</ol>"
		}
		st.sb.WriteString(openTag + "\n")
		for i, line := range b.Lines {
			marker := listMarkerLen(line)
			st.sb.WriteString("<li>")
			st.renderInline(strings.TrimLeft(line, " ")[marker:], b.LineStarts[i]+leadingSpaces(line)+marker)
			st.sb.WriteString("</li>\n")
		}
		st.sb.WriteString(closeTag + "\n")

	case BlockParagraph:
		ordinal := len(st.paragraphs)
		st.paragraphs = append(st.paragraphs, ElementRange{Ordinal: ordinal, Start: b.Start, End: b.End})
		st.sb.WriteString(fmt.Sprintf(`<p data-paragraph-ordinal="%d">`, ordinal))
		for i, line := range b.Lines {
			if i > 0 {
				st.sb.WriteString("\n")
			}
			st.renderInline(line, b.LineStarts[i])
		}
		st.sb.WriteString("</p>\n")
	}
}

func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// listMarkerLen returns the length of the "- " or "N. " marker of a
// left-trimmed list item line.
func listMarkerLen(line string) int {
	trimmed := strings.TrimLeft(line, " ")
	if strings.HasPrefix(trimmed, "- ") {
		return 2
	}
	n := 0
	for n < len(trimmed) && trimmed[n] >= '0' && trimmed[n] <= '9' {
		n++
	}
	return n + 2 // digits + ". "
}

func (st *renderState) writeImage(alt, url string, start, end int) {
	ordinal := len(st.images)
	st.images = append(st.images, ElementRange{Ordinal: ordinal, Start: start, End: end, URL: url})
	st.sb.WriteString(fmt.Sprintf(
		`<img src="%s" alt="%s" data-image-ordinal="%d" data-image-url="%s">`,
		html.EscapeString(url), html.EscapeString(alt), ordinal, html.EscapeString(url),
	))
}

// renderInline renders span-level syntax. Precedence is positional within a
// single forward scan, with the image check before the link check so that
// ![alt](url) is never consumed as a link prefixed by a literal bang.
// srcOffset is the byte offset of text[0] within the document source, used
// to register inline image ranges.
func (st *renderState) renderInline(text string, srcOffset int) {
	i := 0
	for i < len(text) {
		switch {
		case text[i] == '!' && i+1 < len(text) && text[i+1] == '[':
			alt, url, ok := parseImage(text, i)
			if !ok {
				st.writeEscaped(text[i])
				i++
				continue
			}
			span := imageSpan(text, i)
			st.writeImage(alt, url, srcOffset+i, srcOffset+i+span)
			i += span

		case text[i] == '[':
			label, url, span, ok := parseLink(text, i)
			if !ok {
				st.writeEscaped(text[i])
				i++
				continue
			}
			st.sb.WriteString(`<a href="` + html.EscapeString(url) + `">`)
			st.sb.WriteString(html.EscapeString(label))
			st.sb.WriteString("</a>")
			i += span

		case strings.HasPrefix(text[i:], "**"):
			end := strings.Index(text[i+2:], "**")
			if end < 0 || end == 0 {
				st.writeEscaped(text[i])
				i++
				continue
			}
			st.sb.WriteString("<strong>")
			st.renderInline(text[i+2:i+2+end], srcOffset+i+2)
			st.sb.WriteString("</strong>")
			i += 2 + end + 2

		case text[i] == '*':
			end := strings.IndexByte(text[i+1:], '*')
			if end <= 0 {
				st.writeEscaped(text[i])
				i++
				continue
			}
			st.sb.WriteString("<em>")
			st.renderInline(text[i+1:i+1+end], srcOffset+i+1)
			st.sb.WriteString("</em>")
			i += 1 + end + 1

		case text[i] == '`':
			end := strings.IndexByte(text[i+1:], '`')
			if end <= 0 {
				// Unmatched or empty span stays literal.
				st.writeEscaped(text[i])
				i++
				continue
			}
			st.sb.WriteString("<code>")
			st.sb.WriteString(html.EscapeString(text[i+1 : i+1+end]))
			st.sb.WriteString("</code>")
			i += 1 + end + 1

		default:
			st.writeEscaped(text[i])
			i++
		}
	}
}

func parseLink(text string, pos int) (label, url string, span int, ok bool) {
	if text[pos] != '[' {
		return "", "", 0, false
	}
	closeBracket := strings.IndexByte(text[pos+1:], ']')
	if closeBracket < 0 {
		return "", "", 0, false
	}
	labelEnd := pos + 1 + closeBracket
	if labelEnd+1 >= len(text) || text[labelEnd+1] != '(' {
		return "", "", 0, false
	}
	closeParen := strings.IndexByte(text[labelEnd+2:], ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	label = text[pos+1 : labelEnd]
	url = text[labelEnd+2 : labelEnd+2+closeParen]
	if label == "" || url == "" {
		return "", "", 0, false
	}
	return label, url, len("[") + len(label) + len("](") + len(url) + len(")"), true
}

func (st *renderState) writeEscaped(c byte) {
	switch c {
	case '&':
		st.sb.WriteString("&amp;")
	case '<':
		st.sb.WriteString("&lt;")
	case '>':
		st.sb.WriteString("&gt;")
	case '"':
		st.sb.WriteString("&#34;")
	case '\'':
		st.sb.WriteString("&#39;")
	default:
		st.sb.WriteByte(c)
	}
}
