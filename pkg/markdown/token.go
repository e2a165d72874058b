package markdown

import "strings"

// BlockKind classifies a structural block of Markdown source.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockImage
	BlockCodeFence
	BlockBlockquote
	BlockUnorderedList
	BlockOrderedList
)

// Block is one structural unit produced by the tokenizer. Offsets are byte
// positions into the original source; End is exclusive and does not include
// the trailing newline.
type Block struct {
	Kind       BlockKind
	Level      int      // heading level (1-3)
	Lang       string   // code fence info string
	Lines      []string // raw source lines, markers included
	LineStarts []int    // byte offset of each line in Lines
	Start      int
	End        int
	StartLine  int
}

type sourceLine struct {
	text  string
	start int
}

func splitLines(source string) []sourceLine {
	raw := strings.Split(source, "\n")
	lines := make([]sourceLine, len(raw))
	offset := 0
	for i, text := range raw {
		lines[i] = sourceLine{text: text, start: offset}
		offset += len(text) + 1
	}
	return lines
}

func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n < 1 || n > 3 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isUnorderedItem(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), "- ")
}

func isOrderedItem(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	n := 0
	for n < len(trimmed) && trimmed[n] >= '0' && trimmed[n] <= '9' {
		n++
	}
	return n > 0 && n+1 < len(trimmed) && trimmed[n] == '.' && trimmed[n+1] == ' '
}

func isImageLine(line string) bool {
	if !strings.HasPrefix(line, "![") {
		return false
	}
	_, _, ok := parseImage(line, 0)
	return ok
}

// parseImage matches ![alt](url) starting at position pos and returns the
// alt text, url and whether the syntax matched completely.
func parseImage(text string, pos int) (alt, url string, ok bool) {
	if pos+1 >= len(text) || text[pos] != '!' || text[pos+1] != '[' {
		return "", "", false
	}
	closeBracket := strings.IndexByte(text[pos+2:], ']')
	if closeBracket < 0 {
		return "", "", false
	}
	altEnd := pos + 2 + closeBracket
	if altEnd+1 >= len(text) || text[altEnd+1] != '(' {
		return "", "", false
	}
	closeParen := strings.IndexByte(text[altEnd+2:], ')')
	if closeParen < 0 {
		return "", "", false
	}
	alt = text[pos+2 : altEnd]
	url = text[altEnd+2 : altEnd+2+closeParen]
	if url == "" {
		return "", "", false
	}
	return alt, url, true
}

// imageSpan returns the byte length of the ![alt](url) expression at pos.
func imageSpan(text string, pos int) int {
	alt, url, ok := parseImage(text, pos)
	if !ok {
		return 0
	}
	return len("![") + len(alt) + len("](") + len(url) + len(")")
}

// Tokenize splits Markdown source into an ordered list of structural blocks.
// Classification is a single forward pass; the only lookahead is the scan for
// a closing code fence, and an unmatched opening fence degrades to paragraph
// text rather than swallowing the rest of the document.
func Tokenize(source string) []Block {
	if source == "" {
		return nil
	}

	lines := splitLines(source)
	var blocks []Block

	var para *Block
	flushPara := func() {
		if para != nil && len(para.Lines) > 0 {
			blocks = append(blocks, *para)
		}
		para = nil
	}
	appendParaLine := func(i int) {
		ln := lines[i]
		if para == nil {
			para = &Block{Kind: BlockParagraph, Start: ln.start, StartLine: i}
		}
		para.Lines = append(para.Lines, ln.text)
		para.LineStarts = append(para.LineStarts, ln.start)
		para.End = ln.start + len(ln.text)
	}

	i := 0
	for i < len(lines) {
		line := lines[i].text

		switch {
		case isBlank(line):
			flushPara()
			i++

		case headingLevel(line) > 0:
			flushPara()
			level := headingLevel(line)
			blocks = append(blocks, Block{
				Kind:       BlockHeading,
				Level:      level,
				Lines:      []string{line},
				LineStarts: []int{lines[i].start},
				Start:      lines[i].start,
				End:        lines[i].start + len(line),
				StartLine:  i,
			})
			i++

		case strings.HasPrefix(line, "```"):
			fenceClose := -1
			for j := i + 1; j < len(lines); j++ {
				if strings.HasPrefix(lines[j].text, "```") {
					fenceClose = j
					break
				}
			}
			if fenceClose < 0 {
				// Unmatched fence: the delimiter is literal text.
				appendParaLine(i)
				i++
				continue
			}
			flushPara()
			block := Block{
				Kind:      BlockCodeFence,
				Lang:      strings.TrimSpace(strings.TrimPrefix(line, "```")),
				Start:     lines[i].start,
				End:       lines[fenceClose].start + len(lines[fenceClose].text),
				StartLine: i,
			}
			for j := i + 1; j < fenceClose; j++ {
				block.Lines = append(block.Lines, lines[j].text)
				block.LineStarts = append(block.LineStarts, lines[j].start)
			}
			blocks = append(blocks, block)
			i = fenceClose + 1

		case strings.HasPrefix(line, "> "):
			flushPara()
			block := Block{Kind: BlockBlockquote, Start: lines[i].start, StartLine: i}
			for i < len(lines) && strings.HasPrefix(lines[i].text, "> ") {
				block.Lines = append(block.Lines, lines[i].text)
				block.LineStarts = append(block.LineStarts, lines[i].start)
				block.End = lines[i].start + len(lines[i].text)
				i++
			}
			blocks = append(blocks, block)

		case isUnorderedItem(line):
			flushPara()
			block := Block{Kind: BlockUnorderedList, Start: lines[i].start, StartLine: i}
			for i < len(lines) && isUnorderedItem(lines[i].text) {
				block.Lines = append(block.Lines, lines[i].text)
				block.LineStarts = append(block.LineStarts, lines[i].start)
				block.End = lines[i].start + len(lines[i].text)
				i++
			}
			blocks = append(blocks, block)

		case isOrderedItem(line):
			flushPara()
			block := Block{Kind: BlockOrderedList, Start: lines[i].start, StartLine: i}
			for i < len(lines) && isOrderedItem(lines[i].text) {
				block.Lines = append(block.Lines, lines[i].text)
				block.LineStarts = append(block.LineStarts, lines[i].start)
				block.End = lines[i].start + len(lines[i].text)
				i++
			}
			blocks = append(blocks, block)

		case isImageLine(line):
			flushPara()
			blocks = append(blocks, Block{
				Kind:       BlockImage,
				Lines:      []string{line},
				LineStarts: []int{lines[i].start},
				Start:      lines[i].start,
				End:        lines[i].start + len(line),
				StartLine:  i,
			})
			i++

		default:
			appendParaLine(i)
			i++
		}
	}
	flushPara()

	return blocks
}
