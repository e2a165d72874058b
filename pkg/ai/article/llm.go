package article

import (
	"context"
	"fmt"
	"strings"

	"ai-blogcms-be/pkg/llm"
	"ai-blogcms-be/pkg/markdown"
)

const excerptLimit = 160

// LLMTransformer implements Transformer on top of any pkg/llm provider.
type LLMTransformer struct {
	provider llm.LLMProvider
}

var _ Transformer = &LLMTransformer{}

func NewLLMTransformer(provider llm.LLMProvider) *LLMTransformer {
	return &LLMTransformer{provider: provider}
}

func (t *LLMTransformer) Generate(ctx context.Context, prompt string) (*Draft, error) {
	content, err := t.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Write a complete blog article about: " + prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	content = strings.TrimSpace(content)
	return &Draft{
		Title:   deriveTitle(content),
		Content: content,
		Excerpt: deriveExcerpt(content),
	}, nil
}

func (t *LLMTransformer) Update(ctx context.Context, req UpdateRequest) (*Update, error) {
	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: systemPrompt + "\n\n" + updateEnvelopeInstructions,
	})
	messages = append(messages, req.History...)
	messages = append(messages, llm.Message{
		Role:    "user",
		Content: updatePrompt(req.Title, req.Content, req.Instruction),
	})

	raw, err := t.provider.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return parseUpdate(raw), nil
}

// deriveTitle takes the first heading of the document, at any level.
func deriveTitle(content string) string {
	for _, block := range markdown.Tokenize(content) {
		if block.Kind == markdown.BlockHeading {
			return strings.TrimSpace(block.Lines[0][block.Level+1:])
		}
	}
	return ""
}

// deriveExcerpt takes the first paragraph, truncated on a word boundary.
func deriveExcerpt(content string) string {
	for _, block := range markdown.Tokenize(content) {
		if block.Kind != markdown.BlockParagraph {
			continue
		}
		text := strings.Join(block.Lines, " ")
		if len(text) <= excerptLimit {
			return text
		}
		cut := strings.LastIndexByte(text[:excerptLimit], ' ')
		if cut <= 0 {
			cut = excerptLimit
		}
		return text[:cut] + "..."
	}
	return ""
}
