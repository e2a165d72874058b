// Package article adapts a generic LLM provider into the two operations the
// blog editor needs: drafting a full article from a topic prompt, and
// transforming existing Markdown in response to a chat request. Providers
// come from pkg/llm; this package owns the prompts and the response
// envelope.
package article

import (
	"context"

	"ai-blogcms-be/pkg/llm"
)

// Draft is a freshly generated article.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

// Update is the outcome of a transform request. When IsModification is
// false the model answered conversationally and Content is empty; otherwise
// Content is the complete replacement document and Message explains the
// change.
type Update struct {
	IsModification bool   `json:"is_modification"`
	Content        string `json:"content,omitempty"`
	Message        string `json:"message"`
}

// UpdateRequest is one transform turn against the working document.
// History carries prior conversation turns for context, oldest first, each
// with any selection preamble it was submitted with.
type UpdateRequest struct {
	Content     string
	Instruction string
	Title       string
	History     []llm.Message
}

// Transformer generates and modifies article Markdown.
type Transformer interface {
	// Generate drafts a new article from a topic description.
	Generate(ctx context.Context, prompt string) (*Draft, error)

	// Update applies a chat request against the current document.
	Update(ctx context.Context, req UpdateRequest) (*Update, error)
}
