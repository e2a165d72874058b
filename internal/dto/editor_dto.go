package dto

import (
	"time"

	"github.com/google/uuid"
)

type OpenSessionRequest struct {
	PostId  uuid.UUID `json:"post_id"`
	Title   string    `json:"title"`
	Content string    `json:"content" validate:"required"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type SelectionRequest struct {
	Text  string `json:"text" validate:"required"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type ClearSelectionRequest struct {
	LiveSelectionActive bool `json:"live_selection_active"`
}

type SetContentRequest struct {
	Content string `json:"content"`
}

type ChatMessageResponse struct {
	Id          uuid.UUID          `json:"id"`
	Role        string             `json:"role"`
	Content     string             `json:"content"`
	FullContent string             `json:"full_content,omitempty"`
	ContextSpan *SelectionResponse `json:"context_span,omitempty"`
	IsError     bool               `json:"is_error,omitempty"`
	IsWarning   bool               `json:"is_warning,omitempty"`
	IsSuccess   bool               `json:"is_success,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type DiffLineResponse struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	OldLine int    `json:"old_line,omitempty"`
	NewLine int    `json:"new_line,omitempty"`
}

type PendingChangeResponse struct {
	OriginalContent string             `json:"original_content"`
	ProposedContent string             `json:"proposed_content"`
	Explanation     string             `json:"explanation"`
	Diff            []DiffLineResponse `json:"diff"`
	Additions       int                `json:"additions"`
	Deletions       int                `json:"deletions"`
}

type SessionStateResponse struct {
	Id        uuid.UUID              `json:"id"`
	PostId    uuid.UUID              `json:"post_id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	State     string                 `json:"state"`
	Messages  []ChatMessageResponse  `json:"messages"`
	Pending   *PendingChangeResponse `json:"pending_change,omitempty"`
	Selection *SelectionResponse     `json:"selection,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type SelectionResponse struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type PreviewResponse struct {
	HTML       string         `json:"html"`
	Images     []ElementRange `json:"images"`
	Paragraphs []ElementRange `json:"paragraphs"`
	Sections   []SectionDTO   `json:"sections"`
}

type SectionDTO struct {
	Kind      string   `json:"kind"`
	Lines     []string `json:"lines"`
	StartLine int      `json:"start_line"`
}

type InsertImageRequest struct {
	Offset int    `json:"offset"`
	Alt    string `json:"alt"`
	URL    string `json:"url" validate:"required"`
}

type ReplaceImageRequest struct {
	Alt string `json:"alt"`
	URL string `json:"url" validate:"required"`
}

type GenerateArticleRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type GenerateArticleResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}
