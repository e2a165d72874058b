package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title         string    `json:"title" validate:"required"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content" validate:"required"`
	Excerpt       string    `json:"excerpt"`
	FeaturedImage *string   `json:"featured_image"`
	AuthorId      uuid.UUID `json:"author_id" validate:"required"`
	Publish       bool      `json:"publish"`
}

type UpdatePostRequest struct {
	Id            uuid.UUID `json:"-"`
	Title         string    `json:"title" validate:"required"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content" validate:"required"`
	Excerpt       string    `json:"excerpt"`
	FeaturedImage *string   `json:"featured_image"`
	AuthorId      uuid.UUID `json:"author_id" validate:"required"`
	Publish       bool      `json:"publish"`
}

type PostResponse struct {
	Id            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Content       string          `json:"content,omitempty"`
	Excerpt       string          `json:"excerpt,omitempty"`
	FeaturedImage *string         `json:"featured_image,omitempty"`
	IsPublished   bool            `json:"is_published"`
	PublishedAt   *time.Time      `json:"published_at,omitempty"`
	Author        *AuthorResponse `json:"author,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type PostListResponse struct {
	Posts []*PostResponse `json:"posts"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// RenderedPostResponse is the public read payload: presentation HTML plus
// the element maps that drive click-to-edit in the admin preview.
type RenderedPostResponse struct {
	Post       *PostResponse  `json:"post"`
	HTML       string         `json:"html"`
	Images     []ElementRange `json:"images"`
	Paragraphs []ElementRange `json:"paragraphs"`
}

type ElementRange struct {
	Ordinal int    `json:"ordinal"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	URL     string `json:"url,omitempty"`
}
