// FILE: internal/entity/blog_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type BlogAuthor struct {
	Id          uuid.UUID
	Name        string
	Title       string
	Bio         string
	AvatarURL   *string
	SocialLinks map[string]string // platform -> profile URL
	UserId      *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BlogPost struct {
	Id            uuid.UUID
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	FeaturedImage *string
	IsPublished   bool
	PublishedAt   *time.Time
	AuthorId      uuid.UUID
	Author        *BlogAuthor
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Publish marks the post live. The publish timestamp is set on the first
// transition only, so republishing after an unpublish keeps the original
// date.
func (p *BlogPost) Publish(now time.Time) {
	p.IsPublished = true
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}

func (p *BlogPost) Unpublish() {
	p.IsPublished = false
}
