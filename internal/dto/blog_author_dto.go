package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveAuthorRequest struct {
	Id          uuid.UUID         `json:"-"`
	Name        string            `json:"name" validate:"required"`
	Title       string            `json:"title"`
	Bio         string            `json:"bio"`
	AvatarURL   *string           `json:"avatar_url"`
	SocialLinks map[string]string `json:"social_links"`
}

type AuthorResponse struct {
	Id          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Bio         string            `json:"bio,omitempty"`
	AvatarURL   *string           `json:"avatar_url,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
