package dto

import "github.com/google/uuid"

// PostCacheMessage is the in-process queue payload that tells the consumer
// to drop the cached public render of a post.
type PostCacheMessage struct {
	PostId uuid.UUID `json:"post_id"`
	Slug   string    `json:"slug"`
}
