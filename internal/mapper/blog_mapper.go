package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"ai-blogcms-be/internal/entity"
	"ai-blogcms-be/internal/model"
)

type BlogMapper struct{}

func NewBlogMapper() *BlogMapper {
	return &BlogMapper{}
}

func (m *BlogMapper) AuthorToEntity(a *model.BlogAuthor) *entity.BlogAuthor {
	if a == nil {
		return nil
	}
	links := map[string]string{}
	if len(a.SocialLinks) > 0 {
		// A malformed column value degrades to empty links, not an error.
		_ = json.Unmarshal(a.SocialLinks, &links)
	}
	return &entity.BlogAuthor{
		Id:          a.Id,
		Name:        a.Name,
		Title:       a.Title,
		Bio:         a.Bio,
		AvatarURL:   a.AvatarURL,
		SocialLinks: links,
		UserId:      a.UserId,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *BlogMapper) AuthorToModel(a *entity.BlogAuthor) *model.BlogAuthor {
	if a == nil {
		return nil
	}
	var links datatypes.JSON
	if len(a.SocialLinks) > 0 {
		raw, _ := json.Marshal(a.SocialLinks)
		links = datatypes.JSON(raw)
	}
	return &model.BlogAuthor{
		Id:          a.Id,
		Name:        a.Name,
		Title:       a.Title,
		Bio:         a.Bio,
		AvatarURL:   a.AvatarURL,
		SocialLinks: links,
		UserId:      a.UserId,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *BlogMapper) AuthorsToEntities(authors []*model.BlogAuthor) []*entity.BlogAuthor {
	entities := make([]*entity.BlogAuthor, len(authors))
	for i, a := range authors {
		entities[i] = m.AuthorToEntity(a)
	}
	return entities
}

func (m *BlogMapper) PostToEntity(p *model.BlogPost) *entity.BlogPost {
	if p == nil {
		return nil
	}
	return &entity.BlogPost{
		Id:            p.Id,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		IsPublished:   p.IsPublished,
		PublishedAt:   p.PublishedAt,
		AuthorId:      p.AuthorId,
		Author:        m.AuthorToEntity(p.Author),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *BlogMapper) PostToModel(p *entity.BlogPost) *model.BlogPost {
	if p == nil {
		return nil
	}
	return &model.BlogPost{
		Id:            p.Id,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		IsPublished:   p.IsPublished,
		PublishedAt:   p.PublishedAt,
		AuthorId:      p.AuthorId,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *BlogMapper) PostsToEntities(posts []*model.BlogPost) []*entity.BlogPost {
	entities := make([]*entity.BlogPost, len(posts))
	for i, p := range posts {
		entities[i] = m.PostToEntity(p)
	}
	return entities
}
