package contract

import (
	"context"

	"ai-blogcms-be/internal/entity"
	"ai-blogcms-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BlogPostRepository interface {
	Create(ctx context.Context, post *entity.BlogPost) error
	Update(ctx context.Context, post *entity.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BlogPost, error)
	// FindOneWithAuthor preloads the author relation for public rendering.
	FindOneWithAuthor(ctx context.Context, specs ...specification.Specification) (*entity.BlogPost, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BlogPost, error)
	FindAllWithAuthor(ctx context.Context, specs ...specification.Specification) ([]*entity.BlogPost, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SlugExists reports whether a slug is taken by a post other than excludeId.
	SlugExists(ctx context.Context, slug string, excludeId uuid.UUID) (bool, error)
}
