package contract

import (
	"context"

	"ai-blogcms-be/internal/entity"
	"ai-blogcms-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BlogAuthorRepository interface {
	Create(ctx context.Context, author *entity.BlogAuthor) error
	Update(ctx context.Context, author *entity.BlogAuthor) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BlogAuthor, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BlogAuthor, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
