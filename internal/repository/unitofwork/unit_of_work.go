package unitofwork

import (
	"context"

	"ai-blogcms-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BlogAuthorRepository() contract.BlogAuthorRepository
	BlogPostRepository() contract.BlogPostRepository
}
