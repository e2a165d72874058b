package service

import (
	"context"
	"time"

	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/entity"
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/repository/specification"
	"ai-blogcms-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBlogAuthorService interface {
	Create(ctx context.Context, req *dto.SaveAuthorRequest) (*dto.AuthorResponse, error)
	Update(ctx context.Context, req *dto.SaveAuthorRequest) (*dto.AuthorResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AuthorResponse, error)
	GetOrCreateForUser(ctx context.Context, userId uuid.UUID) (*dto.AuthorResponse, error)
	List(ctx context.Context) ([]*dto.AuthorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogAuthorService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewBlogAuthorService(uowFactory unitofwork.RepositoryFactory) IBlogAuthorService {
	return &blogAuthorService{uowFactory: uowFactory}
}

func (s *blogAuthorService) Create(ctx context.Context, req *dto.SaveAuthorRequest) (*dto.AuthorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	author := &entity.BlogAuthor{
		Id:          uuid.New(),
		Name:        req.Name,
		Title:       req.Title,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		SocialLinks: req.SocialLinks,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if author.Title == "" {
		author.Title = "Author"
	}

	if err := uow.BlogAuthorRepository().Create(ctx, author); err != nil {
		return nil, err
	}
	return toAuthorResponse(author), nil
}

func (s *blogAuthorService) Update(ctx context.Context, req *dto.SaveAuthorRequest) (*dto.AuthorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	author, err := uow.BlogAuthorRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "Author not found")
	}

	author.Name = req.Name
	if req.Title != "" {
		author.Title = req.Title
	}
	author.Bio = req.Bio
	author.AvatarURL = req.AvatarURL
	author.SocialLinks = req.SocialLinks
	author.UpdatedAt = time.Now()

	if err := uow.BlogAuthorRepository().Update(ctx, author); err != nil {
		return nil, err
	}
	return toAuthorResponse(author), nil
}

func (s *blogAuthorService) Get(ctx context.Context, id uuid.UUID) (*dto.AuthorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	author, err := uow.BlogAuthorRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "Author not found")
	}
	return toAuthorResponse(author), nil
}

// GetOrCreateForUser resolves the author profile bound to a user account,
// creating one seeded from the account name on first use.
func (s *blogAuthorService) GetOrCreateForUser(ctx context.Context, userId uuid.UUID) (*dto.AuthorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	author, err := uow.BlogAuthorRepository().FindOne(ctx, specification.ByUser{UserId: userId})
	if err != nil {
		return nil, err
	}
	if author != nil {
		return toAuthorResponse(author), nil
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "User not found")
	}

	author = &entity.BlogAuthor{
		Id:        uuid.New(),
		Name:      user.FullName,
		Title:     "Author",
		UserId:    &userId,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.BlogAuthorRepository().Create(ctx, author); err != nil {
		return nil, err
	}
	return toAuthorResponse(author), nil
}

func (s *blogAuthorService) List(ctx context.Context) ([]*dto.AuthorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	authors, err := uow.BlogAuthorRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		res = append(res, toAuthorResponse(a))
	}
	return res, nil
}

func (s *blogAuthorService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	author, err := uow.BlogAuthorRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if author == nil {
		return serverutils.NewApiError(fiber.StatusNotFound, "Author not found")
	}

	// Keep published history intact: refuse deletion while posts reference
	// the author.
	count, err := uow.BlogPostRepository().Count(ctx, specification.ByAuthor{AuthorId: id})
	if err != nil {
		return err
	}
	if count > 0 {
		return serverutils.NewApiError(fiber.StatusConflict, "Author still has posts")
	}

	return uow.BlogAuthorRepository().Delete(ctx, id)
}

func toAuthorResponse(a *entity.BlogAuthor) *dto.AuthorResponse {
	return &dto.AuthorResponse{
		Id:          a.Id,
		Name:        a.Name,
		Title:       a.Title,
		Bio:         a.Bio,
		AvatarURL:   a.AvatarURL,
		SocialLinks: a.SocialLinks,
		CreatedAt:   a.CreatedAt,
	}
}
