package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/entity"
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/repository/specification"
	"ai-blogcms-be/internal/repository/unitofwork"
	"ai-blogcms-be/pkg/events"
	pktNats "ai-blogcms-be/pkg/nats"
	"ai-blogcms-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PostListFilter struct {
	Page     int
	Limit    int
	Search   string
	AuthorId uuid.UUID
}

type IBlogPostService interface {
	Create(ctx context.Context, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	Update(ctx context.Context, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error)
	List(ctx context.Context, filter PostListFilter) (*dto.PostListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetContent(ctx context.Context, id uuid.UUID, content string) error
}

type blogPostService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewBlogPostService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IBlogPostService {
	return &blogPostService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *blogPostService) Create(ctx context.Context, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	author, err := uow.BlogAuthorRepository().FindOne(ctx, specification.ByID{ID: req.AuthorId})
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "Author does not exist")
	}

	slug, err := s.resolveSlug(ctx, uow, req.Slug, req.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	post := &entity.BlogPost{
		Id:            uuid.New(),
		Title:         req.Title,
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		AuthorId:      req.AuthorId,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if req.Publish {
		post.Publish(time.Now())
	}

	if err := uow.BlogPostRepository().Create(ctx, post); err != nil {
		return nil, err
	}

	if req.Publish {
		s.announcePublished(ctx, post)
	}

	post.Author = author
	return toPostResponse(post), nil
}

func (s *blogPostService) Update(ctx context.Context, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.BlogPostRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "Post not found")
	}

	if req.AuthorId != post.AuthorId {
		author, err := uow.BlogAuthorRepository().FindOne(ctx, specification.ByID{ID: req.AuthorId})
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, serverutils.NewApiError(fiber.StatusBadRequest, "Author does not exist")
		}
	}

	oldSlug := post.Slug
	slug, err := s.resolveSlug(ctx, uow, req.Slug, req.Title, post.Id)
	if err != nil {
		return nil, err
	}

	wasPublished := post.IsPublished

	post.Title = req.Title
	post.Slug = slug
	post.Content = req.Content
	post.Excerpt = req.Excerpt
	post.FeaturedImage = req.FeaturedImage
	post.AuthorId = req.AuthorId
	post.UpdatedAt = time.Now()
	if req.Publish {
		post.Publish(time.Now())
	} else {
		post.Unpublish()
	}

	if err := uow.BlogPostRepository().Update(ctx, post); err != nil {
		return nil, err
	}

	// Any edit to a live post invalidates its cached render. The old slug
	// is flushed too in case the URL changed.
	if wasPublished {
		s.invalidateRender(ctx, post.Id, oldSlug)
	}
	if post.IsPublished {
		s.invalidateRender(ctx, post.Id, post.Slug)
	}
	if !wasPublished && post.IsPublished {
		s.announcePublished(ctx, post)
	}

	return toPostResponse(post), nil
}

func (s *blogPostService) Get(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.BlogPostRepository().FindOneWithAuthor(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "Post not found")
	}
	return toPostResponse(post), nil
}

func (s *blogPostService) List(ctx context.Context, filter PostListFilter) (*dto.PostListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}

	var specs []specification.Specification
	if filter.Search != "" {
		specs = append(specs, specification.TitleSearch{Query: filter.Search})
	}
	if filter.AuthorId != uuid.Nil {
		specs = append(specs, specification.ByAuthor{AuthorId: filter.AuthorId})
	}

	total, err := uow.BlogPostRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	pageSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: filter.Limit, Offset: (filter.Page - 1) * filter.Limit},
	)
	posts, err := uow.BlogPostRepository().FindAllWithAuthor(ctx, pageSpecs...)
	if err != nil {
		return nil, err
	}

	res := &dto.PostListResponse{
		Posts: make([]*dto.PostResponse, 0, len(posts)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for _, p := range posts {
		summary := toPostResponse(p)
		summary.Content = ""
		res.Posts = append(res.Posts, summary)
	}
	return res, nil
}

func (s *blogPostService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.BlogPostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if post == nil {
		return serverutils.NewApiError(fiber.StatusNotFound, "Post not found")
	}

	if err := uow.BlogPostRepository().Delete(ctx, id); err != nil {
		return err
	}

	if post.IsPublished {
		s.invalidateRender(ctx, post.Id, post.Slug)
	}
	return nil
}

// SetContent updates only the Markdown body. The editor approval flow uses
// it to persist an applied change without touching the rest of the post.
func (s *blogPostService) SetContent(ctx context.Context, id uuid.UUID, content string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.BlogPostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if post == nil {
		return serverutils.NewApiError(fiber.StatusNotFound, "Post not found")
	}

	post.Content = content
	post.UpdatedAt = time.Now()
	if err := uow.BlogPostRepository().Update(ctx, post); err != nil {
		return err
	}

	if post.IsPublished {
		s.invalidateRender(ctx, post.Id, post.Slug)
	}
	return nil
}

// resolveSlug slugifies the requested or title-derived slug and suffixes it
// with a counter until it is unique among other posts.
func (s *blogPostService) resolveSlug(ctx context.Context, uow unitofwork.UnitOfWork, requested, title string, excludeId uuid.UUID) (string, error) {
	base := utils.Slugify(requested)
	if base == "" {
		base = utils.Slugify(title)
	}
	if base == "" {
		return "", serverutils.NewApiError(fiber.StatusBadRequest, "Title produces an empty slug")
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := uow.BlogPostRepository().SlugExists(ctx, slug, excludeId)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *blogPostService) invalidateRender(ctx context.Context, postId uuid.UUID, slug string) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.PostCacheMessage{PostId: postId, Slug: slug})
	if err != nil {
		return
	}
	// Cache invalidation is best effort, the cache entry expires anyway.
	_ = s.publisherService.Publish(ctx, payload)
}

func (s *blogPostService) announcePublished(ctx context.Context, post *entity.BlogPost) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "POST_PUBLISHED",
		Data: map[string]interface{}{
			"post_id": post.Id.String(),
			"title":   post.Title,
			"slug":    post.Slug,
		},
		OccurredAt: time.Now(),
	}
	_ = s.eventPublisher.Publish(ctx, evt)
}

func toPostResponse(p *entity.BlogPost) *dto.PostResponse {
	res := &dto.PostResponse{
		Id:            p.Id,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		IsPublished:   p.IsPublished,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Author != nil {
		res.Author = toAuthorResponse(p.Author)
	}
	return res
}
