package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/pkg/logger"
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/repository/specification"
	"ai-blogcms-be/internal/repository/unitofwork"
	"ai-blogcms-be/pkg/markdown"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

const renderCacheTTL = 10 * time.Minute

// RenderCacheKey is the Redis key holding the cached public render of a
// post. The consumer deletes it when the post changes.
func RenderCacheKey(slug string) string {
	return fmt.Sprintf("blog:render:%s", slug)
}

// IBlogService serves the public, read-only side of the blog.
type IBlogService interface {
	ListPublished(ctx context.Context, page, limit int, search string) (*dto.PostListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.RenderedPostResponse, error)
}

type blogService struct {
	uowFactory unitofwork.RepositoryFactory
	rdb        *redis.Client
	logger     logger.ILogger
	md         goldmark.Markdown
}

func NewBlogService(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client, log logger.ILogger) IBlogService {
	return &blogService{
		uowFactory: uowFactory,
		rdb:        rdb,
		logger:     log,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
	}
}

func (s *blogService) ListPublished(ctx context.Context, page, limit int, search string) (*dto.PostListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	specs := []specification.Specification{specification.PublishedOnly{}}
	if search != "" {
		specs = append(specs, specification.TitleSearch{Query: search})
	}

	total, err := uow.BlogPostRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	pageSpecs := append(specs,
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	posts, err := uow.BlogPostRepository().FindAllWithAuthor(ctx, pageSpecs...)
	if err != nil {
		return nil, err
	}

	res := &dto.PostListResponse{
		Posts: make([]*dto.PostResponse, 0, len(posts)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, p := range posts {
		summary := toPostResponse(p)
		summary.Content = ""
		res.Posts = append(res.Posts, summary)
	}
	return res, nil
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*dto.RenderedPostResponse, error) {
	if cached := s.fromCache(ctx, slug); cached != nil {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.BlogPostRepository().FindOneWithAuthor(ctx,
		specification.BySlug{Slug: slug},
		specification.PublishedOnly{},
	)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "Post not found")
	}

	// Presentation HTML comes from goldmark; the element maps come from the
	// editor renderer so the admin preview can address the same ordinals.
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(post.Content), &buf); err != nil {
		return nil, err
	}
	elements := markdown.Render(post.Content)

	res := &dto.RenderedPostResponse{
		Post:       toPostResponse(post),
		HTML:       buf.String(),
		Images:     toElementRanges(elements.Images),
		Paragraphs: toElementRanges(elements.Paragraphs),
	}
	s.toCache(ctx, slug, res)
	return res, nil
}

func (s *blogService) fromCache(ctx context.Context, slug string) *dto.RenderedPostResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, RenderCacheKey(slug)).Bytes()
	if err != nil {
		return nil
	}
	var res dto.RenderedPostResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		s.logger.Warn("BlogService", "Corrupt render cache entry, dropping", map[string]interface{}{"slug": slug})
		s.rdb.Del(ctx, RenderCacheKey(slug))
		return nil
	}
	return &res
}

func (s *blogService) toCache(ctx context.Context, slug string, res *dto.RenderedPostResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, RenderCacheKey(slug), raw, renderCacheTTL).Err(); err != nil {
		s.logger.Warn("BlogService", "Failed to cache render", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
}

func toElementRanges(ranges []markdown.ElementRange) []dto.ElementRange {
	res := make([]dto.ElementRange, 0, len(ranges))
	for _, r := range ranges {
		res = append(res, dto.ElementRange{
			Ordinal: r.Ordinal,
			Start:   r.Start,
			End:     r.End,
			URL:     r.URL,
		})
	}
	return res
}
