package service

import (
	"context"

	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/pkg/logger"
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/pkg/unsplash"

	"github.com/gofiber/fiber/v2"
)

type IImageService interface {
	Search(ctx context.Context, query string, page int) (*dto.ImageSearchResponse, error)
}

type imageService struct {
	client *unsplash.Client
	logger logger.ILogger
}

func NewImageService(client *unsplash.Client, log logger.ILogger) IImageService {
	return &imageService{client: client, logger: log}
}

func (s *imageService) Search(ctx context.Context, query string, page int) (*dto.ImageSearchResponse, error) {
	if s.client == nil {
		return nil, serverutils.NewApiError(fiber.StatusServiceUnavailable, "Image search is not configured")
	}
	if page < 1 {
		page = 1
	}

	result, err := s.client.Search(ctx, query, page)
	if err != nil {
		s.logger.Error("ImageService", "Unsplash search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return nil, serverutils.NewApiError(fiber.StatusBadGateway, "Image search failed")
	}

	res := &dto.ImageSearchResponse{
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Page:       page,
		Results:    make([]dto.ImageResponse, 0, len(result.Results)),
	}
	for _, photo := range result.Results {
		res.Results = append(res.Results, dto.ImageResponse{
			Id:          photo.ID,
			Alt:         photo.Alt(),
			URL:         photo.URLs.Regular,
			Thumbnail:   photo.URLs.Small,
			Attribution: photo.Attribution(),
		})
	}
	return res, nil
}
