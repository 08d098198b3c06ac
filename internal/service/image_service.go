package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/imagegen"
	"github.com/cwrk-planet/bizos/internal/metrics"
	"github.com/cwrk-planet/bizos/internal/objectstore"
	"github.com/cwrk-planet/bizos/pkg/logger"
)

type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data []byte) (*objectstore.UploadResult, error)
}

type ImageService struct {
	images ImageRepo
	gen    ImageGenerator
	store  ObjectStore // nil: храним ссылку провайдера
	now    func() time.Time
}

func NewImageService(images ImageRepo, gen ImageGenerator, store ObjectStore) *ImageService {
	return &ImageService{images: images, gen: gen, store: store, now: time.Now}
}

func (s *ImageService) ListByBusiness(ctx context.Context, businessID string) ([]domain.GeneratedImage, error) {
	return s.images.ListByBusiness(ctx, businessID)
}

type GenerateImageInput struct {
	Prompt     string
	Style      string
	BusinessID string
}

// Generate: промпт + стиль -> провайдер -> (опционально) бакет -> запись в generated_images.
func (s *ImageService) Generate(ctx context.Context, in GenerateImageInput) (img *domain.GeneratedImage, err error) {
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.ImagesGenerated.WithLabelValues(result).Inc()
	}()

	if strings.TrimSpace(in.Prompt) == "" || strings.TrimSpace(in.Style) == "" || strings.TrimSpace(in.BusinessID) == "" {
		return nil, invalid("Missing required fields: prompt, style, and business_id are required")
	}

	if !imagegen.KnownStyle(in.Style) {
		logger.FromContext(ctx).Debug("image style unknown, default suffix used", "style", in.Style)
	}
	providerURL, err := s.gen.Generate(ctx, imagegen.EnhancePrompt(in.Prompt, in.Style))
	if err != nil {
		return nil, err
	}

	ts := s.now().UnixMilli()
	imageURL := providerURL
	storagePath := fmt.Sprintf("temp/%d.png", ts)

	if s.store != nil {
		data, err := s.gen.Download(ctx, providerURL)
		if err != nil {
			return nil, err
		}
		objectPath := fmt.Sprintf("business-%s/generated-image-%d.png", in.BusinessID, ts)
		res, err := s.store.Upload(ctx, objectPath, data)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL, storagePath = res.PublicURL, res.Path
	}

	saved, err := s.images.Create(ctx, &domain.GeneratedImage{
		BusinessID:  in.BusinessID,
		Prompt:      strings.TrimSpace(in.Prompt),
		Style:       in.Style,
		ImageURL:    imageURL,
		StoragePath: &storagePath,
	})
	if err != nil {
		return nil, fmt.Errorf("images.Create: %w", err)
	}
	return saved, nil
}
