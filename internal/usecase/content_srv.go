package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resto-booking/internal/content"

	"go.uber.org/zap"
)

// ContentService serves CMS-managed pages (about, terms, FAQ) through a
// read-through cache so a slow or down CMS does not take the pages with it.
type ContentService interface {
	GetPage(ctx context.Context, slug string) (*content.Page, error)
}

type contentService struct {
	cms      PageFetcher
	cache    Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewContentService(cms PageFetcher, cache Cache, cacheTTL time.Duration, log *zap.Logger) ContentService {
	return &contentService{
		cms:      cms,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With(zap.String("service", "content")),
	}
}

func (s *contentService) GetPage(ctx context.Context, slug string) (*content.Page, error) {
	if slug == "" {
		return nil, fmt.Errorf("invalid page slug")
	}

	cacheKey := "cms_page:" + slug

	if cached, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
		s.log.Warn("Page cache read failed", zap.Error(err), zap.String("slug", slug))
	} else if ok {
		var page content.Page
		if err := json.Unmarshal([]byte(cached), &page); err == nil {
			return &page, nil
		}
		// Corrupt entry, fall through to the CMS
	}

	page, err := s.cms.GetPage(ctx, slug)
	if err != nil {
		if errors.Is(err, content.ErrPageNotFound) {
			return nil, fmt.Errorf("page %s not found", slug)
		}
		s.log.Error("CMS fetch failed", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("fetch page %s: %w", slug, err)
	}

	if raw, err := json.Marshal(page); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(raw), s.cacheTTL); err != nil {
			s.log.Warn("Page cache write failed", zap.Error(err), zap.String("slug", slug))
		}
	}

	return page, nil
}
