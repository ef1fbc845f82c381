package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"resto-booking/internal/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetPageCacheMiss(t *testing.T) {
	cms := new(MockPageFetcher)
	cache := new(MockCache)

	page := &content.Page{Slug: "about", Title: "About us", Body: "We book tables."}

	cache.On("Get", mock.Anything, "cms_page:about").Return("", false, nil)
	cms.On("GetPage", mock.Anything, "about").Return(page, nil)
	cache.On("Set", mock.Anything, "cms_page:about", mock.AnythingOfType("string"), 10*time.Minute).Return(nil)

	service := NewContentService(cms, cache, 10*time.Minute, zap.NewNop())

	got, err := service.GetPage(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, "About us", got.Title)

	cms.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGetPageCacheHit(t *testing.T) {
	cms := new(MockPageFetcher)
	cache := new(MockCache)

	raw, err := json.Marshal(&content.Page{Slug: "terms", Title: "Terms", Body: "..."})
	require.NoError(t, err)

	cache.On("Get", mock.Anything, "cms_page:terms").Return(string(raw), true, nil)

	service := NewContentService(cms, cache, 10*time.Minute, zap.NewNop())

	got, err := service.GetPage(context.Background(), "terms")
	require.NoError(t, err)
	assert.Equal(t, "Terms", got.Title)

	// The CMS is never contacted on a warm cache
	cms.AssertNotCalled(t, "GetPage", mock.Anything, mock.Anything)
}

func TestGetPageNotFound(t *testing.T) {
	cms := new(MockPageFetcher)
	cache := new(MockCache)

	cache.On("Get", mock.Anything, "cms_page:missing").Return("", false, nil)
	cms.On("GetPage", mock.Anything, "missing").Return(nil, content.ErrPageNotFound)

	service := NewContentService(cms, cache, 10*time.Minute, zap.NewNop())

	got, err := service.GetPage(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "not found")
}
