// Package content fetches informational pages from the headless CMS.
// The CMS surface is two GET endpoints, so this stays on net/http; responses
// are cached in redis by the content service.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"resto-booking/pkg/utils"

	"go.uber.org/zap"
)

var ErrPageNotFound = errors.New("page not found in CMS")

// Page is a flattened CMS entry
type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(config utils.CMSConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: config.BaseURL,
		token:   config.Token,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logger.With(zap.String("client", "cms")),
	}
}

// strapi v4 envelope: {"data":[{"id":1,"attributes":{...}}]}
type pageEnvelope struct {
	Data []struct {
		ID         int `json:"id"`
		Attributes struct {
			Slug      string    `json:"slug"`
			Title     string    `json:"title"`
			Body      string    `json:"body"`
			UpdatedAt time.Time `json:"updatedAt"`
		} `json:"attributes"`
	} `json:"data"`
}

func (c *Client) GetPage(ctx context.Context, slug string) (*Page, error) {
	endpoint := fmt.Sprintf("%s/api/pages?filters[slug][$eq]=%s", c.baseURL, url.QueryEscape(slug))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build CMS request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("CMS request failed", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("fetch page %s: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("CMS returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("fetch page %s: CMS status %d", slug, resp.StatusCode)
	}

	var envelope pageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode page %s: %w", slug, err)
	}

	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("page %s: %w", slug, ErrPageNotFound)
	}

	attrs := envelope.Data[0].Attributes
	return &Page{
		Slug:      attrs.Slug,
		Title:     attrs.Title,
		Body:      attrs.Body,
		UpdatedAt: attrs.UpdatedAt,
	}, nil
}
