package client

import (
	"context"
	"net/url"

	"storysite/internal/cache"
	"storysite/internal/models"
)

// SeoClient отдает данные для SEO разметки. Ответ 204 означает "данных нет" и дает nil.
type SeoClient interface {
	Organization(ctx context.Context) (*models.SeoOrganization, error)
	Article(ctx context.Context, storySlug string) (*models.SeoArticle, error)
	Breadcrumb(ctx context.Context, q models.BreadcrumbQuery) (*models.SeoBreadcrumbList, error)
}

type seoClient struct {
	base
}

// NewSeoClient создает SEO клиента.
func NewSeoClient(deps Deps) SeoClient {
	return &seoClient{base: newBase(deps, "SeoClient")}
}

func (c *seoClient) Organization(ctx context.Context) (*models.SeoOrganization, error) {
	return cache.GetJSON[*models.SeoOrganization](ctx, c.cache, "/api/seo/organization", cache.Options{
		TTL:          SeoTTL,
		Parse:        cache.NullOnNoContent[models.SeoOrganization],
		ErrorMessage: msgSeoOrganization,
	})
}

func (c *seoClient) Article(ctx context.Context, storySlug string) (*models.SeoArticle, error) {
	return cache.GetJSON[*models.SeoArticle](ctx, c.cache, "/api/seo/article/"+escape(storySlug), cache.Options{
		TTL:          SeoTTL,
		Parse:        cache.NullOnNoContent[models.SeoArticle],
		ErrorMessage: msgSeoArticle,
	})
}

func (c *seoClient) Breadcrumb(ctx context.Context, q models.BreadcrumbQuery) (*models.SeoBreadcrumbList, error) {
	query := url.Values{}
	if q.PageType != "" {
		query.Set("pageType", q.PageType)
	}
	if q.RefID != "" {
		query.Set("refId", q.RefID)
	}
	if q.CanonicalURL != "" {
		query.Set("canonicalUrl", q.CanonicalURL)
	}
	return cache.GetJSON[*models.SeoBreadcrumbList](ctx, c.cache, withQuery("/api/seo/breadcrumb", query), cache.Options{
		TTL:          SeoTTL,
		Parse:        cache.NullOnNoContent[models.SeoBreadcrumbList],
		ErrorMessage: msgSeoBreadcrumb,
	})
}
