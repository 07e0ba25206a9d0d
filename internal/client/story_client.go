package client

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/cache"
	"storysite/internal/models"
)

type storyClient struct {
	base
}

// NewStoryClient создает клиента историй.
func NewStoryClient(deps Deps) StoryClient {
	return &storyClient{base: newBase(deps, "StoryClient")}
}

func (c *storyClient) List(ctx context.Context, params ListParams) ([]models.Story, error) {
	query := url.Values{}
	if params.Hot {
		query.Set("hot", "true")
	}
	if params.Recommended {
		query.Set("recommended", "true")
	}
	path := withQuery(prefixStories, query)
	return cache.GetJSON[[]models.Story](ctx, c.cache, path, cache.Options{
		TTL:          StoriesTTL,
		ErrorMessage: msgStoriesLoad,
	})
}

func (c *storyClient) GetBySlug(ctx context.Context, slug string) (*models.Story, error) {
	story, err := cache.GetJSON[models.Story](ctx, c.cache, prefixStories+"/"+escape(slug), cache.Options{
		TTL:          StoriesTTL,
		ErrorMessage: msgStoryNotFound,
	})
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (c *storyClient) AdminList(ctx context.Context) ([]models.Story, error) {
	return sendJSON[[]models.Story](ctx, c.base, apiclient.Call{
		Method: http.MethodGet,
		Path:   "/api/admin/stories",
		Auth:   true,
	}, msgStoriesAdminLoad)
}

func (c *storyClient) Create(ctx context.Context, req models.StoryRequest) (*models.Story, error) {
	story, err := sendJSON[models.Story](ctx, c.base, apiclient.Call{
		Method: http.MethodPost,
		Path:   "/api/admin/stories",
		Body:   req,
		Auth:   true,
	}, msgStoryCreate)
	if err != nil {
		return nil, err
	}
	c.invalidate(prefixStories)
	c.logger.Info("Story created", zap.String("id", story.ID), zap.String("slug", story.Slug))
	return &story, nil
}

func (c *storyClient) Update(ctx context.Context, id string, req models.StoryRequest) (*models.Story, error) {
	story, err := sendJSON[models.Story](ctx, c.base, apiclient.Call{
		Method: http.MethodPut,
		Path:   "/api/admin/stories/" + escape(id),
		Body:   req,
		Auth:   true,
	}, msgStoryUpdate)
	if err != nil {
		return nil, err
	}
	c.invalidate(prefixStories)
	c.logger.Info("Story updated", zap.String("id", id))
	return &story, nil
}

func (c *storyClient) Remove(ctx context.Context, id string) error {
	if _, err := c.send(ctx, apiclient.Call{
		Method: http.MethodDelete,
		Path:   "/api/admin/stories/" + escape(id),
		Auth:   true,
	}, msgStoryRemove); err != nil {
		return err
	}
	c.invalidate(prefixStories)
	c.logger.Info("Story removed", zap.String("id", id))
	return nil
}

func (c *storyClient) TrackView(ctx context.Context, slug string) (int64, error) {
	return sendJSON[int64](ctx, c.base, apiclient.Call{
		Method: http.MethodPost,
		Path:   prefixStories + "/" + escape(slug) + "/view",
	}, msgStoryView)
}

func (c *storyClient) TrackLike(ctx context.Context, slug string) (int64, error) {
	likes, err := sendJSON[int64](ctx, c.base, apiclient.Call{
		Method: http.MethodPost,
		Path:   prefixStories + "/" + escape(slug) + "/like",
	}, msgStoryLike)
	if err != nil {
		return 0, err
	}
	// Только карточка истории; списки догонят по TTL.
	c.invalidate(prefixStories + "/" + escape(slug))
	return likes, nil
}
