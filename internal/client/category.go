package client

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/cache"
	"storysite/internal/models"
)

// CategoryClient - операции с категориями.
type CategoryClient interface {
	List(ctx context.Context) ([]models.Category, error)
	ListAdmin(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id string, req models.CategoryRequest) (*models.Category, error)
	Remove(ctx context.Context, id string) error
}

type categoryClient struct {
	base
}

// NewCategoryClient создает клиента категорий.
func NewCategoryClient(deps Deps) CategoryClient {
	return &categoryClient{base: newBase(deps, "CategoryClient")}
}

func (c *categoryClient) List(ctx context.Context) ([]models.Category, error) {
	return cache.GetJSON[[]models.Category](ctx, c.cache, prefixCategories, cache.Options{
		TTL:          CategoriesTTL,
		ErrorMessage: msgCategoriesLoad,
	})
}

func (c *categoryClient) ListAdmin(ctx context.Context) ([]models.Category, error) {
	return sendJSON[[]models.Category](ctx, c.base, apiclient.Call{
		Method: http.MethodGet,
		Path:   "/api/admin/categories",
		Auth:   true,
	}, msgCategoriesAdminLoad)
}

func (c *categoryClient) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	category, err := sendJSON[models.Category](ctx, c.base, apiclient.Call{
		Method: http.MethodPost,
		Path:   "/api/admin/categories",
		Body:   req,
		Auth:   true,
	}, msgCategoryCreate)
	if err != nil {
		return nil, err
	}
	c.invalidate(prefixCategories)
	c.logger.Info("Category created", zap.String("id", category.ID))
	return &category, nil
}

func (c *categoryClient) Update(ctx context.Context, id string, req models.CategoryRequest) (*models.Category, error) {
	category, err := sendJSON[models.Category](ctx, c.base, apiclient.Call{
		Method: http.MethodPut,
		Path:   "/api/admin/categories/" + escape(id),
		Body:   req,
		Auth:   true,
	}, msgCategoryUpdate)
	if err != nil {
		return nil, err
	}
	c.invalidate(prefixCategories)
	return &category, nil
}

func (c *categoryClient) Remove(ctx context.Context, id string) error {
	if _, err := c.send(ctx, apiclient.Call{
		Method: http.MethodDelete,
		Path:   "/api/admin/categories/" + escape(id),
		Auth:   true,
	}, msgCategoryRemove); err != nil {
		return err
	}
	c.invalidate(prefixCategories)
	c.logger.Info("Category removed", zap.String("id", id))
	return nil
}
