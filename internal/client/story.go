package client

import (
	"context"

	"storysite/internal/models"
)

// ListParams - фильтры публичного списка историй.
type ListParams struct {
	Hot         bool
	Recommended bool
}

// StoryClient - операции с историями.
type StoryClient interface {
	List(ctx context.Context, params ListParams) ([]models.Story, error)
	GetBySlug(ctx context.Context, slug string) (*models.Story, error)
	AdminList(ctx context.Context) ([]models.Story, error)
	Create(ctx context.Context, req models.StoryRequest) (*models.Story, error)
	Update(ctx context.Context, id string, req models.StoryRequest) (*models.Story, error)
	Remove(ctx context.Context, id string) error
	// TrackView увеличивает счетчик просмотров и возвращает новое значение.
	TrackView(ctx context.Context, slug string) (int64, error)
	// TrackLike увеличивает счетчик лайков и возвращает новое значение.
	TrackLike(ctx context.Context, slug string) (int64, error)
}
