package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/cache"
	"storysite/internal/models"
)

// Время жизни кэша для публичных чтений.
const (
	StoriesTTL    = 30 * time.Second
	CategoriesTTL = 10 * time.Minute
	SettingsTTL   = 5 * time.Minute
	SeoTTL        = 10 * time.Minute
)

// Префиксы ключей кэша, сбрасываемые после записи.
const (
	prefixStories    = "/api/stories"
	prefixCategories = "/api/categories"
	prefixSettings   = "/api/settings"
)

// Deps - общие зависимости всех клиентов.
type Deps struct {
	API   *apiclient.Client
	Cache *cache.RequestCache
	// Invalidator получает сбросы после записей. По умолчанию - сам Cache.
	Invalidator cache.Invalidator
	Logger      *zap.Logger
}

type base struct {
	api         *apiclient.Client
	cache       *cache.RequestCache
	invalidator cache.Invalidator
	logger      *zap.Logger
}

func newBase(deps Deps, name string) base {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	inv := deps.Invalidator
	if inv == nil && deps.Cache != nil {
		inv = deps.Cache
	}
	return base{
		api:         deps.API,
		cache:       deps.Cache,
		invalidator: inv,
		logger:      logger.Named(name),
	}
}

func (b base) invalidate(prefix string) {
	if b.invalidator != nil {
		b.invalidator.Invalidate(prefix)
	}
}

// send выполняет запрос и превращает транспортную ошибку в APIError с message.
func (b base) send(ctx context.Context, call apiclient.Call, message string) (*apiclient.Response, error) {
	resp, err := b.api.Send(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.NewAPIError(0, message), err)
	}
	if err := apiclient.ExpectOK(resp, message); err != nil {
		return nil, err
	}
	return resp, nil
}

// sendJSON выполняет запрос и разбирает JSON ответа в T.
func sendJSON[T any](ctx context.Context, b base, call apiclient.Call, message string) (T, error) {
	var zero T
	resp, err := b.send(ctx, call, message)
	if err != nil {
		return zero, err
	}
	out, err := apiclient.DecodeJSON[T](resp)
	if err != nil {
		b.logger.Error("Failed to decode backend response", zap.String("path", call.Path), zap.Error(err))
		return zero, errors.Join(models.NewAPIError(resp.StatusCode, message), err)
	}
	return out, nil
}

// withQuery собирает путь вместе с query; он же ключ кэша.
func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
