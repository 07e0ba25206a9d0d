package client

import (
	"context"
	"fmt"
	"net/http"

	"storysite/internal/apiclient"
	"storysite/internal/cache"
	"storysite/internal/models"
)

// SettingsClient - настройки сайта. Ошибки несут текст сервера, если он есть.
type SettingsClient interface {
	GetPublic(ctx context.Context) (*models.SiteSettings, error)
	GetAdmin(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, settings models.SiteSettings) (*models.SiteSettings, error)
}

type settingsClient struct {
	base
}

// NewSettingsClient создает клиента настроек.
func NewSettingsClient(deps Deps) SettingsClient {
	return &settingsClient{base: newBase(deps, "SettingsClient")}
}

func (c *settingsClient) GetPublic(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := cache.GetJSON[models.SiteSettings](ctx, c.cache, prefixSettings+"/public", cache.Options{
		TTL:          SettingsTTL,
		ErrorMessage: msgSettingsFallback,
		MessageFrom:  apiclient.ServerMessage,
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *settingsClient) GetAdmin(ctx context.Context) (*models.SiteSettings, error) {
	return c.do(ctx, apiclient.Call{Method: http.MethodGet, Path: "/api/admin/settings", Auth: true})
}

func (c *settingsClient) Update(ctx context.Context, settings models.SiteSettings) (*models.SiteSettings, error) {
	updated, err := c.do(ctx, apiclient.Call{
		Method: http.MethodPut,
		Path:   "/api/admin/settings",
		Body:   settings,
		Auth:   true,
	})
	if err != nil {
		return nil, err
	}
	c.invalidate(prefixSettings)
	return updated, nil
}

func (c *settingsClient) do(ctx context.Context, call apiclient.Call) (*models.SiteSettings, error) {
	resp, err := c.api.Send(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.NewAPIError(0, msgSettingsFallback), err)
	}
	if err := apiclient.ExpectOKServerMessage(resp, msgSettingsFallback); err != nil {
		return nil, err
	}
	settings, err := apiclient.DecodeJSON[models.SiteSettings](resp)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
