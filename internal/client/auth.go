package client

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/models"
)

// AuthClient выполняет вход администратора по скрытому пути.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*models.AuthUser, error)
}

type authClient struct {
	base
	loginPath string
}

// NewAuthClient создает клиента входа. loginPath - путь API входа.
func NewAuthClient(deps Deps, loginPath string) AuthClient {
	return &authClient{base: newBase(deps, "AuthClient"), loginPath: loginPath}
}

type loginResponse struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

func (c *authClient) Login(ctx context.Context, username, password string) (*models.AuthUser, error) {
	resp, err := sendJSON[loginResponse](ctx, c.base, apiclient.Call{
		Method: http.MethodPost,
		Path:   c.loginPath,
		Body:   models.LoginRequest{Username: username, Password: password},
	}, msgLoginFailed)
	if err != nil {
		c.logger.Warn("Login failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &models.AuthUser{Username: resp.Username, Role: resp.Role, Token: resp.Token}, nil
}
