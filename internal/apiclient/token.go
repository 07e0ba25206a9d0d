package apiclient

import "context"

// TokenSource отдает текущий bearer-токен или пустую строку.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc - функция как TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

type tokenKey struct{}

// WithToken кладет токен в контекст. Токен из контекста важнее TokenSource.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext достает токен, положенный WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
