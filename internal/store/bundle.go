package store

import (
	"context"

	"go.uber.org/zap"

	"storysite/internal/storage"
)

// Bundle - все сторы одного клиента (браузерной сессии или терминала) над одним хранилищем.
type Bundle struct {
	Auth     *AuthStore
	Theme    *ThemeStore
	FontSize *FontSizeStore
}

// OpenBundle открывает все сторы над st.
func OpenBundle(ctx context.Context, st storage.Storage, logger *zap.Logger) (*Bundle, error) {
	auth, err := OpenAuthStore(ctx, st, logger)
	if err != nil {
		return nil, err
	}
	theme, err := OpenThemeStore(ctx, st)
	if err != nil {
		return nil, err
	}
	font, err := OpenFontSizeStore(ctx, st)
	if err != nil {
		return nil, err
	}
	return &Bundle{Auth: auth, Theme: theme, FontSize: font}, nil
}
