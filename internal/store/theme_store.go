package store

import (
	"context"
	"fmt"
	"sync"

	"storysite/internal/storage"
)

// ThemeKey - ключ хранилища для темы оформления.
const ThemeKey = "storysite_theme"

// Theme - тема оформления.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme разбирает значение; неизвестное значение дает false.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

// ThemeStore хранит выбранную тему. Светлая тема - значение по умолчанию и в хранилище не пишется.
type ThemeStore struct {
	observable[Theme]

	storage storage.Storage

	mu    sync.RWMutex
	theme Theme
}

// OpenThemeStore читает тему из хранилища.
func OpenThemeStore(ctx context.Context, st storage.Storage) (*ThemeStore, error) {
	s := &ThemeStore{storage: st, theme: ThemeLight}
	raw, ok, err := st.GetItem(ctx, ThemeKey)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	if ok {
		if theme, valid := ParseTheme(raw); valid {
			s.theme = theme
		}
	}
	return s, nil
}

// Theme возвращает текущую тему.
func (s *ThemeStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme сохраняет тему и оповещает подписчиков.
func (s *ThemeStore) SetTheme(ctx context.Context, theme Theme) error {
	if _, ok := ParseTheme(string(theme)); !ok {
		return fmt.Errorf("unknown theme %q", theme)
	}
	var err error
	if theme == ThemeLight {
		err = s.storage.RemoveItem(ctx, ThemeKey)
	} else {
		err = s.storage.SetItem(ctx, ThemeKey, string(theme))
	}
	if err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}

	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()

	s.notify(theme)
	return nil
}

// Toggle переключает светлую и темную тему и возвращает новую.
func (s *ThemeStore) Toggle(ctx context.Context) (Theme, error) {
	next := ThemeDark
	if s.Theme() == ThemeDark {
		next = ThemeLight
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return s.Theme(), err
	}
	return next, nil
}
