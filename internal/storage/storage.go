package storage

import (
	"context"
	"errors"
)

// ErrClosed возвращается после Close у реализаций, которые его поддерживают.
var ErrClosed = errors.New("storage closed")

// Storage - строковое хранилище ключ-значение, аналог localStorage браузера.
type Storage interface {
	// GetItem возвращает значение и признак наличия ключа.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
