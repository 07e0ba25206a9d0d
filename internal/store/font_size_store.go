package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"storysite/internal/storage"
)

// FontSizeKey - ключ хранилища для размера шрифта читалки.
const FontSizeKey = "storysite_font_size"

const (
	DefaultFontSize = 18
	MinFontSize     = 14
	MaxFontSize     = 28
	FontSizeStep    = 2
	DefaultFontTTL  = 30 * 24 * time.Hour
)

type storedFontSize struct {
	Size      int   `json:"size"`
	ExpiresAt int64 `json:"expiresAt"`
}

// FontSizeStore хранит размер шрифта вместе со сроком жизни значения.
// Просроченное значение читается как DefaultFontSize.
type FontSizeStore struct {
	observable[int]

	storage storage.Storage
	ttl     time.Duration
	now     func() time.Time

	mu   sync.RWMutex
	size int
}

// FontSizeOption настраивает FontSizeStore.
type FontSizeOption func(*FontSizeStore)

// WithFontTTL задает срок жизни сохраненного значения.
func WithFontTTL(ttl time.Duration) FontSizeOption {
	return func(s *FontSizeStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithFontClock подменяет часы (для тестов).
func WithFontClock(now func() time.Time) FontSizeOption {
	return func(s *FontSizeStore) { s.now = now }
}

// OpenFontSizeStore читает размер из хранилища; просроченная или испорченная запись удаляется.
func OpenFontSizeStore(ctx context.Context, st storage.Storage, opts ...FontSizeOption) (*FontSizeStore, error) {
	s := &FontSizeStore{storage: st, ttl: DefaultFontTTL, now: time.Now, size: DefaultFontSize}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := st.GetItem(ctx, FontSizeKey)
	if err != nil {
		return nil, fmt.Errorf("load font size: %w", err)
	}
	if !ok {
		return s, nil
	}
	var stored storedFontSize
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || s.now().UnixMilli() >= stored.ExpiresAt {
		if err := st.RemoveItem(ctx, FontSizeKey); err != nil {
			return nil, fmt.Errorf("drop stale font size: %w", err)
		}
		return s, nil
	}
	s.size = clampFontSize(stored.Size)
	return s, nil
}

// Size возвращает текущий размер.
func (s *FontSizeStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// SetSize сохраняет размер, ограниченный диапазоном MinFontSize..MaxFontSize, и возвращает его.
func (s *FontSizeStore) SetSize(ctx context.Context, size int) (int, error) {
	size = clampFontSize(size)
	data, err := json.Marshal(storedFontSize{Size: size, ExpiresAt: s.now().Add(s.ttl).UnixMilli()})
	if err != nil {
		return s.Size(), fmt.Errorf("marshal font size: %w", err)
	}
	if err := s.storage.SetItem(ctx, FontSizeKey, string(data)); err != nil {
		return s.Size(), fmt.Errorf("persist font size: %w", err)
	}

	s.mu.Lock()
	s.size = size
	s.mu.Unlock()

	s.notify(size)
	return size, nil
}

// Increase увеличивает размер на шаг.
func (s *FontSizeStore) Increase(ctx context.Context) (int, error) {
	return s.SetSize(ctx, s.Size()+FontSizeStep)
}

// Decrease уменьшает размер на шаг.
func (s *FontSizeStore) Decrease(ctx context.Context) (int, error) {
	return s.SetSize(ctx, s.Size()-FontSizeStep)
}

// Reset возвращает размер по умолчанию и удаляет запись.
func (s *FontSizeStore) Reset(ctx context.Context) error {
	if err := s.storage.RemoveItem(ctx, FontSizeKey); err != nil {
		return fmt.Errorf("reset font size: %w", err)
	}
	s.mu.Lock()
	s.size = DefaultFontSize
	s.mu.Unlock()

	s.notify(DefaultFontSize)
	return nil
}

func clampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}
