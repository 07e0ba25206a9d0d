package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"storysite/internal/apiclient"
	"storysite/internal/models"
)

// DefaultTTL - время жизни записи, если вызывающий не указал своё.
const DefaultTTL = 60 * time.Second

// Fetcher выполняет GET к бэкенду. Реализуется apiclient.Client.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*apiclient.Response, error)
}

// ParseFunc превращает успешный ответ в значение для кэша.
type ParseFunc func(resp *apiclient.Response) (any, error)

// Options - параметры одного чтения через кэш.
type Options struct {
	TTL          time.Duration
	CacheKey     string
	Parse        ParseFunc
	ErrorMessage string
	// MessageFrom подбирает текст ошибки по ответу не-2xx; ErrorMessage передается как запасной.
	MessageFrom func(resp *apiclient.Response, fallback string) string
}

// Invalidator сбрасывает записи кэша по префиксу ключа. Пустой префикс - все записи.
type Invalidator interface {
	Invalidate(prefix string)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// flight помечается устаревшим, если ключ инвалидировали во время загрузки.
type flight struct {
	stale bool
}

// RequestCache - TTL кэш ответов плюс не более одного запроса на ключ одновременно.
// Емкость не ограничена, просроченные записи вытесняются только при следующем чтении.
type RequestCache struct {
	fetcher    Fetcher
	defaultTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger

	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]*flight
	group    singleflight.Group
}

// Option настраивает RequestCache.
type Option func(*RequestCache)

// WithDefaultTTL меняет TTL по умолчанию.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *RequestCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(c *RequestCache) { c.now = now }
}

// New создает кэш поверх fetcher.
func New(fetcher Fetcher, logger *zap.Logger, opts ...Option) *RequestCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &RequestCache{
		fetcher:    fetcher,
		defaultTTL: DefaultTTL,
		now:        time.Now,
		logger:     logger.Named("RequestCache"),
		entries:    make(map[string]entry),
		inflight:   make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get возвращает значение для url: живую запись из кэша, результат уже идущего запроса
// или результат нового запроса. Отмена ctx прекращает только ожидание этого вызывающего.
func (c *RequestCache) Get(ctx context.Context, url string, opts Options) (any, error) {
	key := opts.CacheKey
	if key == "" {
		key = url
	}

	if value, ok := c.lookup(key); ok {
		hitsTotal.Inc()
		return value, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.load(fetchCtx, key, url, opts)
	})

	select {
	case res := <-ch:
		if res.Shared {
			sharedTotal.Inc()
		}
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *RequestCache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.After(c.now()) {
		delete(c.entries, key)
		entriesGauge.Set(float64(len(c.entries)))
		return nil, false
	}
	return e.value, true
}

func (c *RequestCache) load(ctx context.Context, key, url string, opts Options) (any, error) {
	// Предыдущая загрузка могла завершиться между lookup и DoChan.
	if value, ok := c.lookup(key); ok {
		hitsTotal.Inc()
		return value, nil
	}

	fl := &flight{}
	c.mu.Lock()
	c.inflight[key] = fl
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.inflight[key] == fl {
			delete(c.inflight, key)
		}
		c.mu.Unlock()
	}()

	missesTotal.Inc()
	start := c.now()
	log := c.logger.With(zap.String("key", key))

	resp, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		errorsTotal.Inc()
		log.Warn("Fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.NewAPIError(0, opts.ErrorMessage), err)
	}
	if !resp.OK() {
		errorsTotal.Inc()
		log.Warn("Backend returned non-2xx", zap.Int("status", resp.StatusCode))
		message := opts.ErrorMessage
		if opts.MessageFrom != nil {
			message = opts.MessageFrom(resp, message)
		}
		return nil, models.NewAPIError(resp.StatusCode, message)
	}

	parse := opts.Parse
	if parse == nil {
		parse = parseAny
	}
	value, err := parse(resp)
	if err != nil {
		errorsTotal.Inc()
		log.Error("Failed to parse cached response", zap.Error(err))
		return nil, err
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	if fl.stale {
		log.Debug("Key invalidated during fetch, result not stored")
	} else {
		c.entries[key] = entry{value: value, expiresAt: start.Add(ttl)}
		entriesGauge.Set(float64(len(c.entries)))
	}
	c.mu.Unlock()

	return value, nil
}

// Invalidate удаляет все ключи с данным префиксом; пустой префикс очищает кэш целиком.
// Результат идущих загрузок по этим ключам не сохраняется.
func (c *RequestCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	// Идущая загрузка продолжается, новые вызовы присоединяются к ней,
	// но ее результат в кэш уже не попадет.
	for key, fl := range c.inflight {
		if strings.HasPrefix(key, prefix) {
			fl.stale = true
		}
	}
	entriesGauge.Set(float64(len(c.entries)))
	c.logger.Debug("Cache invalidated", zap.String("prefix", prefix), zap.Int("removed", removed))
}

// Clear очищает кэш целиком.
func (c *RequestCache) Clear() {
	c.Invalidate("")
}

// Len - количество записей, включая еще не вытесненные просроченные.
func (c *RequestCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
