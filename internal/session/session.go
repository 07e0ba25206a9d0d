package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storysite/internal/storage"
	"storysite/internal/store"
)

// CookieName - cookie с идентификатором сессии браузера.
const CookieName = "storysite_sid"

// DefaultIdleTimeout - через сколько простоя бандл выгружается из памяти процесса.
// Данные в redis при этом остаются.
const DefaultIdleTimeout = 30 * time.Minute

// StorageFactory создает хранилище для конкретной сессии.
type StorageFactory func(sessionID string) storage.Storage

// MemoryFactory держит хранилища в памяти процесса.
func MemoryFactory() StorageFactory {
	return func(string) storage.Storage { return storage.NewMemory() }
}

// RedisFactory хранит данные сессии в redis со скользящим TTL.
func RedisFactory(client *redis.Client, ttl time.Duration, logger *zap.Logger) StorageFactory {
	return func(sessionID string) storage.Storage {
		return storage.NewRedis(client, sessionID, ttl, logger)
	}
}

type entry struct {
	bundle   *store.Bundle
	storage  storage.Storage
	lastSeen time.Time
}

// Manager выдает бандлы сторов по идентификатору сессии.
// Один и тот же бандл возвращается всем запросам сессии, поэтому подписки
// (websocket) видят изменения, сделанные обычными запросами.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory StorageFactory
	now     func() time.Time
	logger  *zap.Logger
}

// NewManager создает менеджер сессий.
func NewManager(factory StorageFactory, logger *zap.Logger) *Manager {
	return &Manager{
		entries: make(map[string]*entry),
		factory: factory,
		now:     time.Now,
		logger:  logger.Named("SessionManager"),
	}
}

// NewID выдает новый идентификатор сессии.
func NewID() string {
	return uuid.NewString()
}

// ValidID проверяет, что значение cookie похоже на выданный нами идентификатор.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Bundle возвращает сторы сессии, открывая их при первом обращении.
func (m *Manager) Bundle(ctx context.Context, sessionID string) (*store.Bundle, error) {
	if !ValidID(sessionID) {
		return nil, fmt.Errorf("invalid session id %q", sessionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[sessionID]; ok {
		e.lastSeen = m.now()
		return e.bundle, nil
	}

	st := m.factory(sessionID)
	bundle, err := store.OpenBundle(ctx, st, m.logger)
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", sessionID, err)
	}
	m.entries[sessionID] = &entry{bundle: bundle, storage: st, lastSeen: m.now()}
	m.logger.Debug("Session opened", zap.String("session_id", sessionID))
	return bundle, nil
}

// Destroy забывает сессию и удаляет ее данные, если хранилище это умеет.
// Данные удаляются и тогда, когда бандл уже выгружен или открыт другим экземпляром.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if !ValidID(sessionID) {
		return fmt.Errorf("invalid session id %q", sessionID)
	}

	m.mu.Lock()
	e, ok := m.entries[sessionID]
	delete(m.entries, sessionID)
	m.mu.Unlock()

	st := m.factory(sessionID)
	if ok {
		st = e.storage
	}
	if d, ok := st.(interface{ Destroy(context.Context) error }); ok {
		if err := d.Destroy(ctx); err != nil {
			return fmt.Errorf("destroy session %s: %w", sessionID, err)
		}
	}
	m.logger.Debug("Session destroyed", zap.String("session_id", sessionID))
	return nil
}

// Sweep выгружает бандлы, к которым не обращались дольше idle. Возвращает число выгруженных.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("Idle sessions evicted", zap.Int("count", removed))
	}
	return removed
}

// RunSweeper периодически вызывает Sweep до отмены ctx.
func (m *Manager) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(idle)
		}
	}
}

// Len - число открытых сессий.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
