package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"storysite/internal/models"
	"storysite/internal/storage"
)

// AuthKey - ключ хранилища для вошедшего пользователя.
const AuthKey = "storysite_auth"

// AuthStore хранит вошедшего пользователя и его токен.
type AuthStore struct {
	observable[*models.AuthUser]

	storage storage.Storage
	logger  *zap.Logger

	mu   sync.RWMutex
	user *models.AuthUser
}

// OpenAuthStore читает пользователя из хранилища.
// Испорченная запись удаляется, и стор начинает без пользователя.
func OpenAuthStore(ctx context.Context, st storage.Storage, logger *zap.Logger) (*AuthStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuthStore{storage: st, logger: logger.Named("AuthStore")}

	raw, ok, err := st.GetItem(ctx, AuthKey)
	if err != nil {
		return nil, fmt.Errorf("load auth state: %w", err)
	}
	if !ok || raw == "" {
		return s, nil
	}
	var user models.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("Stored auth state is corrupt, dropping it", zap.Error(err))
		if err := st.RemoveItem(ctx, AuthKey); err != nil {
			return nil, fmt.Errorf("drop corrupt auth state: %w", err)
		}
		return s, nil
	}
	s.user = &user
	return s, nil
}

// User возвращает копию текущего пользователя или nil.
func (s *AuthStore) User() *models.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token возвращает bearer-токен или пустую строку. Подходит как apiclient.TokenSource.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Token
}

// SetUser сохраняет пользователя; nil равносилен Clear.
func (s *AuthStore) SetUser(ctx context.Context, user *models.AuthUser) error {
	if user == nil {
		return s.Clear(ctx)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal auth user: %w", err)
	}
	if err := s.storage.SetItem(ctx, AuthKey, string(data)); err != nil {
		return fmt.Errorf("persist auth user: %w", err)
	}
	u := *user
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	s.logger.Debug("Auth user set", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	s.notify(s.User())
	return nil
}

// Clear удаляет пользователя (выход).
func (s *AuthStore) Clear(ctx context.Context) error {
	if err := s.storage.RemoveItem(ctx, AuthKey); err != nil {
		return fmt.Errorf("remove auth user: %w", err)
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.notify(nil)
	return nil
}

// Expired сообщает, истек ли токен по полю exp на момент now.
// Подпись не проверяется: это делает бэкенд. Токен без exp или не-JWT не считается истекшим.
func (s *AuthStore) Expired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return false
	}
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return !now.Before(exp)
}

// TokenExpiry читает exp из JWT без проверки подписи.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
