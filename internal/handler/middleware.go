package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/models"
	"storysite/internal/session"
	"storysite/internal/store"
)

const (
	bundleContextKey    = "storysite.bundle"
	sessionIDContextKey = "storysite.session_id"
	userContextKey      = "storysite.user"
)

// sessionMiddleware выдает cookie сессии и кладет в контекст сторы этой сессии.
// Cookie без действительной подписи заменяется новой сессией.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			id string
			ok bool
		)
		if raw, err := c.Cookie(session.CookieName); err == nil {
			id, ok = h.cookies.Decode(raw)
		}
		if !ok {
			id = h.issueSession(c)
		}

		bundle, err := h.sessions.Bundle(c.Request.Context(), id)
		if err != nil {
			h.logger.Error("Failed to open session", zap.String("session_id", id), zap.Error(err))
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(sessionIDContextKey, id)
		c.Set(bundleContextKey, bundle)
		c.Next()
	}
}

// issueSession выдает новый идентификатор и подписанную cookie.
func (h *Handler) issueSession(c *gin.Context) string {
	id := session.NewID()
	h.setCookie(c, session.CookieName, h.cookies.Encode(id), h.cookie.maxAge)
	return id
}

// rotateSession переносит сессию на новый идентификатор: тема и шрифт копируются,
// пользователь задается заново (nil - без входа), старая сессия уничтожается.
func (h *Handler) rotateSession(c *gin.Context, user *models.AuthUser) error {
	ctx := c.Request.Context()
	old := bundleFrom(c)
	oldID := c.GetString(sessionIDContextKey)

	id := session.NewID()
	bundle, err := h.sessions.Bundle(ctx, id)
	if err != nil {
		return err
	}
	if old != nil {
		if err := bundle.Theme.SetTheme(ctx, old.Theme.Theme()); err != nil {
			return err
		}
		if size := old.FontSize.Size(); size != store.DefaultFontSize {
			if _, err := bundle.FontSize.SetSize(ctx, size); err != nil {
				return err
			}
		}
	}
	if user != nil {
		if err := bundle.Auth.SetUser(ctx, user); err != nil {
			return err
		}
	}
	h.setCookie(c, session.CookieName, h.cookies.Encode(id), h.cookie.maxAge)

	if old != nil {
		if err := old.Auth.Clear(ctx); err != nil {
			h.logger.Warn("Failed to clear old session auth", zap.Error(err))
		}
	}
	if oldID != "" {
		if err := h.sessions.Destroy(ctx, oldID); err != nil {
			h.logger.Warn("Failed to destroy old session", zap.Error(err))
		}
	}
	c.Set(sessionIDContextKey, id)
	c.Set(bundleContextKey, bundle)
	return nil
}

// adminMiddleware пускает только администратора с непросроченным токеном.
// Токен кладется в контекст запроса, откуда его берет apiclient.
func (h *Handler) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		bundle := bundleFrom(c)
		user := bundle.Auth.User()

		if user != nil && bundle.Auth.Expired(h.now()) {
			h.logger.Info("Admin token expired", zap.String("username", user.Username))
			if err := bundle.Auth.Clear(c.Request.Context()); err != nil {
				h.logger.Error("Failed to clear expired auth", zap.Error(err))
			}
			h.setFlash(c, "error", msgSessionExpired)
			user = nil
		}
		if !user.IsAdmin() {
			c.Redirect(http.StatusSeeOther, h.loginPath)
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Request = c.Request.WithContext(apiclient.WithToken(c.Request.Context(), user.Token))
		c.Next()
	}
}

func bundleFrom(c *gin.Context) *store.Bundle {
	v, ok := c.Get(bundleContextKey)
	if !ok {
		return nil
	}
	b, _ := v.(*store.Bundle)
	return b
}

func userFrom(c *gin.Context) *models.AuthUser {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.AuthUser)
	return u
}

// adminFailed обрабатывает ошибку бэкенда в админке. 401 означает, что токен больше не принимается:
// пользователь разлогинивается и отправляется на страницу входа. Возвращает true, если ответ уже отправлен.
func (h *Handler) adminFailed(c *gin.Context, err error) bool {
	if !errors.Is(err, models.ErrUnauthorized) {
		return false
	}
	if bundle := bundleFrom(c); bundle != nil {
		if clearErr := bundle.Auth.Clear(c.Request.Context()); clearErr != nil {
			h.logger.Error("Failed to clear rejected auth", zap.Error(clearErr))
		}
	}
	h.setFlash(c, "error", msgSessionExpired)
	c.Redirect(http.StatusSeeOther, h.loginPath)
	return true
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cookie.secure, true)
}
