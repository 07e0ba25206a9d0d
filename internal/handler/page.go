package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/models"
	"storysite/internal/store"
	"storysite/internal/web"
)

// page собирает общие данные шаблона: настройки сайта, тему, шрифт, пользователя и flash.
func (h *Handler) page(c *gin.Context, title string) web.Page {
	p := web.Page{
		Title:     title,
		Path:      c.Request.URL.RequestURI(),
		LoginPath: h.loginPath,
		Theme:     string(store.ThemeLight),
		FontSize:  store.DefaultFontSize,
		Flash:     h.popFlash(c),
	}
	if h.publicURL != "" {
		p.Canonical = strings.TrimRight(h.publicURL, "/") + c.Request.URL.Path
	}

	settings, err := h.clients.Settings.GetPublic(c.Request.Context())
	if err != nil {
		h.logger.Warn("Public settings unavailable", zap.Error(err))
	} else if settings != nil {
		p.Settings = *settings
		p.CopyProtection = settings.CopyProtectionEnabled
	}

	if bundle := bundleFrom(c); bundle != nil {
		p.Theme = string(bundle.Theme.Theme())
		p.FontSize = bundle.FontSize.Size()
		p.User = bundle.Auth.User()
	}
	return p
}

// adminPage - страница админки. Защита от копирования в админке не включается.
func (h *Handler) adminPage(c *gin.Context, title string) web.Page {
	p := h.page(c, title)
	p.Admin = true
	p.CopyProtection = false
	p.Canonical = ""
	if u := userFrom(c); u != nil {
		p.User = u
	}
	return p
}

func (h *Handler) render(c *gin.Context, status int, name string, p web.Page) {
	c.HTML(status, name, p)
}

// renderError показывает страницу ошибки с текстом из err.
func (h *Handler) renderError(c *gin.Context, status int, err error, fallback string) {
	p := h.page(c, models.UserMessage(err, fallback))
	h.render(c, status, "error.html", p)
}

// statusFor подбирает HTTP статус страницы по ошибке бэкенда.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// safeRedirect допускает только локальные пути, чтобы форма не могла увести на чужой сайт.
func safeRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
