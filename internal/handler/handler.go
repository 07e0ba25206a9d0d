package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/client"
	"storysite/internal/config"
	"storysite/internal/session"
	"storysite/internal/web"
)

// DefaultViewDelay - через сколько чтения засчитывается просмотр.
const DefaultViewDelay = 15 * time.Second

// Handler - витрина и админка поверх клиентов API.
type Handler struct {
	clients   *client.Set
	sessions  *session.Manager
	renderer  *web.Renderer
	logger    *zap.Logger
	loginPath string
	publicURL string
	cookie    cookieOptions
	cookies   *session.CookieCodec
	secret    []byte
	viewDelay time.Duration
	now       func() time.Time
}

type cookieOptions struct {
	maxAge int
	secure bool
}

// Deps - зависимости обработчиков.
type Deps struct {
	Clients  *client.Set
	Sessions *session.Manager
	Renderer *web.Renderer
	Config   *config.Config
	Logger   *zap.Logger
}

// NewHandler создает обработчик.
func NewHandler(deps Deps) *Handler {
	cfg := deps.Config
	return &Handler{
		clients:   deps.Clients,
		sessions:  deps.Sessions,
		renderer:  deps.Renderer,
		logger:    deps.Logger.Named("Handler"),
		loginPath: cfg.Server.AdminLoginPagePath,
		publicURL: cfg.Server.PublicURL,
		cookie: cookieOptions{
			maxAge: int(cfg.Session.TTL.Seconds()),
			secure: cfg.Session.SecureCookie,
		},
		cookies:   session.NewCookieCodec([]byte(cfg.Session.Secret)),
		secret:    []byte(cfg.Session.Secret),
		viewDelay: DefaultViewDelay,
		now:       time.Now,
	}
}

// RegisterRoutes регистрирует витрину, скрытую страницу входа и админку.
// loginLimiter ограничивает POST на страницу входа; nil - без ограничения.
func (h *Handler) RegisterRoutes(router *gin.Engine, loginLimiter gin.HandlerFunc) {
	router.GET("/health", h.healthCheck)
	router.HEAD("/health", h.healthCheck)

	site := router.Group("", h.sessionMiddleware())
	site.GET("/", h.home)
	site.GET("/stories", h.listStories)
	site.GET("/stories/:slug", h.storyDetail)
	site.GET("/stories/:slug/read", h.readStory)
	site.POST("/stories/:slug/like", h.likeStory)
	site.POST("/stories/:slug/view", h.viewStory)
	site.GET("/categories", h.categories)
	site.GET("/donate", h.donatePage)
	site.POST("/donate", h.donate)
	site.POST("/preferences/theme", h.setTheme)
	site.POST("/preferences/font-size", h.setFontSize)
	site.GET("/ws/preferences", h.preferencesSocket)

	site.GET(h.loginPath, h.showLoginPage)
	if loginLimiter != nil {
		site.POST(h.loginPath, loginLimiter, h.handleLogin)
	} else {
		site.POST(h.loginPath, h.handleLogin)
	}

	admin := site.Group("/admin", h.adminMiddleware())
	admin.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
	admin.GET("/dashboard", h.dashboard)
	admin.POST("/logout", h.handleLogout)

	admin.GET("/stories", h.adminStories)
	admin.GET("/stories/create", h.newStoryForm)
	admin.POST("/stories", h.createStory)
	admin.GET("/stories/:id/edit", h.editStoryForm)
	admin.POST("/stories/:id", h.updateStory)
	admin.POST("/stories/:id/delete", h.deleteStory)

	admin.GET("/categories", h.adminCategories)
	admin.POST("/categories", h.createCategory)
	admin.POST("/categories/:id", h.updateCategory)
	admin.POST("/categories/:id/delete", h.deleteCategory)

	admin.GET("/donations", h.adminDonations)
	admin.POST("/donations/:id/status", h.updateDonationStatus)

	admin.GET("/settings", h.settingsPage)
	admin.POST("/settings", h.updateSettings)

	admin.POST("/uploads/:kind", h.upload)

	// Неизвестные адреса ведут на главную.
	router.NoRoute(func(c *gin.Context) { c.Redirect(http.StatusFound, "/") })
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
