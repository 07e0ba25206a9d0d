package handler

import (
	"io/fs"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"storysite/pkg/middleware"
)

// RouterOptions - настройки сборки gin.Engine.
type RouterOptions struct {
	AllowedOrigins []string
	Static         fs.FS
	// Metrics включает /metrics. В тестах выключено: метрики регистрируются глобально.
	Metrics bool
	// LoginLimit запросов на вход за LoginWindow с одного IP; 0 - без ограничения.
	LoginLimit  uint
	LoginWindow time.Duration
	// Redis хранит счетчики лимитера; nil - в памяти процесса.
	Redis *redis.Client
}

// NewRouter собирает gin.Engine со всеми middleware и маршрутами.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = true
	router.HTMLRender = h.renderer

	router.Use(gin.Recovery())
	router.Use(middleware.GinZapLogger(h.logger.Named("HTTP")))
	router.Use(h.ErrorMiddleware())

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	if opts.Static != nil {
		router.StaticFS("/static", http.FS(opts.Static))
	}

	h.RegisterRoutes(router, h.loginRateLimiter(opts))

	if opts.Metrics {
		p := ginprometheus.NewPrometheus("storysite")
		p.Use(router)
	}
	return router
}

func (h *Handler) loginRateLimiter(opts RouterOptions) gin.HandlerFunc {
	if opts.LoginLimit == 0 {
		return nil
	}
	window := opts.LoginWindow
	if window <= 0 {
		window = time.Minute
	}

	var store ratelimit.Store
	if opts.Redis != nil {
		store = ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: opts.Redis,
			Rate:        window,
			Limit:       opts.LoginLimit,
		})
	} else {
		store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  window,
			Limit: opts.LoginLimit,
		})
	}

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			h.logger.Warn("Login rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
			)
			loginAttemptsTotal.WithLabelValues("limited").Inc()
			h.renderLogin(c, http.StatusTooManyRequests, "", msgTooManyAttempts)
			c.Abort()
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
