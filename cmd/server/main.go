package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/cache"
	"storysite/internal/client"
	"storysite/internal/config"
	"storysite/internal/handler"
	"storysite/internal/messaging"
	"storysite/internal/session"
	"storysite/internal/web"
	"storysite/pkg/logger"
)

const sessionSweepInterval = time.Minute

func main() {
	// До инициализации zap пишем стандартным log
	log.Println("Запуск storysite...")

	configPath := flag.String("config", config.DefaultConfigPath, "путь к yaml-файлу конфигурации")
	templatesDir := flag.String("templates", "", "каталог шаблонов с перечитыванием на каждый запрос (разработка)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Service:    "storysite",
		Env:        cfg.Env,
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.OutputPath,
	})
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger initialized", zap.String("api", cfg.API.BaseURL))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- Клиент бэкенда и кэш ---
	api, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	}, nil, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create API client", zap.Error(err))
	}
	apiCache := cache.New(api, zapLogger, cache.WithDefaultTTL(cfg.Cache.DefaultTTL))

	var invalidator cache.Invalidator = apiCache
	if cfg.RabbitEnabled() {
		conn, err := messaging.Connect(ctx, cfg.Rabbit.URI, cfg.Rabbit.MaxRetries, cfg.Rabbit.RetryDelay, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer conn.Close()

		publisher, err := messaging.NewInvalidationPublisher(conn, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to create invalidation publisher", zap.Error(err))
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				zapLogger.Error("Failed to close invalidation publisher", zap.Error(err))
			}
		}()

		origin := uuid.NewString()
		invalidator = messaging.NewBroadcastInvalidator(apiCache, publisher, origin, zapLogger)

		consumer, err := messaging.NewInvalidationConsumer(conn, apiCache, origin, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to create invalidation consumer", zap.Error(err))
		}
		if err := consumer.Start(); err != nil {
			zapLogger.Fatal("Failed to start invalidation consumer", zap.Error(err))
		}
		defer func() {
			if err := consumer.Stop(); err != nil {
				zapLogger.Error("Failed to stop invalidation consumer", zap.Error(err))
			}
		}()
		zapLogger.Info("Cache invalidation broadcast enabled", zap.String("origin", origin))
	}

	clients := client.NewSet(client.Deps{
		API:         api,
		Cache:       apiCache,
		Invalidator: invalidator,
		Logger:      zapLogger,
	}, cfg.API.AdminLoginAPIPath)

	// --- Сессии ---
	factory := session.MemoryFactory()
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer rdb.Close()
		factory = session.RedisFactory(rdb, cfg.Session.TTL, zapLogger)
		zapLogger.Info("Sessions stored in Redis", zap.String("addr", cfg.Redis.Addr))
	}
	sessions := session.NewManager(factory, zapLogger)
	go sessions.RunSweeper(ctx, sessionSweepInterval, cfg.Session.IdleTimeout)

	// --- Шаблоны ---
	templates, debug := web.Templates(), false
	if *templatesDir != "" {
		templates, debug = os.DirFS(*templatesDir), true
	}
	renderer, err := web.NewRenderer(templates, debug, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to load templates", zap.Error(err))
	}

	h := handler.NewHandler(handler.Deps{
		Clients:  clients,
		Sessions: sessions,
		Renderer: renderer,
		Config:   cfg,
		Logger:   zapLogger,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(h, handler.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Static:         web.Static(),
		Metrics:        true,
		LoginLimit:     cfg.Server.LoginRateLimit,
		LoginWindow:    cfg.Server.LoginRateWindow,
		Redis:          rdb,
	})

	// --- Запуск HTTP сервера ---
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("public_url", cfg.Server.PublicURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
