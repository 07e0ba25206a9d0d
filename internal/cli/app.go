package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"storysite/internal/apiclient"
	"storysite/internal/cache"
	"storysite/internal/client"
	"storysite/internal/storage"
	"storysite/internal/store"
	"storysite/pkg/logger"
)

var (
	errNotLoggedIn = errors.New("not logged in, run `storyctl login` first")
	errExpired     = errors.New("session expired, run `storyctl login` again")
)

// App - состояние одного запуска storyctl: клиенты API и сторы из файла состояния.
type App struct {
	out    io.Writer
	errOut io.Writer
	log    zerolog.Logger

	flags struct {
		apiURL    string
		stateFile string
		logLevel  string
		json      bool
		traceAPI  bool
	}

	cfg     *Config
	clients *client.Set
	bundle  *store.Bundle
	state   *storage.File
	now     func() time.Time
}

func newApp(out, errOut io.Writer) *App {
	return &App{out: out, errOut: errOut, log: zerolog.Nop(), now: time.Now}
}

// setup собирает конфигурацию, логгер, клиентов и открывает файл состояния.
func (a *App) setup(ctx context.Context, changed func(string) bool) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if changed("api-url") {
		cfg.APIBaseURL = a.flags.apiURL
	}
	if changed("state-file") {
		cfg.StateFile = a.flags.stateFile
	}
	if changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	a.cfg = cfg
	a.log = newLogger(a.errOut, cfg.LogLevel)

	libLog, err := a.libraryLogger()
	if err != nil {
		return err
	}

	a.state = storage.NewFile(cfg.StateFile)
	a.bundle, err = store.OpenBundle(ctx, a.state, libLog)
	if err != nil {
		return fmt.Errorf("open state file %s: %w", cfg.StateFile, err)
	}
	a.log.Debug().Str("state_file", cfg.StateFile).Str("api", cfg.APIBaseURL).Msg("storyctl configured")

	tokens := apiclient.TokenSourceFunc(func() string { return a.bundle.Auth.Token() })
	api, err := apiclient.New(apiclient.Config{
		BaseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		Timeout:   cfg.Timeout,
		UserAgent: "storyctl",
	}, tokens, libLog)
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}
	a.clients = client.NewSet(client.Deps{
		API:    api,
		Cache:  cache.New(api, libLog),
		Logger: libLog,
	}, cfg.LoginPath)
	return nil
}

// requireAdmin проверяет, что в файле состояния есть непросроченный вход администратора.
func (a *App) requireAdmin() error {
	user := a.bundle.Auth.User()
	if user == nil {
		return errNotLoggedIn
	}
	if a.bundle.Auth.Expired(a.now()) {
		return errExpired
	}
	return nil
}

// libraryLogger - zap для клиентов API и сторов. Без --trace-api они молчат.
func (a *App) libraryLogger() (*zap.Logger, error) {
	if !a.flags.traceAPI {
		return zap.NewNop(), nil
	}
	l, err := logger.New(logger.Config{
		Service:  "storyctl",
		Level:    "debug",
		Encoding: "console",
		Writer:   a.errOut,
	})
	if err != nil {
		return nil, fmt.Errorf("create trace logger: %w", err)
	}
	return l, nil
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
