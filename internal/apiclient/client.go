package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Config - параметры подключения к REST бэкенду.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// File - файл для multipart запроса.
type File struct {
	Param    string
	FileName string
	Reader   io.Reader
}

// Call описывает один запрос к бэкенду.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Auth - добавить Authorization: Bearer, если токен известен.
	Auth  bool
	Files []File
}

// Response - сырой ответ бэкенда. Тело уже прочитано целиком.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK сообщает, что код ответа 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client - обертка над resty для всех обращений к API. Повторов нет.
type Client struct {
	rc      *resty.Client
	baseURL string
	tokens  TokenSource
	logger  *zap.Logger
}

// New создает клиента. tokens может быть nil: тогда токен берется только из контекста.
func New(cfg Config, tokens TokenSource, logger *zap.Logger) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", cfg.BaseURL, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	log := logger.Named("APIClient")

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetLogger(restyLogger{l: log.Sugar()}).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{
		rc:      rc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
		logger:  log,
	}, nil
}

// BaseURL возвращает адрес бэкенда без завершающего слэша.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch выполняет публичный GET. path может содержать query.
// Подходит как источник данных для кэша запросов.
func (c *Client) Fetch(ctx context.Context, path string) (*Response, error) {
	return c.Send(ctx, Call{Method: http.MethodGet, Path: path})
}

// Send выполняет запрос. Ответ с любым кодом возвращается без ошибки;
// ошибка означает только сбой транспорта.
func (c *Client) Send(ctx context.Context, call Call) (*Response, error) {
	method := call.Method
	if method == "" {
		method = http.MethodGet
	}
	log := c.logger.With(zap.String("method", method), zap.String("path", call.Path))

	req := c.rc.R().SetContext(ctx)
	if len(call.Query) > 0 {
		req.SetQueryParamsFromValues(call.Query)
	}
	if call.Auth {
		if token := c.resolveToken(ctx); token != "" {
			req.SetAuthToken(token)
		} else {
			log.Debug("No bearer token available, sending without Authorization")
		}
	}
	if call.Body != nil {
		req.SetBody(call.Body)
	}
	for _, f := range call.Files {
		req.SetFileReader(f.Param, f.FileName, f.Reader)
	}

	start := time.Now()
	resp, err := req.Execute(method, call.Path)
	if err != nil {
		requestsTotal.WithLabelValues(method, "error").Inc()
		log.Warn("Request to backend failed", zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, call.Path, err)
	}
	requestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode())).Inc()
	log.Debug("Backend responded",
		zap.Int("status", resp.StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

func (c *Client) resolveToken(ctx context.Context) string {
	if token := TokenFromContext(ctx); token != "" {
		return token
	}
	if c.tokens != nil {
		return c.tokens.Token()
	}
	return ""
}

// restyLogger направляет внутренние сообщения resty в zap.
type restyLogger struct {
	l *zap.SugaredLogger
}

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Errorf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warnf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debugf(format, v...) }
