package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config - настройки веб-сервиса.
type Config struct {
	Env     string `yaml:"env" env:"ENV" env-default:"development"`
	API     APIConfig
	Server  ServerConfig
	Session SessionConfig
	Redis   RedisConfig
	Rabbit  RabbitMQConfig
	Cache   CacheConfig
	CORS    CORSConfig
	Log     LogConfig
}

// APIConfig - внешний REST бэкенд.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8080"`
	AdminLoginAPIPath string        `yaml:"admin_login_api_path" env:"ADMIN_LOGIN_API_PATH" env-default:"/__internal__/auth/login"`
	Timeout           time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s"`
	UserAgent         string        `yaml:"user_agent" env:"API_USER_AGENT" env-default:"storysite-web"`
}

// ServerConfig - HTTP сервер фронта.
type ServerConfig struct {
	Port               string        `yaml:"port" env:"PORT" env-default:"3000"`
	PublicURL          string        `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:3000"`
	AdminLoginPagePath string        `yaml:"admin_login_page_path" env:"ADMIN_LOGIN_PAGE_PATH" env-default:"/__internal__/login"`
	ReadTimeout        time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout       time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	LoginRateLimit     uint          `yaml:"login_rate_limit" env:"LOGIN_RATE_LIMIT" env-default:"5"`
	LoginRateWindow    time.Duration `yaml:"login_rate_window" env:"LOGIN_RATE_WINDOW" env-default:"1m"`
}

// SessionConfig - cookie сессии браузера.
type SessionConfig struct {
	Secret       string        `yaml:"secret" env:"SESSION_SECRET" env-default:"storysite-dev-secret"`
	TTL          time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"720h"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SESSION_IDLE_TIMEOUT" env-default:"30m"`
	SecureCookie bool          `yaml:"secure_cookie" env:"SESSION_SECURE_COOKIE" env-default:"false"`
}

// RedisConfig - хранилище сессий. Пустой адрес означает хранение в памяти процесса.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// RabbitMQConfig - рассылка сбросов кэша между экземплярами. Пустой URI отключает ее.
type RabbitMQConfig struct {
	URI        string        `yaml:"uri" env:"RABBITMQ_URI"`
	MaxRetries int           `yaml:"max_retries" env:"RABBITMQ_MAX_RETRIES" env-default:"10"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"3s"`
}

// CacheConfig - кэш GET-запросов.
type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"60s"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	OutputPath string `yaml:"output_path" env:"LOG_OUTPUT"`
}

const devSessionSecret = "storysite-dev-secret"

// DefaultConfigPath - yaml-файл, который читается, если существует.
const DefaultConfigPath = "config.yml"

// Load читает .env (если есть), затем yaml-файл и переменные окружения.
// Отсутствующий файл конфигурации не ошибка: используются только переменные окружения.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigPath
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL is empty")
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	for name, p := range map[string]string{
		"ADMIN_LOGIN_API_PATH":  c.API.AdminLoginAPIPath,
		"ADMIN_LOGIN_PAGE_PATH": c.Server.AdminLoginPagePath,
	} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%s must start with '/': %q", name, p)
		}
	}
	if strings.HasPrefix(c.Server.AdminLoginPagePath, "/admin") {
		return fmt.Errorf("ADMIN_LOGIN_PAGE_PATH must not live under /admin: %q", c.Server.AdminLoginPagePath)
	}
	if c.IsProduction() && (c.Session.Secret == "" || c.Session.Secret == devSessionSecret) {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("CACHE_DEFAULT_TTL must be positive: %s", c.Cache.DefaultTTL)
	}
	return nil
}

// IsProduction сообщает, запущен ли сервис в боевом окружении.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// RedisEnabled - true, если сессии хранятся в redis.
func (c *Config) RedisEnabled() bool { return c.Redis.Addr != "" }

// RabbitEnabled - true, если включена рассылка сбросов кэша.
func (c *Config) RabbitEnabled() bool { return c.Rabbit.URI != "" }
