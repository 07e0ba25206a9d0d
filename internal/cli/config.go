package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config - настройки storyctl из переменных окружения. Флаги команды имеют приоритет.
type Config struct {
	APIBaseURL string        `envconfig:"STORYCTL_API_URL" default:"http://localhost:8080"`
	LoginPath  string        `envconfig:"STORYCTL_LOGIN_PATH" default:"/__internal__/auth/login"`
	StateFile  string        `envconfig:"STORYCTL_STATE_FILE"`
	Timeout    time.Duration `envconfig:"STORYCTL_TIMEOUT" default:"15s"`
	LogLevel   string        `envconfig:"STORYCTL_LOG_LEVEL" default:"warn"`
}

// LoadConfig читает окружение. Пустой StateFile заменяется путем в каталоге конфигурации пользователя.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load storyctl config: %w", err)
	}
	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFile()
	}
	return &cfg, nil
}

// DefaultStateFile - файл, в котором CLI хранит вход, тему и размер шрифта.
func DefaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storyctl.json"
	}
	return filepath.Join(dir, "storyctl", "state.json")
}
