package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config - настройки zap для storysite и storyctl.
type Config struct {
	// Service становится именем корневого логгера: "storysite", "storysite.HTTP".
	Service string
	// Env добавляется полем env; в development включается caller.
	Env string
	// Level: debug, info, warn, error. Пусто - info.
	Level string
	// Encoding: json или console. Пусто - console в development, иначе json.
	Encoding string
	// OutputPath - файл или stdout/stderr; пусто - stdout.
	OutputPath string
	// Writer заменяет OutputPath. storyctl пишет в свой stderr.
	Writer io.Writer
}

// ParseLevel разбирает уровень без учета регистра. Пустая строка - info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(s)
}

// New создает zap.Logger. Некорректный уровень не ошибка: пишем в stderr и берем info.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		// Логгера еще нет, поэтому stderr
		fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'. Error: %v\n", cfg.Level, err)
		level = zapcore.InfoLevel
	}
	dev := strings.EqualFold(cfg.Env, "development")

	sink, err := openSink(cfg)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(cfg.Encoding, dev), sink, level)
	opts := []zap.Option{zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if dev {
		opts = append(opts, zap.AddCaller())
	}

	logger := zap.New(core, opts...)
	if cfg.Service != "" {
		logger = logger.Named(cfg.Service)
	}
	if cfg.Env != "" {
		logger = logger.With(zap.String("env", cfg.Env))
	}
	return logger, nil
}

func newEncoder(encoding string, dev bool) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "console":
		return zapcore.NewConsoleEncoder(encoderCfg)
	case "json":
		return zapcore.NewJSONEncoder(encoderCfg)
	case "":
		if dev {
			return zapcore.NewConsoleEncoder(encoderCfg)
		}
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

func openSink(cfg Config) (zapcore.WriteSyncer, error) {
	if cfg.Writer != nil {
		return zapcore.Lock(zapcore.AddSync(cfg.Writer)), nil
	}
	path := cfg.OutputPath
	if path == "" {
		path = "stdout"
	}
	sink, _, err := zap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %s: %w", path, err)
	}
	return sink, nil
}
