package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zapcore"
)

const (
	defaultAppPort              = 8501
	defaultLogLevel             = "info"
	defaultMaxUploadBytes       = 200 << 20
	defaultMaxConcurrentRenders = 1
)

type Config struct {
	AppPort              int `validate:"gt=0,lte=65535"`
	LogLevel             zapcore.Level
	MaxUploadBytes       int64 `validate:"gt=0"`
	MaxConcurrentRenders int64 `validate:"gt=0"`
	RenderConfigPath     string
	Render               *RenderConfig `validate:"-"`
}

// Load reads the environment. Unset variables take their defaults; set but
// malformed ones are errors. The render profile is read from RENDER_CONFIG_PATH when set.
func Load() (*Config, error) {
	appPort, err := getEnvInt("APP_PORT", defaultAppPort)
	if err != nil {
		return nil, err
	}
	maxUpload, err := getEnvInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	maxRenders, err := getEnvInt("MAX_CONCURRENT_RENDERS", defaultMaxConcurrentRenders)
	if err != nil {
		return nil, err
	}

	level, err := zapcore.ParseLevel(getEnv("LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		AppPort:              appPort,
		LogLevel:             level,
		MaxUploadBytes:       int64(maxUpload),
		MaxConcurrentRenders: int64(maxRenders),
		RenderConfigPath:     getEnv("RENDER_CONFIG_PATH", ""),
		Render:               DefaultRenderConfig(),
	}

	if cfg.RenderConfigPath != "" {
		cfg.Render, err = LoadRenderConfig(cfg.RenderConfigPath)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return c.Render.Validate()
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
