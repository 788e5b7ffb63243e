package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultServerPort        = "8080"
	defaultAPIPrefix         = "/v1"
	defaultRequestTimeout    = 30 * time.Second
	defaultShutdownTimeout   = 15 * time.Second
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultMaxOpenConns      = 25
	defaultMaxIdleConns      = 10
	defaultConnMaxLifetime   = 5 * time.Minute
	defaultRabbitMQQueueName = "lab_strava_events"
	defaultS3Region          = "us-east-1"
	defaultAvatarMaxBytes    = 5 << 20
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	ServerPort      string        `env:"SERVER_PORT"`
	APIPrefix       string        `env:"API_PREFIX"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	// указатель, чтобы отличить "не задано" (по умолчанию true) от явного false
	MigrationsEnabled *bool `env:"MIGRATIONS_ENABLED"`

	DB struct {
		MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"`
		ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME"`
	}

	// Пустой URL отключает публикацию событий
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME"`
	}

	// Настройки S3/MinIO для аватаров; пустой endpoint отключает загрузку
	S3 struct {
		Endpoint        string `env:"S3_ENDPOINT"`
		AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `env:"S3_BUCKET_NAME"`
		Region          string `env:"S3_REGION"`
		UseSSL          bool   `env:"S3_USE_SSL"`
		PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	}

	AvatarMaxBytes int64 `env:"AVATAR_MAX_BYTES"`
}

// RunMigrations сообщает, нужно ли применять миграции при старте сервера
func (c *Config) RunMigrations() bool {
	return c.MigrationsEnabled == nil || *c.MigrationsEnabled
}

// AvatarsEnabled сообщает, настроено ли хранилище аватаров
func (c *Config) AvatarsEnabled() bool {
	return c.S3.Endpoint != ""
}

// EventsEnabled сообщает, настроен ли брокер событий
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults вручную выставляет значения по умолчанию для незаданных полей
func applyDefaults(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = defaultServerPort
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = defaultAPIPrefix
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.DB.MaxOpenConns <= 0 {
		cfg.DB.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.DB.MaxIdleConns <= 0 {
		cfg.DB.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.DB.ConnMaxLifetime <= 0 {
		cfg.DB.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if cfg.RabbitMQ.RabbitMQQueueName == "" {
		cfg.RabbitMQ.RabbitMQQueueName = defaultRabbitMQQueueName
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = defaultS3Region
	}
	if cfg.AvatarMaxBytes <= 0 {
		cfg.AvatarMaxBytes = defaultAvatarMaxBytes
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("конфигурация: DATABASE_URL не может быть пустым")
	}
	if c.AvatarsEnabled() && c.S3.BucketName == "" {
		return fmt.Errorf("конфигурация: S3_BUCKET_NAME обязателен, если задан S3_ENDPOINT")
	}
	if base := c.S3.PublicBaseURL; base != "" && !hasHTTPScheme(base) {
		return fmt.Errorf("конфигурация: S3_PUBLIC_BASE_URL должен начинаться с http:// или https://")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("конфигурация: неизвестный LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func hasHTTPScheme(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
