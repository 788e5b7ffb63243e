package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/mareknov/lab-strava/internal/config"
	"github.com/mareknov/lab-strava/internal/database/migrations"
)

// Client владеет пулом соединений PostgreSQL. Тот же *sql.DB используется GORM
// и golang-migrate.
type Client struct {
	DB     *sqlx.DB
	logger *slog.Logger
}

// NewClient открывает пул соединений с параметрами из конфигурации и проверяет связь
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open PostgreSQL connection", "error", err)
		return nil, fmt.Errorf("ошибка открытия соединения с БД: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	logger.Info("PostgreSQL connection established successfully",
		"max_open_conns", cfg.DB.MaxOpenConns,
		"max_idle_conns", cfg.DB.MaxIdleConns,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Client{DB: db, logger: logger}, nil
}

// Ping проверяет доступность базы; используется health-эндпоинтом
func (c *Client) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunMigrations применяет все встроенные миграции к базе
func (c *Client) RunMigrations() error {
	start := time.Now()

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("не удалось открыть встроенные миграции: %w", err)
	}

	driver, err := migratepostgres.WithInstance(c.DB.DB, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("не удалось создать драйвер миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр мигратора: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		c.logger.Info("database schema is up to date")
	case err != nil:
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	default:
		version, _, _ := m.Version()
		c.logger.Info("migrations applied",
			"version", version,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return nil
}

func (c *Client) Close() error {
	start := time.Now()
	err := c.DB.Close()
	if err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
