package di

import (
	"context"
	"log/slog"

	"github.com/mareknov/lab-strava/internal/adapter/storage/minio"
	"github.com/mareknov/lab-strava/internal/app"
	"github.com/mareknov/lab-strava/internal/config"
	"github.com/mareknov/lab-strava/internal/core/ports"
	"github.com/mareknov/lab-strava/internal/database/client"
	"github.com/mareknov/lab-strava/internal/database/postgres"
	"github.com/mareknov/lab-strava/internal/handler"
	"github.com/mareknov/lab-strava/internal/logger"
	"github.com/mareknov/lab-strava/internal/rabbitmq"
	"github.com/mareknov/lab-strava/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
// В режиме migrate поднимается только подключение к базе.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента
	dbClient, err := client.NewClient(ctx, cfg, slogger)
	if err != nil {
		return nil, err
	}
	closers := []func() error{dbClient.Close}

	if mode == app.ModeMigrate {
		return app.NewApp(cfg, slogger, dbClient, nil, closers...), nil
	}

	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	// 3. Инициализация хранилищ
	gormDB, err := postgres.OpenGorm(dbClient.DB, slogger)
	if err != nil {
		return fail(err)
	}
	userStorage := postgres.NewGormUserStorage(gormDB)
	activityStorage := postgres.NewGormActivityStorage(gormDB)
	transactor := postgres.NewTransactor(gormDB)

	// 4. Публикация доменных событий
	var events ports.EventPublisher = rabbitmq.NoopPublisher{}
	if cfg.EventsEnabled() {
		rabbitClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() error {
			rabbitClient.Close()
			return nil
		})
		events = rabbitClient
	} else {
		slogger.Info("RABBITMQ_URL is empty, domain events are disabled")
	}

	// 5. Файловое хранилище для аватаров (S3 / MinIO)
	var fileStorage ports.FileStorage
	if cfg.AvatarsEnabled() {
		minioClient, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			return fail(err)
		}
		fileStorage = minioClient
	} else {
		slogger.Info("S3_ENDPOINT is empty, avatar uploads are disabled")
	}

	// 6. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, transactor, fileStorage, events, slogger)
	activityUseCase := usecase.NewActivityUseCase(activityStorage, transactor, events, slogger)

	// 7. HTTP слой
	router := handler.NewRouter(handler.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		RequestTimeout: cfg.RequestTimeout,
		Users:          handler.NewUserHandler(userUseCase, cfg.AvatarMaxBytes, slogger),
		Activities:     handler.NewActivityHandler(activityUseCase, slogger),
		DB:             dbClient,
		Logger:         slogger,
	})

	logDependencies(slogger, cfg)
	return app.NewApp(cfg, slogger, dbClient, router, closers...), nil
}

func logDependencies(logger *slog.Logger, cfg *config.Config) {
	logger.Info("all dependencies initialized",
		"api_prefix", cfg.APIPrefix,
		"events", cfg.EventsEnabled(),
		"avatars", cfg.AvatarsEnabled(),
		"migrations", cfg.RunMigrations(),
	)
}
