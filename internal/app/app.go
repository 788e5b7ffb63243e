package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/mareknov/lab-strava/internal/config"
)

// Режимы запуска приложения
const (
	ModeServer  = "server"
	ModeMigrate = "migrate"
)

// Migrator применяет миграции схемы
type Migrator interface {
	RunMigrations() error
}

type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	migrator Migrator
	handler  http.Handler
	closers  []func() error
}

// NewApp собирает приложение. handler может быть nil в режиме migrate.
// closers вызываются в обратном порядке при завершении.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	migrator Migrator,
	handler http.Handler,
	closers ...func() error,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		migrator: migrator,
		handler:  handler,
		closers:  closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.Shutdown()

	a.logger.Info("starting application", "mode", mode)

	switch mode {
	case ModeServer:
		if a.cfg.RunMigrations() {
			if err := a.migrator.RunMigrations(); err != nil {
				return err
			}
		}
		return runServer(ctx, a.cfg, a.handler, a.logger)

	case ModeMigrate:
		return a.migrator.RunMigrations()

	default:
		return fmt.Errorf("неизвестный режим: %s (используйте '%s' или '%s')", mode, ModeServer, ModeMigrate)
	}
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
