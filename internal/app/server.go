package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mareknov/lab-strava/internal/config"
)

const readHeaderTimeout = 10 * time.Second

// runServer запускает HTTP сервер и блокируется до отмены ctx
func runServer(ctx context.Context, cfg *config.Config, handler http.Handler, logger *slog.Logger) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.ServerPort))
	if err != nil {
		return fmt.Errorf("не удалось открыть порт %s: %w", cfg.ServerPort, err)
	}
	return serve(ctx, listener, cfg.ShutdownTimeout, handler, logger)
}

func serve(ctx context.Context, listener net.Listener, shutdownTimeout time.Duration, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка при работе сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
